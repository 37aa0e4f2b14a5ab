package ghmirror

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// Config holds GitHub mirror scraper configuration.
type Config struct {
	// Owner is the repository owner.
	Owner string

	// Repo is the repository name.
	Repo string

	// Ref is the branch or commit to read from.
	// Empty uses the repository's default branch.
	Ref string

	// Dir is the directory inside the repository holding snapshot
	// files (default "snapshots").
	Dir string

	// Token is the access token. Empty means anonymous access,
	// which works for public mirrors.
	Token string

	// APIURL points at a GitHub Enterprise API base. Empty uses
	// github.com.
	APIURL string
}

// ParseConfig extracts scraper configuration from the source's config
// map and URL. Owner and repo come from the config when set, otherwise
// from the URL path (https://github.com/{owner}/{repo}).
func ParseConfig(cfg map[string]string, sourceURL string) (*Config, error) {
	owner := cfg["owner"]
	repo := cfg["repo"]

	if (owner == "" || repo == "") && sourceURL != "" {
		urlOwner, urlRepo := ownerRepoFromURL(sourceURL)
		if owner == "" {
			owner = urlOwner
		}
		if repo == "" {
			repo = urlRepo
		}
	}
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("%w: ghmirror source requires owner and repo", domain.ErrInvalidInput)
	}

	dir := cfg["dir"]
	if dir == "" {
		dir = "snapshots"
	}

	return &Config{
		Owner:  owner,
		Repo:   repo,
		Ref:    cfg["ref"],
		Dir:    strings.Trim(dir, "/"),
		Token:  cfg["token"],
		APIURL: cfg["api_url"],
	}, nil
}

func ownerRepoFromURL(raw string) (string, string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git")
}
