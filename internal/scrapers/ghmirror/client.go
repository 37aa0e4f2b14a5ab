package ghmirror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the HTTP request timeout for API calls.
const DefaultTimeout = 30 * time.Second

// Client wraps the go-github client with the calls the mirror scraper
// needs. Anonymous access works for public mirrors; a token raises the
// rate limit and unlocks private mirrors.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClient creates a GitHub API client. An empty token means
// anonymous access. A non-empty apiURL points the client at a GitHub
// Enterprise instance (or a test server).
func NewClient(ctx context.Context, token, apiURL string) (*Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = DefaultTimeout

	client := gh.NewClient(httpClient)
	if apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("ghmirror: invalid api url %q: %w", apiURL, err)
		}
	}

	return &Client{
		gh:          client,
		rateLimiter: NewRateLimiter(),
	}, nil
}

// GetRepository fetches the repository metadata, mainly for the
// default branch name.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, c.wrapError(err, "get repo")
	}

	c.updateRateLimitFromResponse(resp)
	return repository, nil
}

// GetTree fetches the full tree for a ref recursively.
func (c *Client) GetTree(ctx context.Context, owner, repo, ref string) (*gh.Tree, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, ref, true)
	if err != nil {
		return nil, c.wrapError(err, "get tree")
	}

	c.updateRateLimitFromResponse(resp)
	return tree, nil
}

// GetFileContent fetches and decodes the content of a file.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return "", c.wrapError(err, "get contents")
	}

	c.updateRateLimitFromResponse(resp)

	if content == nil {
		return "", fmt.Errorf("ghmirror: %s is a directory, not a file", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode content: %w", err)
	}
	return decoded, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.rateLimiter.ResetTime(),
			Remaining: c.rateLimiter.Remaining(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
