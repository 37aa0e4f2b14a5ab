package regulation

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// Section heading patterns, one per legal drafting tradition.
// Headings may arrive as markdown headers, so an optional leading
// "#" run and emphasis markers are tolerated.
var (
	// EU style: "Article 56", "Article 57a".
	articleRe = regexp.MustCompile(`^(?:#+\s*)?\**\s*(Article\s+\d+[a-z]*)\**\s*$`)

	// US CFR style: "§ 721.45", "§ 721.10075(b)".
	sectionRe = regexp.MustCompile(`^(?:#+\s*)?\**\s*(§+\s*\d+\.\d+[\w().-]*)\**`)

	// TW style: "第 11 條", "第 11-1 條".
	tiaoRe = regexp.MustCompile(`^(?:#+\s*)?\**\s*(第\s*[0-9一二三四五六七八九十百]+(?:-[0-9]+)?\s*條)\**`)
)

// headingCitation returns the citation when the line is a section
// heading, and the remainder of the line as the heading text.
func headingCitation(line string) (citation, heading string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", "", false
	}

	if m := articleRe.FindStringSubmatch(trimmed); m != nil {
		return normaliseCitation(m[1]), "", true
	}
	if m := sectionRe.FindStringSubmatch(trimmed); m != nil {
		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, m[0]))
		return normaliseCitation(m[1]), strings.Trim(rest, "*# "), true
	}
	if m := tiaoRe.FindStringSubmatch(trimmed); m != nil {
		return normaliseCitation(m[1]), "", true
	}
	return "", "", false
}

func normaliseCitation(citation string) string {
	return strings.Join(strings.Fields(citation), " ")
}

// splitSections splits markdown content into sections at legal
// headings. Text before the first heading (preamble, recitals) becomes
// a section with an empty citation so no content is lost.
func splitSections(snapshotID, content string) []domain.Section {
	lines := strings.Split(content, "\n")

	var sections []domain.Section
	var current *domain.Section
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Text != "" || current.Citation != "" {
			sections = append(sections, *current)
		}
		current = nil
		body = nil
	}

	for _, line := range lines {
		citation, heading, ok := headingCitation(line)
		if !ok {
			if current == nil {
				current = &domain.Section{
					ID:         uuid.New().String(),
					SnapshotID: snapshotID,
				}
			}
			body = append(body, line)
			continue
		}

		flush()
		current = &domain.Section{
			ID:         uuid.New().String(),
			SnapshotID: snapshotID,
			Citation:   citation,
			Heading:    heading,
		}
	}
	flush()

	for i := range sections {
		sections[i].Position = i
	}
	return sections
}
