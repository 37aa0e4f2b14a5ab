// Package page holds small helpers shared by the page scrapers:
// content hashing for cursor comparison and title extraction.
package page

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/net/html"
)

// Hash returns the SHA-256 of the content as a hex string.
// Page scrapers use it as the sync cursor: an unchanged hash means the
// upstream page has not changed since the last sync.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Title extracts the <title> text from an HTML document.
// Returns the empty string when the document has no title.
func Title(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(findTitle(doc))
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return sb.String()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}
