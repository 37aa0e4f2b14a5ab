package regulation

import (
	"regexp"
	"strings"
)

// lawInfo is the bibliographic data extracted from a snapshot.
type lawInfo struct {
	// Number is the official citation number (e.g. "1907/2006").
	Number string

	// DocumentType is the instrument type (e.g. "Regulation").
	DocumentType string

	// VersionDate is the document date in its source format.
	VersionDate string
}

var (
	// "Regulation (EC) No 1907/2006", "Directive 2011/65/EU".
	euNumberRe = regexp.MustCompile(`(?:No\.?\s+)?(\d{1,4}/\d{4})(?:/[A-Z]{2})?`)

	// "40 CFR Part 721", "40 CFR 721.45".
	cfrNumberRe = regexp.MustCompile(`(\d{1,2})\s+CFR(?:\s+Part)?\s+(\d+)`)
)

// documentTypes maps title keywords to instrument types, checked in
// order so "Regulation" wins over a stray "Act" in a subtitle.
var documentTypes = []struct {
	keyword string
	docType string
}{
	{"regulation", "Regulation"},
	{"directive", "Directive"},
	{"decision", "Decision"},
	{"cfr", "Code of Federal Regulations"},
	{"法", "Act"},
	{"act", "Act"},
	{"辦法", "Regulations"},
}

// extractLawInfo pulls the citation number, instrument type and
// version date from the snapshot title and scraper metadata.
// Metadata wins over title parsing when both carry a value.
func extractLawInfo(title string, metadata map[string]any) lawInfo {
	var info lawInfo

	lower := strings.ToLower(title)
	for _, dt := range documentTypes {
		if strings.Contains(lower, dt.keyword) {
			info.DocumentType = dt.docType
			break
		}
	}

	if m := cfrNumberRe.FindStringSubmatch(title); m != nil {
		info.Number = m[1] + " CFR " + m[2]
	} else if m := euNumberRe.FindStringSubmatch(title); m != nil {
		info.Number = m[1]
	}

	if metadata != nil {
		if v, ok := metadata["version_date"].(string); ok && v != "" {
			info.VersionDate = v
		}
		if v, ok := metadata["regulation_number"].(string); ok && v != "" {
			info.Number = v
		}
	}

	return info
}
