package domain

import "time"

// Alternative is a candidate substitute for a chemical, extracted from
// the research pipeline.
type Alternative struct {
	// Name is the substitute substance or formulation.
	Name string

	// Rationale explains why it is considered a viable substitute.
	Rationale string

	// Reference is the supporting citation (DOI or URL).
	Reference string

	// Year is the publication year of the reference, when known.
	Year int

	// SafetyNote summarises the safety advantage over the target chemical.
	SafetyNote string
}

// PaperRef is a literature search hit feeding the research pipeline.
type PaperRef struct {
	// Title is the paper or page title.
	Title string

	// URL is the location of the paper.
	URL string

	// Snippet is the search result excerpt.
	Snippet string

	// Abstract is the extracted abstract text, filled by the
	// abstracts stage. Empty until then.
	Abstract string
}

// ResearchReport is the output of the alternatives research pipeline.
type ResearchReport struct {
	// Chemical is the target substance.
	Chemical Chemical

	// Industry narrows the substitution context (e.g., "manufacturing").
	Industry string

	// Alternatives holds the extracted substitute candidates.
	Alternatives []Alternative

	// Papers holds the literature the alternatives were drawn from.
	Papers []PaperRef

	// Analysis is the raw model analysis the extraction was based on.
	Analysis string

	// GeneratedAt is when the report was produced.
	GeneratedAt time.Time
}
