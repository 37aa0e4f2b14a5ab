package domain

import "time"

// Snapshot represents one fetched version of a regulation or inventory.
// Snapshots are immutable; a new fetch with changed content produces a
// new snapshot rather than rewriting an old one.
type Snapshot struct {
	// ID is the unique identifier for the snapshot.
	ID string

	// SourceID links to the Source that produced this snapshot.
	SourceID string

	// Slug is the dataset name, denormalised from the source for lookups.
	Slug string

	// URI is the upstream location the content was fetched from.
	URI string

	// Title is the document title as published upstream.
	Title string

	// RegulationNumber is the official citation number when one could be
	// extracted (e.g., "1907/2006").
	RegulationNumber string

	// DocumentType is the instrument type (e.g., "Regulation", "Directive").
	DocumentType string

	// VersionDate is the document date as published, in its source format.
	VersionDate string

	// Content is the full extracted text (markdown) after normalisation.
	Content string

	// SHA256 is the content hash used for change detection.
	SHA256 string

	// FetchedAt is when the snapshot was taken.
	FetchedAt time.Time
}

// Section represents one addressable unit of a regulation snapshot.
// Regulations are split into sections for citation-level search results.
type Section struct {
	// ID is the unique identifier for the section.
	ID string

	// SnapshotID links to the parent Snapshot.
	SnapshotID string

	// Citation is the legal citation (e.g., "Article 56", "§ 721.45", "第 11 條").
	Citation string

	// Heading is the section heading, if any.
	Heading string

	// Text is the section body.
	Text string

	// Position is the ordinal position within the snapshot.
	Position int
}
