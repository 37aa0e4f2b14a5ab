package domain

// RawSnapshot represents a scraper's output before normalisation.
// Page scrapers fill HTML and leave Listings empty; inventory scrapers
// parse their tabular format directly into Listings.
type RawSnapshot struct {
	// SourceID links to the Source that produced this snapshot.
	SourceID string

	// URI is the location the content was fetched from.
	URI string

	// Title is the page title, when the scraper could determine one.
	Title string

	// HTML is the raw page content. Empty for record-only sources.
	HTML []byte

	// Listings holds pre-parsed inventory records.
	// Empty for page scrapers; the normaliser has nothing to add here.
	Listings []RawListing

	// Metadata contains scraper-specific key-value pairs
	// (e.g., "version_date", "regulation_number").
	Metadata map[string]any
}

// RawListing is an inventory record as parsed by a scraper.
type RawListing struct {
	// CAS is the CAS registry number.
	CAS string

	// Name is the chemical name as listed.
	Name string

	// ListName is the list the record came from.
	ListName string

	// Classification is the legal effect of the listing.
	Classification Classification

	// Citation is the regulatory basis, if the list carries one.
	Citation string

	// Activity is the inventory activity flag, if any.
	Activity string
}

// ChangeType represents the type of snapshot change.
type ChangeType int

const (
	// ChangeCreated indicates newly available content.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates modified content.
	ChangeUpdated

	// ChangeDeleted indicates removed content.
	ChangeDeleted
)

// SnapshotChange represents a change event from a watching scraper.
type SnapshotChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Snapshot is the affected content.
	Snapshot RawSnapshot
}
