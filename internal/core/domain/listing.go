package domain

import "time"

// Classification is the legal effect of a listing on the listed chemical.
type Classification string

// Listing classifications, from least to most restrictive.
const (
	// ClassificationListed means the chemical appears on an inventory
	// with no restriction attached (e.g., an active TSCA entry).
	ClassificationListed Classification = "listed"

	// ClassificationRestricted means use is conditionally limited
	// (e.g., REACH Annex XVII, TW toxic chemical classes 1-3).
	ClassificationRestricted Classification = "restricted"

	// ClassificationAuthorisation means use requires prior authorisation
	// (e.g., REACH Annex XIV).
	ClassificationAuthorisation Classification = "authorisation"

	// ClassificationProhibited means the chemical is banned outright.
	ClassificationProhibited Classification = "prohibited"
)

// IsValid returns true if the classification is recognised.
func (c Classification) IsValid() bool {
	switch c {
	case ClassificationListed, ClassificationRestricted,
		ClassificationAuthorisation, ClassificationProhibited:
		return true
	default:
		return false
	}
}

// Status maps the classification to the compliance status it implies.
func (c Classification) Status() ComplianceStatus {
	switch c {
	case ClassificationListed:
		return StatusListed
	case ClassificationRestricted:
		return StatusRestricted
	case ClassificationAuthorisation:
		return StatusAuthorizationRequired
	case ClassificationProhibited:
		return StatusBanned
	default:
		return StatusUnknown
	}
}

// Listing records a chemical's membership on a regulatory list.
// Listings are the evidence a diagnosis is built from.
type Listing struct {
	// ID is the unique identifier for the listing.
	ID string

	// SourceID links to the Source that produced this listing.
	SourceID string

	// Slug is the dataset name, denormalised for lookups.
	Slug string

	// Jurisdiction is the market the list applies in.
	Jurisdiction Market

	// CAS is the CAS registry number of the listed chemical.
	CAS string

	// ChemicalName is the name the chemical is listed under.
	ChemicalName string

	// ListName is the human-readable list name
	// (e.g., "TSCA Inventory", "REACH Annex XIV").
	ListName string

	// Classification is the legal effect of this listing.
	Classification Classification

	// Citation is the regulatory basis (e.g., "REACH Annex XIV entry 43").
	Citation string

	// Activity is the inventory activity flag when the list carries one
	// (e.g., "ACTIVE", "INACTIVE").
	Activity string

	// FetchedAt is when the listing was extracted.
	FetchedAt time.Time
}

// Basis returns the citation, falling back to the list name.
func (l *Listing) Basis() string {
	if l.Citation != "" {
		return l.Citation
	}
	return l.ListName
}
