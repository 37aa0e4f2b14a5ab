package domain

import "time"

// MarketComparison is a cross-jurisdiction compliance report for one chemical.
type MarketComparison struct {
	// Chemical is the resolved substance identity.
	Chemical Chemical

	// Rows holds one entry per compared market, in the order compared.
	Rows []ComparisonRow

	// Summary is an optional LLM-generated narrative of the comparison.
	Summary string

	// GeneratedAt is when the comparison ran.
	GeneratedAt time.Time
}

// ComparisonRow is the per-market line of a comparison report.
type ComparisonRow struct {
	// Market is the jurisdiction.
	Market Market

	// Status is the compliance status in that market.
	Status ComplianceStatus

	// Basis is the primary regulatory basis for the status.
	Basis string

	// ListingCount is the number of lists the chemical appears on.
	ListingCount int
}

// Strictest returns the row with the most severe status.
// Returns nil for an empty comparison.
func (c *MarketComparison) Strictest() *ComparisonRow {
	var strictest *ComparisonRow
	for i := range c.Rows {
		if strictest == nil || c.Rows[i].Status.Severity() > strictest.Status.Severity() {
			strictest = &c.Rows[i]
		}
	}
	return strictest
}

// RevisionDiff describes how a regulation changed between two snapshots.
type RevisionDiff struct {
	// Slug is the dataset the snapshots belong to.
	Slug string

	// OldSHA256 and NewSHA256 are the content hashes of the two snapshots.
	OldSHA256 string
	NewSHA256 string

	// OldFetchedAt and NewFetchedAt are the snapshot times.
	OldFetchedAt time.Time
	NewFetchedAt time.Time

	// Changed is false when both snapshots carry identical content.
	Changed bool

	// Unified is the unified diff between the two contents.
	// Empty when Changed is false.
	Unified string
}
