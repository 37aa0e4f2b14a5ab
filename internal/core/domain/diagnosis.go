package domain

import "time"

// ComplianceStatus is the outcome of a compliance diagnosis.
type ComplianceStatus string

// Compliance statuses. Severity orders them; a diagnosis reports the most
// severe status supported by the evidence.
const (
	// StatusUnknown means the diagnosis could not be completed
	// (unresolvable chemical, no data for the market).
	StatusUnknown ComplianceStatus = "UNKNOWN"

	// StatusNotListed means the chemical appears on no list in the market.
	StatusNotListed ComplianceStatus = "NOT_LISTED"

	// StatusListed means the chemical is on an inventory without restriction.
	StatusListed ComplianceStatus = "LISTED"

	// StatusRestricted means use is conditionally limited.
	StatusRestricted ComplianceStatus = "RESTRICTED"

	// StatusAuthorizationRequired means use requires prior authorisation.
	StatusAuthorizationRequired ComplianceStatus = "AUTHORIZATION_REQUIRED"

	// StatusBanned means the chemical is prohibited in the market.
	StatusBanned ComplianceStatus = "BANNED"
)

// Severity returns the ordering rank of the status.
// Higher values are more restrictive. StatusUnknown ranks lowest so that
// any concrete finding wins over ignorance.
func (s ComplianceStatus) Severity() int {
	switch s {
	case StatusNotListed:
		return 1
	case StatusListed:
		return 2
	case StatusRestricted:
		return 3
	case StatusAuthorizationRequired:
		return 4
	case StatusBanned:
		return 5
	default:
		return 0
	}
}

// IsValid returns true if the status is recognised.
func (s ComplianceStatus) IsValid() bool {
	switch s {
	case StatusUnknown, StatusNotListed, StatusListed,
		StatusRestricted, StatusAuthorizationRequired, StatusBanned:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ComplianceStatus) String() string {
	return string(s)
}

// Description returns a human-readable description of the status.
func (s ComplianceStatus) Description() string {
	switch s {
	case StatusNotListed:
		return "Not on any regulatory list"
	case StatusListed:
		return "Listed without restriction"
	case StatusRestricted:
		return "Subject to use restrictions"
	case StatusAuthorizationRequired:
		return "Requires prior authorisation"
	case StatusBanned:
		return "Prohibited"
	case StatusUnknown:
		return "Could not be determined"
	default:
		return "Unknown"
	}
}

// Diagnosis is the result of a compliance diagnosis for one chemical
// in one market.
type Diagnosis struct {
	// ID is the unique identifier for the diagnosis.
	ID string

	// Chemical is the resolved substance identity.
	Chemical Chemical

	// Market is the jurisdiction diagnosed against.
	Market Market

	// Status is the overall compliance status.
	Status ComplianceStatus

	// Basis is the primary regulatory basis for the status
	// (the citation of the most severe listing).
	Basis string

	// Evidence holds every listing that contributed to the status.
	Evidence []Listing

	// Hazard is the hazard profile, when one was found. Optional.
	Hazard *HazardProfile

	// Reason explains a StatusUnknown outcome. Empty otherwise.
	Reason string

	// DiagnosedAt is when the diagnosis ran.
	DiagnosedAt time.Time

	// Elapsed is how long the diagnosis took.
	Elapsed time.Duration
}
