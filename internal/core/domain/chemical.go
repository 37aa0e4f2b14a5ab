package domain

import "time"

// Chemical represents a resolved substance identity.
// Resolution happens against PubChem: a user-supplied name is mapped to a
// compound ID (CID), which in turn yields the registered CAS numbers.
type Chemical struct {
	// Name is the user-supplied substance name.
	Name string

	// CID is the PubChem compound identifier. Zero means unresolved.
	CID int64

	// CASNumbers holds the CAS registry numbers for this compound.
	// Ordered as returned by the resolver; the first entry is treated
	// as the primary number.
	CASNumbers []string

	// ResolvedAt is when the identity was last resolved.
	ResolvedAt time.Time
}

// Resolved returns true if the chemical has been mapped to a CID.
func (c *Chemical) Resolved() bool {
	return c.CID != 0
}

// PrimaryCAS returns the first CAS number, or empty string if none exist.
func (c *Chemical) PrimaryCAS() string {
	if len(c.CASNumbers) == 0 {
		return ""
	}
	return c.CASNumbers[0]
}

// HasCAS reports whether the given CAS number belongs to this chemical.
func (c *Chemical) HasCAS(cas string) bool {
	for _, n := range c.CASNumbers {
		if n == cas {
			return true
		}
	}
	return false
}

// HazardProfile holds hazard data for a chemical from an external database.
// The attribute set varies by provider, so it is kept as an opaque map.
type HazardProfile struct {
	// CAS is the CAS number the profile was found under.
	CAS string

	// Provider identifies the hazard database (e.g., "sas").
	Provider string

	// Attributes contains the provider's raw hazard fields.
	Attributes map[string]any

	// RetrievedAt is when the profile was fetched.
	RetrievedAt time.Time
}
