// Package domain defines the core business entities for Regwatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chemical: A substance identity (name, PubChem CID, CAS numbers)
//   - Source: A configured regulatory data source
//   - Snapshot: A fetched version of a regulation or inventory
//   - Listing: A chemical's membership on a regulatory list
//   - Diagnosis: The compliance status of a chemical in a market
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
