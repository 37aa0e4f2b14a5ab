// Package normalisers transforms raw scraper output into stored form.
//
// Two normalisers exist, one per dataset kind:
//
//   - regulation: extracts readable text from page HTML, converts it to
//     markdown and splits it into citable sections (Article N, § N.N,
//     第 N 條)
//   - inventory: carries pre-parsed listings through, stamping them
//     with the source's jurisdiction and dataset slug
//
// The Registry selects a normaliser by the source's dataset kind.
package normalisers
