// Package scrapers provides implementations for fetching regulatory
// content from upstream sources.
//
// Each scraper type lives in its own subpackage and implements the
// driven.Scraper interface:
//
//   - eurlex: consolidated EU regulation text from EUR-Lex
//   - echa: ECHA SVHC candidate list
//   - twinventory: Taiwan Chemical Substance Inventory (TCSI)
//   - cscra: Taiwan concerned chemical substances act (MOENV)
//   - tsca: US TSCA inventory CSV export
//   - cfr: US eCFR title text
//   - localdir: snapshot files from a local directory
//   - ghmirror: a dataset mirror hosted in a GitHub repository
//
// Page scrapers emit one RawSnapshot carrying the page HTML; the
// regulation normaliser splits it into sections. Inventory scrapers
// parse their tabular format directly into RawListings.
//
// The factory subpackage content in factory.go maps source types to
// builders; fetch holds the shared rate-limited HTTP client and
// catalogue the canonical source set.
package scrapers
