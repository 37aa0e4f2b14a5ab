// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Scraper: Fetches regulatory data from an upstream source
//   - ScraperFactory: Creates scrapers from source configuration
//   - Normaliser: Transforms raw snapshots into stored form
//   - NormaliserRegistry: Selects appropriate normaliser
//   - RegulationStore: Snapshot, section and listing persistence
//   - SourceStore: Source configuration persistence
//   - SyncStateStore: Sync progress persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ChemicalResolver: Name-to-CID-to-CAS resolution. Without it,
//     diagnosis falls back to name matching against listings.
//   - HazardDatabase: Hazard profile lookups.
//   - LLMService: Language model operations. Without it, comparison
//     summaries and alternatives research are disabled.
//   - PaperSearch: Literature search feeding alternatives research.
//   - SearchEngine: Full-text section search.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, scraper, or normaliser package
package driven
