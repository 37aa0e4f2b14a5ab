// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - SourceStore: Source configuration persistence
//   - RegulationStore: Snapshot, section and listing persistence
//   - SyncStateStore: Sync progress persistence
//   - ChemicalStore: Resolved identity cache
//   - DiagnosisStore: Diagnosis history
//   - SchedulerStore: Background task state
//   - SearchEngine: Full-text section search (FTS5)
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.regwatch/data/regwatch.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
