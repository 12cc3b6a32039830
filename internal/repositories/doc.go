// Package repositories implements SQLite persistence for recommendation history.
//
// Key Implementations:
//   - [HistoryRepository] : recommendation results with their ordered songs
//
// Sequence numbers provide stable, human-readable ordering (e.g., recommendation #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
