// Package tasks runs recommendation requests for several moods with real-time progress reporting.
//
// # Batch Runs
//
// [BatchEngine.Run] fans moods out to a small worker pool:
//   - Moods are normalized and empty ones dropped
//   - Every request waits on a shared rate limiter
//   - Empty song lists count as failures
//   - Successful results are recorded through an optional [HistoryRecorder]
//
// Results keep the input order regardless of completion order.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
