// Package recorder implements the top-coins snapshot recorder.
//
// The recorder:
//   - Calls FetchTopCoins on a fixed interval (default 5m)
//   - Stamps each non-empty list with a snapshot ID and time
//   - Hands snapshots to a SnapshotHandler, normally the Postgres Store
//
// Empty lists (upstream failures) are skipped, not stored.
package recorder
