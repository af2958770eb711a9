// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Upstream request counts by service and outcome
//   - Upstream request latency by service
//   - Recorded top-coin snapshots and recorder failures
package metrics
