// Package monitoring provides Prometheus metrics for navd.
//
// Metric groups:
//   - HTTP: request counts and durations (collected via gin middleware)
//   - Stack: depth gauge, mutation counts by op, snapshots delivered,
//     subscriber gauge
//   - Rendezvous: outcome counts (resolved, superseded, canceled,
//     unmatched_return)
//   - WebSocket: connection gauge, message counts by direction and type
//
// All metrics carry the navd_ prefix and are exposed on /metrics.
package monitoring
