// Package middleware provides HTTP middleware for the navd API: CORS and
// per-client rate limiting. Metrics collection lives in the monitoring
// package next to the metrics it records.
package middleware
