// Package metrics provides the centralized Prometheus metrics registry for
// the data client. All metrics are defined in their respective packages
// (client, auth) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the data client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Session Metrics (pkg/auth):
//   - iracing_logins_total{outcome} (Counter): Login handshakes by outcome (success, denied, error)
//
// Request Metrics (pkg/client):
//   - iracing_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - iracing_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//
// Retry Metrics (pkg/client):
//   - iracing_retries_total{reason} (Counter): Retry attempts by reason (rate_limit, network, auth)
//   - iracing_retry_backoff_seconds{reason} (Histogram): Backoff duration by reason
//   - iracing_retry_exhausted_total{endpoint} (Counter): Requests that exhausted max attempts
//
// Example Prometheus Queries:
//
//   # Request Rate by Endpoint
//   sum by (endpoint) (rate(iracing_requests_total[5m]))
//
//   # Rate Limit Pressure
//   rate(iracing_retries_total{reason="rate_limit"}[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(iracing_request_duration_seconds_bucket[5m]))
//
//   # Login Failure Rate
//   rate(iracing_logins_total{outcome!="success"}[5m])
