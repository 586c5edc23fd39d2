// Package metrics provides the centralized Prometheus metrics registry for
// the WMS extract pipeline. All metrics are defined in their respective
// packages (client, fanout, store) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the pipeline.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - wms_requests_total{entity, status} (Counter): Total requests by entity and HTTP status
//   - wms_request_duration_seconds{entity} (Histogram): Request duration by entity
//   - wms_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - wms_retries_total{error_class} (Counter): Retry attempts by error class
//   - wms_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - wms_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Detail Enrichment Metrics (pkg/fanout):
//   - wms_detail_fetches_total{outcome} (Counter): Detail fetches by outcome (ok, error, cancelled)
//   - wms_detail_fetches_in_flight (Gauge): Detail fetches currently in flight
//
// Store Metrics (pkg/store):
//   - wms_rows_upserted_total{table} (Counter): Rows upserted by table
//   - wms_upsert_duration_seconds{table} (Histogram): Upsert batch duration by table
//   - wms_upsert_failures_total{table} (Counter): Failed upsert batches by table
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(wms_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(wms_request_duration_seconds_bucket[5m]))
//
//   # Detail Fetch Failure Rate
//   rate(wms_detail_fetches_total{outcome="error"}[5m]) /
//   rate(wms_detail_fetches_total[5m])
//
//   # Rows Loaded Per Table
//   sum by (table) (increase(wms_rows_upserted_total[1h]))
