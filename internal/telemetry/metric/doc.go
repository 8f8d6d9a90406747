// Package metric provides Prometheus metrics for respkv.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: private registry, command and connection metrics, HTTP handler
//   - collector.go: scrape-time collector for store statistics
//
// Metrics include:
//
//   - respkv_commands_total{command,result}
//   - respkv_command_duration_seconds{command}
//   - respkv_connections_active, respkv_connections_total
//   - respkv_decode_errors_total{kind}
//   - respkv_expired_reads_total
//   - respkv_keys
//
// Metrics are exposed at /metrics on the admin listener.
package metric
