// Package httpserver provides the admin HTTP server for respkv.
//
// Endpoints:
//
//   - GET /health: liveness
//   - GET /ready: readiness with version, uptime and key count
//   - GET /metrics: Prometheus text format
//
// Every request passes through Recover, RequestID and AccessLog. The server
// is optional and runs next to the RESP listener.
package httpserver
