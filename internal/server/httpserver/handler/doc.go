// Package handler provides the admin HTTP handlers for respkv.
//
//   - health.go: liveness and readiness checks
//   - handler.go: routing, JSON envelope, the /metrics passthrough
//
// Every JSON response uses the Response envelope from types.go.
package handler
