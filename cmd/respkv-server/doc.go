// Package main provides the entry point for respkv-server.
//
// The server runs:
//
//   - a RESP listener serving PING, ECHO, GET and SET from one in-memory store
//   - an optional admin HTTP listener with /health, /ready and /metrics
//
// Usage:
//
//	respkv-server [flags]
//	respkv-server -config /etc/respkv/config.yaml -env-file /etc/respkv/.env
//
// Configuration is read from defaults, then the YAML file, then RESPKV_*
// environment variables. Editing the file while the server runs applies a
// new log.level; other settings need a restart.
package main
