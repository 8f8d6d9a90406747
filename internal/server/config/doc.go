// Package config provides server configuration for respkv.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation of addresses, sizes and log settings
//   - summary.go: Effective settings for the startup log
//
// Configuration is loaded via internal/infra/confloader from a YAML file,
// a .env file and RESPKV_* environment variables.
package config
