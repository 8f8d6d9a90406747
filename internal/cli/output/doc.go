// Package output renders respkv-cli results.
//
//   - formatter.go: Formatter interface, format names
//   - raw.go: redis-cli style plain text
//   - json.go, yaml.go: machine-readable output
//   - table.go: aligned columns for structs and slices of structs
package output
