// Package config provides the respkv-cli profile.
//
//   - spec.go: CLIConfig struct (~/.respkv/cli.yaml)
//   - loader.go: loading, saving and merging with env and flags
package config
