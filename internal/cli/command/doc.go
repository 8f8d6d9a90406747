// Package command defines the respkv-cli commands on urfave/cli/v2.
//
//   - root.go: App, global flags, profile loading
//   - keys.go: ping, echo, get and set
//   - exec.go: request execution shared with the REPL
//   - connect.go: saved connections
//   - repl.go: interactive mode
//
// Running respkv-cli without a command starts the REPL.
package command
