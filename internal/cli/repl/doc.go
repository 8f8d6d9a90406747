// Package repl provides the interactive mode of respkv-cli.
//
//   - repl.go: read-eval-print loop and built-in commands
//   - args.go: splitting input lines into arguments
//   - completer.go: command name completion
//   - history.go: command history persistence
//
// A line ending in a tab prints the completion candidates for the word
// typed so far instead of running it.
package repl
