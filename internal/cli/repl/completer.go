package repl

import (
	"strings"

	"github.com/samber/lo"
)

// Commands are the names completed by default.
var Commands = []string{"ping", "echo", "get", "set", "help", "history", "exit", "quit"}

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over words, or over Commands when none
// are given.
func NewCompleter(words ...string) *Completer {
	if len(words) == 0 {
		words = Commands
	}
	return &Completer{commands: lo.Uniq(words)}
}

// Complete returns the commands starting with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	return lo.Filter(c.commands, func(cmd string, _ int) bool {
		return strings.HasPrefix(strings.ToLower(cmd), prefix)
	})
}
