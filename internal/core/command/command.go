// Package command turns decoded protocol values into store operations and
// reply strings.
package command

import (
	"strings"

	"github.com/yndnr/respkv/internal/core/domain"
)

// Command is one of the supported command names.
type Command int

const (
	Ping Command = iota + 1
	Echo
	Get
	Set
)

var names = map[string]Command{
	"ping": Ping,
	"echo": Echo,
	"get":  Get,
	"set":  Set,
}

// Parse matches name case-insensitively against the supported commands.
func Parse(name string) (Command, error) {
	cmd, ok := names[strings.ToLower(name)]
	if !ok {
		return 0, domain.ErrUnknownCommand.Detailf("%q", name)
	}
	return cmd, nil
}

// String returns the upper-case command name.
func (c Command) String() string {
	switch c {
	case Ping:
		return "PING"
	case Echo:
		return "ECHO"
	case Get:
		return "GET"
	case Set:
		return "SET"
	default:
		return "UNKNOWN"
	}
}

// Names lists the supported command names in upper case.
func Names() []string {
	return []string{Ping.String(), Echo.String(), Get.String(), Set.String()}
}
