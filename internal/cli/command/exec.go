package command

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
)

// ErrConnectionClosed is returned when the server drops the connection
// instead of replying. The server does this for any request it rejects
// unless error replies are enabled.
var ErrConnectionClosed = errors.New("server closed the connection")

// Result is the outcome of one request.
type Result struct {
	Command string `json:"command" yaml:"command"`
	Type    string `json:"type" yaml:"type"`
	Value   any    `json:"value" yaml:"value"`

	reply connection.Reply
}

// String renders the reply the way redis-cli does.
func (r *Result) String() string {
	return r.reply.String()
}

// Table implements output.Tabler.
func (r *Result) Table() *output.Table {
	value := "-"
	if r.Value != nil {
		value = fmt.Sprint(r.Value)
	}
	return &output.Table{
		Headers: []string{"COMMAND", "TYPE", "VALUE"},
		Rows:    [][]string{{r.Command, r.Type, value}},
	}
}

func newResult(name string, reply connection.Reply) *Result {
	res := &Result{Command: name, Type: string(reply.Kind), reply: reply}
	switch reply.Kind {
	case connection.KindNil:
	case connection.KindInteger:
		res.Value = reply.Int
	default:
		res.Value = reply.Str
	}
	return res
}

// Exec sends args as one request. ECHO without an argument gets no reply
// from the server, so it is sent without waiting and yields a nil Result.
func Exec(client *connection.Client, args []string) (*Result, error) {
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	name := strings.ToUpper(args[0])

	if name == "ECHO" && len(args) == 1 {
		return nil, client.Send(args...)
	}

	reply, err := client.Do(args...)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%s: %w", name, ErrConnectionClosed)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return newResult(name, reply), nil
}
