package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultPrompt is printed before each line.
const DefaultPrompt = "respkv> "

// Executor runs one command line that is not a built-in.
type Executor interface {
	Execute(ctx context.Context, args []string, w io.Writer) error
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, args []string, w io.Writer) error

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, args []string, w io.Writer) error {
	return f(ctx, args, w)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	prompt    string
	executor  Executor
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithHistory sets the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) { r.history = h }
}

// WithPrompt sets the prompt.
func WithPrompt(prompt string) Option {
	return func(r *REPL) { r.prompt = prompt }
}

// New creates a new REPL instance.
func New(executor Executor, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		prompt:    DefaultPrompt,
		executor:  executor,
		completer: NewCompleter(),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the REPL loop. It returns on exit, quit, end of input or
// when ctx is done, saving the history first.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "Warning: cannot load history: %v\n", err)
	}

	err := r.loop(ctx)
	if saveErr := r.history.Save(); saveErr != nil {
		return errors.Join(err, fmt.Errorf("save history: %w", saveErr))
	}
	return err
}

func (r *REPL) loop(ctx context.Context) error {
	reader := bufio.NewReader(r.input)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(r.output, r.prompt)

		line, err := reader.ReadString('\n')
		if err == io.EOF && line == "" {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}

		line = strings.TrimRight(line, "\r\n")
		if strings.HasSuffix(line, "\t") {
			r.complete(strings.TrimRight(line, "\t"))
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		if done := r.execute(ctx, line); done {
			return nil
		}
	}
}

// execute runs one line and reports whether the REPL should stop.
func (r *REPL) execute(ctx context.Context, line string) bool {
	args, err := SplitArgs(line)
	if err != nil {
		fmt.Fprintf(r.output, "Error: %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	switch strings.ToLower(args[0]) {
	case "exit", "quit":
		return true
	case "help":
		r.help()
		return false
	case "history":
		for i, entry := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, entry)
		}
		return false
	}

	if err := r.executor.Execute(ctx, args, r.output); err != nil {
		fmt.Fprintf(r.output, "Error: %v\n", err)
	}
	return false
}

func (r *REPL) complete(partial string) {
	if strings.ContainsAny(strings.TrimSpace(partial), " \t") {
		return
	}
	candidates := r.completer.Complete(strings.TrimSpace(partial))
	if len(candidates) > 0 {
		fmt.Fprintln(r.output, strings.Join(candidates, "  "))
	}
}

func (r *REPL) help() {
	fmt.Fprint(r.output, `Commands:
  PING [message]
  ECHO [message]
  GET key
  SET key value [PX milliseconds]
  history              show previous commands
  help                 show this help
  exit, quit           leave
End a line with a tab to list matching commands.
`)
}
