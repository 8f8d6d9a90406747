package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type recorder struct {
	calls [][]string
	err   error
}

func (r *recorder) Execute(_ context.Context, args []string, w io.Writer) error {
	r.calls = append(r.calls, args)
	if r.err != nil {
		return r.err
	}
	_, err := io.WriteString(w, "ok\n")
	return err
}

func run(t *testing.T, input string, exec Executor, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	opts = append([]Option{WithIO(strings.NewReader(input), &out)}, opts...)
	if err := New(exec, opts...).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out.String()
}

func TestREPL_Exit(t *testing.T) {
	for _, input := range []string{"exit\n", "QUIT\n", "", "ping"} {
		rec := &recorder{}
		run(t, input, rec)
		if input == "ping" && len(rec.calls) != 1 {
			t.Errorf("final line without newline should run, calls = %v", rec.calls)
		}
	}
}

func TestREPL_ExecutesLines(t *testing.T) {
	rec := &recorder{}
	out := run(t, "\n  \nset k \"a b\"\nGET k\nexit\nping\n", rec)

	want := [][]string{{"set", "k", "a b"}, {"GET", "k"}}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %q, want %q", rec.calls, want)
	}
	if n := strings.Count(out, DefaultPrompt); n != 5 {
		t.Errorf("expected 5 prompts, got %d in %q", n, out)
	}
	if strings.Count(out, "ok\n") != 2 {
		t.Errorf("unexpected output %q", out)
	}
}

func TestREPL_ExecutorError(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	out := run(t, "get k\nping\n", rec)

	if strings.Count(out, "Error: boom") != 2 {
		t.Errorf("errors should be printed and the loop continue, got %q", out)
	}
}

func TestREPL_BadQuotes(t *testing.T) {
	rec := &recorder{}
	out := run(t, "echo \"open\n", rec)

	if len(rec.calls) != 0 {
		t.Errorf("executor should not run, calls = %v", rec.calls)
	}
	if !strings.Contains(out, ErrUnbalancedQuotes.Error()) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestREPL_Completion(t *testing.T) {
	rec := &recorder{}
	out := run(t, "e\t\nset k v\t\n", rec)

	if !strings.Contains(out, "echo  exit\n") {
		t.Errorf("expected candidates in %q", out)
	}
	if len(rec.calls) != 0 {
		t.Errorf("completion lines must not execute, calls = %v", rec.calls)
	}
}

func TestREPL_HelpAndHistory(t *testing.T) {
	rec := &recorder{}
	out := run(t, "help\nget a\nhistory\n", rec, WithPrompt("> "))

	if !strings.Contains(out, "Commands:") {
		t.Errorf("help missing from %q", out)
	}
	if !strings.Contains(out, "   1  help\n   2  get a\n   3  history\n") {
		t.Errorf("history missing from %q", out)
	}
	if len(rec.calls) != 1 {
		t.Errorf("only get should reach the executor, calls = %v", rec.calls)
	}
}

func TestREPL_PersistsHistory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")

	run(t, "get a\nexit\n", &recorder{}, WithHistory(NewHistory(file)))

	h := NewHistory(file)
	if err := h.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := h.Entries(); !reflect.DeepEqual(got, []string{"get a", "exit"}) {
		t.Errorf("Entries() = %v", got)
	}
}

func TestREPL_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(&recorder{}, WithIO(strings.NewReader("ping\n"), io.Discard))
	if err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestExecutorFunc(t *testing.T) {
	var got []string
	f := ExecutorFunc(func(_ context.Context, args []string, _ io.Writer) error {
		got = args
		return nil
	})
	if err := f.Execute(context.Background(), []string{"x"}, io.Discard); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("got %v", got)
	}
}
