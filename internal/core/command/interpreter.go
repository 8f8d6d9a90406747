package command

import (
	"math"
	"strconv"
	"time"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/core/resp"
	"github.com/yndnr/respkv/internal/storage/memory"
)

// Store is the subset of memory.Store the interpreter needs.
type Store interface {
	Get(key string) (memory.Entry, memory.Lookup, error)
	Set(key, value string, expiresAt int64) error
}

// Observer is notified after every interpreted request.
//
// name is the upper-case command name or "UNKNOWN". result is "ok", a GET
// lookup outcome ("hit", "missing", "expired") or the error kind.
type Observer interface {
	CommandDone(name, result string, elapsed time.Duration)
}

// Interpreter executes decoded requests against a Store.
//
// It holds no per-connection state, so one Interpreter may serve every
// connection.
type Interpreter struct {
	store     Store
	now       func() time.Time
	laxExpiry bool
	observer  Observer
}

// Option configures the Interpreter.
type Option func(*Interpreter)

// WithClock sets the time source used to turn SET expiry offsets into
// absolute deadlines.
func WithClock(now func() time.Time) Option {
	return func(in *Interpreter) {
		if now != nil {
			in.now = now
		}
	}
}

// WithLaxExpiry makes SET store the key without expiry when the expiry
// argument cannot be parsed, instead of rejecting the request.
func WithLaxExpiry(lax bool) Option {
	return func(in *Interpreter) {
		in.laxExpiry = lax
	}
}

// WithObserver registers an Observer.
func WithObserver(o Observer) Option {
	return func(in *Interpreter) {
		in.observer = o
	}
}

// New creates an Interpreter bound to store.
func New(store Store, opts ...Option) *Interpreter {
	in := &Interpreter{
		store: store,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Interpret executes one request and returns the reply to write.
//
// An empty reply is valid (ECHO without argument) and means nothing should
// be written. Errors are *domain.DomainError values of an interpret kind.
func (in *Interpreter) Interpret(v resp.Value) (reply string, err error) {
	start := time.Now()
	name, result := "UNKNOWN", "ok"
	defer func() {
		if in.observer == nil {
			return
		}
		if err != nil {
			result = string(domain.KindOf(err))
		}
		in.observer.CommandDone(name, result, time.Since(start))
	}()

	args, err := arguments(v)
	if err != nil {
		return "", err
	}

	head, ok := args[0].(resp.Text)
	if !ok {
		return "", domain.ErrUnsupportedValue.Detailf("command name must be a string, got %s", args[0])
	}
	cmd, err := Parse(string(head))
	if err != nil {
		return "", err
	}
	name = cmd.String()

	params := args[1:]
	switch cmd {
	case Ping:
		return ping(params)
	case Echo:
		return echo(params)
	case Get:
		var lookup memory.Lookup
		reply, lookup, err = in.get(params)
		if err == nil {
			result = lookup.String()
		}
		return reply, err
	case Set:
		return in.set(params)
	}

	return "", domain.ErrUnknownCommand.Detailf("%q", head)
}

// arguments flattens a request into its argument vector. A bare string is
// an inline command without arguments.
func arguments(v resp.Value) (resp.Array, error) {
	switch v := v.(type) {
	case resp.Array:
		if len(v) == 0 {
			return nil, domain.ErrUnsupportedValue.WithDetails("empty array")
		}
		return v, nil
	case resp.Text:
		return resp.Array{v}, nil
	default:
		return nil, domain.ErrUnsupportedValue.Detailf("request must be an array or string, got %s", v)
	}
}

func ping(args resp.Array) (string, error) {
	switch len(args) {
	case 0:
		return resp.Pong, nil
	case 1:
		msg, ok := args[0].(resp.Text)
		if !ok {
			return "", domain.ErrBadArguments.Detailf("PING message must be a string, got %s", args[0])
		}
		return resp.SimpleString("PONG " + string(msg)), nil
	default:
		return "", domain.ErrBadArguments.Detailf("PING takes at most 1 argument, got %d", len(args))
	}
}

func echo(args resp.Array) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		msg, ok := args[0].(resp.Text)
		if !ok {
			return "", domain.ErrBadArguments.Detailf("ECHO message must be a string, got %s", args[0])
		}
		return resp.SimpleString(string(msg)), nil
	default:
		return "", domain.ErrBadArguments.Detailf("ECHO takes at most 1 argument, got %d", len(args))
	}
}

func (in *Interpreter) get(args resp.Array) (string, memory.Lookup, error) {
	if len(args) != 1 {
		return "", memory.Missing, domain.ErrBadArguments.Detailf("GET takes 1 argument, got %d", len(args))
	}
	key, ok := args[0].(resp.Text)
	if !ok {
		return "", memory.Missing, domain.ErrBadArguments.Detailf("GET key must be a string, got %s", args[0])
	}

	entry, lookup, err := in.store.Get(string(key))
	if err != nil {
		return "", lookup, err
	}

	switch lookup {
	case memory.Hit:
		return resp.SimpleString(entry.Value), lookup, nil
	case memory.Expired:
		return resp.NullBulk, lookup, nil
	default:
		return resp.NilText, lookup, nil
	}
}

// set handles SET key value [option expiry-ms]. The option word is not
// inspected.
func (in *Interpreter) set(args resp.Array) (string, error) {
	if len(args) != 2 && len(args) != 4 {
		return "", domain.ErrBadArguments.Detailf("SET takes 2 or 4 arguments, got %d", len(args))
	}
	key, ok := args[0].(resp.Text)
	if !ok {
		return "", domain.ErrBadArguments.Detailf("SET key must be a string, got %s", args[0])
	}
	value, ok := args[1].(resp.Text)
	if !ok {
		return "", domain.ErrBadArguments.Detailf("SET value must be a string, got %s", args[1])
	}

	var expiresAt int64
	if len(args) == 4 {
		deadline, err := in.deadline(args[3])
		switch {
		case err == nil:
			expiresAt = deadline
		case !in.laxExpiry:
			return "", err
		}
	}

	if err := in.store.Set(string(key), string(value), expiresAt); err != nil {
		return "", err
	}
	return resp.OK, nil
}

// deadline converts a relative expiry in milliseconds into an absolute
// Unix millisecond deadline.
func (in *Interpreter) deadline(v resp.Value) (int64, error) {
	var offset int64
	switch v := v.(type) {
	case resp.Integer:
		if v < 0 {
			return 0, domain.ErrBadArguments.Detailf("negative expiry %d", int64(v))
		}
		offset = int64(v)
	case resp.Text:
		n, err := strconv.ParseUint(string(v), 10, 64)
		if err != nil {
			return 0, domain.ErrBadArguments.Detailf("invalid expiry %q", string(v)).WithCause(err)
		}
		if n > math.MaxInt64 {
			return 0, domain.ErrBadArguments.Detailf("expiry %d out of range", n)
		}
		offset = int64(n)
	default:
		return 0, domain.ErrBadArguments.Detailf("expiry must be an integer, got %s", v)
	}

	now := in.now().UnixMilli()
	if offset > math.MaxInt64-now {
		return 0, domain.ErrBadArguments.Detailf("expiry %d out of range", offset)
	}
	return now + offset, nil
}
