package redisserver

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/respkv/internal/core/resp"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// Config holds the RESP server configuration.
type Config struct {
	// Addr is the listen address.
	Addr string
	// ReadChunkSize is the size of a single socket read.
	ReadChunkSize int
	// MaxPendingBytes bounds the unparsed bytes kept for one connection.
	// A client that exceeds it is disconnected.
	MaxPendingBytes int
	// IdleTimeout closes connections with no traffic for this long (0: never).
	IdleTimeout time.Duration
	// WriteTimeout bounds writing one batch of replies (0: never).
	WriteTimeout time.Duration
	// RateLimit is the maximum number of commands per second per connection.
	// Set to 0 to disable rate limiting.
	RateLimit int
	// ErrorReplies writes "-ERR <kind> <message>" before closing a
	// connection on a protocol or command error.
	ErrorReplies bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:            "127.0.0.1:6379",
		ReadChunkSize:   1024,
		MaxPendingBytes: 1 << 20,
	}
}

// Handler turns one decoded request into its reply bytes.
// An empty reply writes nothing.
type Handler interface {
	Interpret(v resp.Value) (string, error)
}

// Metrics receives connection level events.
type Metrics interface {
	ConnOpened()
	ConnClosed()
	DecodeError(kind string)
}

type nopMetrics struct{}

func (nopMetrics) ConnOpened()        {}
func (nopMetrics) ConnClosed()        {}
func (nopMetrics) DecodeError(string) {}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// Server is the RESP protocol server.
type Server struct {
	cfg     *Config
	handler Handler
	metrics Metrics
	logger  logger.Logger

	mu      sync.Mutex
	ln      net.Listener
	conns   map[*conn]struct{}
	entropy io.Reader

	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a new RESP server. Zero sizes in cfg fall back to the defaults.
func New(cfg *Config, handler Handler, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	def := DefaultConfig()
	if c.ReadChunkSize <= 0 {
		c.ReadChunkSize = def.ReadChunkSize
	}
	if c.MaxPendingBytes <= 0 {
		c.MaxPendingBytes = def.MaxPendingBytes
	}

	s := &Server{
		cfg:     &c,
		handler: handler,
		metrics: nopMetrics{},
		logger:  logger.Default(),
		conns:   make(map[*conn]struct{}),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start binds the listen address and serves connections in the background.
// It returns once the listener is ready.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln in the background.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.running.Store(true)

	s.logger.Info("resp server listening", "address", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil {
			s.logger.Error("resp accept loop stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting, lets every connection finish the request it is
// serving and waits for the handlers to exit. When ctx expires first the
// remaining connections are closed and ctx.Err() is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error

	s.mu.Lock()
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}
	for c := range s.conns {
		c.interrupt()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.mu.Lock()
		for c := range s.conns {
			_ = c.close()
		}
		s.mu.Unlock()
		return ctx.Err()
	}

	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				s.logger.Warn("accept failed, retrying", "error", err)
				continue
			}
			return err
		}

		c := newConn(nc, s.nextID(), s.cfg.RateLimit)
		if !s.track(c) {
			_ = c.close()
			return nil
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(c)
			s.serveConn(ctx, c)
		}()
	}
}

// nextID is only called from the accept loop, which owns s.entropy.
func (s *Server) nextID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), s.entropy)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}

func (s *Server) track(c *conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrack(c *conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

// ActiveConns returns the number of open client connections.
func (s *Server) ActiveConns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}
