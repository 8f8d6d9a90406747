package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Hook releases one resource. It must return once ctx is done.
type Hook func(context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// Handler handles graceful shutdown.
type Handler struct {
	timeout time.Duration
	signals []os.Signal

	mu    sync.Mutex
	hooks []namedHook

	trigger     chan struct{}
	triggerOnce sync.Once
	reason      string
	done        chan struct{}
}

// NewHandler creates a new shutdown handler. Hooks share a context that
// expires after timeout.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		hooks:   make([]namedHook, 0),
		trigger: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a shutdown hook.
// Hooks are called in reverse order of registration.
func (h *Handler) OnShutdown(name string, hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, namedHook{name: name, fn: hook})
}

// Trigger starts the shutdown without a signal, e.g. when a listener fails.
// Only the first reason is kept.
func (h *Handler) Trigger(reason string) {
	h.triggerOnce.Do(func() {
		h.mu.Lock()
		h.reason = reason
		h.mu.Unlock()
		close(h.trigger)
	})
}

// Wait blocks until a signal arrives, Trigger is called or ctx is done, then
// runs the hooks. The returned error joins every hook failure.
func (h *Handler) Wait(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, h.signals...)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		h.Trigger("signal " + sig.String())
	case <-ctx.Done():
		h.Trigger("context done")
	case <-h.trigger:
	}

	defer close(h.done)
	return h.run()
}

func (h *Handler) run() error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]namedHook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i].fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s: %w", hooks[i].name, err))
		}
	}
	return errors.Join(errs...)
}

// Reason describes what started the shutdown, or "" while still running.
func (h *Handler) Reason() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reason
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
