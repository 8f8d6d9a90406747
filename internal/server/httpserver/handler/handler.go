package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// Error codes used in error envelopes.
const (
	CodeNotReady = "NOT_READY"
	CodeInternal = "INTERNAL"
)

// KeyCounter reports the number of keys held by the store.
type KeyCounter interface {
	Len() int
}

// Config wires the handler to the running server.
type Config struct {
	// Version is reported by /ready.
	Version string
	// Keys is the store behind the RESP listener.
	Keys KeyCounter
	// Ready reports nil once the server accepts RESP clients.
	// A nil func is always ready.
	Ready func() error
	// Metrics serves /metrics. A nil handler leaves the route unregistered.
	Metrics http.Handler
	Logger  *slog.Logger
}

// Handler serves the admin endpoints.
type Handler struct {
	cfg     Config
	logger  *slog.Logger
	started time.Time
	now     func() time.Time
	mux     *http.ServeMux
}

// New creates a new Handler.
func New(cfg Config) *Handler {
	h := &Handler{
		cfg:     cfg,
		logger:  cfg.Logger,
		started: time.Now(),
		now:     time.Now,
		mux:     http.NewServeMux(),
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	if h.cfg.Metrics != nil {
		h.mux.Handle("GET /metrics", h.cfg.Metrics)
	}
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := logger.RequestIDFromContext(r.Context())
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := logger.RequestIDFromContext(r.Context())
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
