package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// Server is the admin HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a new HTTP server.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		handler: handler,
	}
}

// ListenAndServe starts the HTTP server. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	return ignoreClosed(s.httpServer.ListenAndServe())
}

// Serve serves HTTP on ln. It returns nil after Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return ignoreClosed(s.httpServer.Serve(ln))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
