package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/yndnr/respkv/internal/server/httpserver/handler"
)

// RouterConfig holds configuration for the admin router.
type RouterConfig struct {
	// Handler wires the endpoints to the running server.
	Handler handler.Config

	// Logger for request logging.
	Logger *slog.Logger
}

// NewRouter builds the admin handler with its middleware chain.
// Order: Recover -> RequestID -> AccessLog -> Handler.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.Handler.Logger == nil {
		cfg.Handler.Logger = log
	}

	return Chain(
		handler.New(cfg.Handler),
		Recover(log),
		RequestID(),
		AccessLog(log),
	)
}
