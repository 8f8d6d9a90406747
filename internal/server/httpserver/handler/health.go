package handler

import (
	"net/http"
	"time"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status: "healthy",
		Time:   h.now().UTC().Format(time.RFC3339),
	})
}

// handleReady handles GET /ready.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Ready != nil {
		if err := h.cfg.Ready(); err != nil {
			h.writeError(w, r, http.StatusServiceUnavailable, CodeNotReady, "not ready", err.Error())
			return
		}
	}

	uptime := h.now().Sub(h.started)
	keys := 0
	if h.cfg.Keys != nil {
		keys = h.cfg.Keys.Len()
	}

	h.writeJSON(w, r, http.StatusOK, ReadyResponse{
		Status:        "ready",
		Version:       h.cfg.Version,
		Uptime:        uptime.Truncate(time.Second).String(),
		UptimeSeconds: int64(uptime / time.Second),
		Keys:          keys,
	})
}
