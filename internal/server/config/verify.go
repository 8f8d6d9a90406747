package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/respkv/internal/core/resp"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// MinPendingBytes is the smallest max_pending_bytes that still buffers a
// bulk string of resp.MaxBulkLen together with its framing.
const MinPendingBytes = resp.MaxBulkLen + 64

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	r := &cfg.Redis

	if err := verifyAddr("server.redis.addr", r.Addr); err != nil {
		return err
	}
	if cfg.Admin.Addr != "" {
		if err := verifyAddr("server.admin.addr", cfg.Admin.Addr); err != nil {
			return err
		}
		if cfg.Admin.Addr == r.Addr {
			return errors.New("server.admin.addr must differ from server.redis.addr")
		}
	}

	if r.ReadChunkSize <= 0 {
		return fmt.Errorf("server.redis.read_chunk_size must be positive, got %d", r.ReadChunkSize)
	}
	if r.MaxPendingBytes < r.ReadChunkSize {
		return fmt.Errorf("server.redis.max_pending_bytes (%d) must be at least read_chunk_size (%d)",
			r.MaxPendingBytes, r.ReadChunkSize)
	}
	if r.MaxPendingBytes < MinPendingBytes {
		return fmt.Errorf("server.redis.max_pending_bytes (%d) must be at least %d to hold a maximum bulk string",
			r.MaxPendingBytes, MinPendingBytes)
	}
	if r.IdleTimeout < 0 || r.WriteTimeout < 0 || cfg.ShutdownTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if r.RateLimit < 0 {
		return fmt.Errorf("server.redis.rate_limit must not be negative, got %d", r.RateLimit)
	}

	return nil
}

func verifyAddr(name, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", name)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s: invalid address %q: %w", name, addr, err)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level: unknown level %q", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
		return nil
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Format)
	}
}
