package config

// Summary returns the effective settings as slog key/value pairs for the
// startup log line.
func Summary(cfg *ServerConfig) []any {
	r := cfg.Server.Redis
	return []any{
		"redis_addr", r.Addr,
		"admin_addr", cfg.Server.Admin.Addr,
		"read_chunk_size", r.ReadChunkSize,
		"max_pending_bytes", r.MaxPendingBytes,
		"idle_timeout", r.IdleTimeout.String(),
		"write_timeout", r.WriteTimeout.String(),
		"rate_limit", r.RateLimit,
		"error_replies", r.ErrorReplies,
		"lax_expiry", r.LaxExpiry,
		"log_level", cfg.Log.Level,
	}
}
