package config

import "time"

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis RedisConfig `koanf:"redis"`
	Admin AdminConfig `koanf:"admin"`

	// ShutdownTimeout bounds how long shutdown waits for open connections.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// RedisConfig configures the RESP listener.
type RedisConfig struct {
	Addr string `koanf:"addr"`

	// ReadChunkSize is the size of each socket read.
	ReadChunkSize int `koanf:"read_chunk_size"`

	// MaxPendingBytes caps the bytes buffered for one incomplete frame.
	// A connection that exceeds it is closed.
	MaxPendingBytes int `koanf:"max_pending_bytes"`

	// IdleTimeout closes a connection after this long without input.
	// Zero disables it.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// WriteTimeout bounds each reply write. Zero disables it.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// RateLimit is the number of commands per second allowed on one
	// connection. Zero means unlimited.
	RateLimit int `koanf:"rate_limit"`

	// ErrorReplies writes "-ERR <kind> <message>" before closing a
	// connection on a decode or command error.
	ErrorReplies bool `koanf:"error_replies"`

	// LaxExpiry stores a SET whose expiry cannot be parsed without
	// expiry instead of rejecting it.
	LaxExpiry bool `koanf:"lax_expiry"`
}

// AdminConfig configures the admin HTTP listener.
type AdminConfig struct {
	// Addr is the listen address. Empty disables the admin server.
	Addr string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// ShowValues logs a truncated preview of stored values at debug level
	// instead of masking them.
	ShowValues bool `koanf:"show_values"`
}
