package config

import "time"

// Default configuration values.
const (
	DefaultRedisAddr       = "127.0.0.1:6379"
	DefaultAdminAddr       = "127.0.0.1:9121"
	DefaultReadChunkSize   = 1024
	DefaultMaxPendingBytes = 1 << 20
	DefaultShutdownTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr:            DefaultRedisAddr,
				ReadChunkSize:   DefaultReadChunkSize,
				MaxPendingBytes: DefaultMaxPendingBytes,
			},
			Admin: AdminConfig{
				Addr: DefaultAdminAddr,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
