package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		Redis struct {
			Addr          string        `koanf:"addr"`
			ReadChunkSize int           `koanf:"read_chunk_size"`
			IdleTimeout   time.Duration `koanf:"idle_timeout"`
			ErrorReplies  bool          `koanf:"error_replies"`
		} `koanf:"redis"`
	} `koanf:"server"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func defaultTestConfig() testConfig {
	var cfg testConfig
	cfg.Server.Redis.Addr = "127.0.0.1:6379"
	cfg.Server.Redis.ReadChunkSize = 1024
	cfg.Log.Level = "info"
	return cfg
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/etc/respkv.yaml"), WithDotEnv(".env"))
	if l.envPrefix != "TEST_" || l.filePath != "/etc/respkv.yaml" || l.dotEnv != ".env" {
		t.Errorf("options not applied: %+v", l)
	}
}

func TestLoader_DefaultsKept(t *testing.T) {
	cfg := defaultTestConfig()

	if err := NewLoader().Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Redis.Addr != "127.0.0.1:6379" || cfg.Server.Redis.ReadChunkSize != 1024 {
		t.Errorf("defaults lost: %+v", cfg.Server.Redis)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeFile(t, "respkv.yaml", `
server:
  redis:
    addr: "0.0.0.0:7000"
    read_chunk_size: 4096
    idle_timeout: 30s
log:
  level: debug
`)

	cfg := defaultTestConfig()
	if err := NewLoader(WithConfigFile(path)).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Redis.Addr != "0.0.0.0:7000" {
		t.Errorf("Addr = %q, want 0.0.0.0:7000", cfg.Server.Redis.Addr)
	}
	if cfg.Server.Redis.ReadChunkSize != 4096 {
		t.Errorf("ReadChunkSize = %d, want 4096", cfg.Server.Redis.ReadChunkSize)
	}
	if cfg.Server.Redis.IdleTimeout != 30*time.Second {
		t.Errorf("IdleTimeout = %v, want 30s", cfg.Server.Redis.IdleTimeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	if err := NewLoader().LoadFile("/nonexistent/respkv.yaml"); err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
	if err := NewLoader().LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_EnvUnderscoreKeys(t *testing.T) {
	t.Setenv("RESPKV_SERVER_REDIS_READ_CHUNK_SIZE", "2048")
	t.Setenv("RESPKV_SERVER_REDIS_ERROR_REPLIES", "true")
	t.Setenv("RESPKV_SERVER_REDIS_IDLE_TIMEOUT", "5s")

	cfg := defaultTestConfig()
	if err := NewLoader().Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Redis.ReadChunkSize != 2048 {
		t.Errorf("ReadChunkSize = %d, want 2048", cfg.Server.Redis.ReadChunkSize)
	}
	if !cfg.Server.Redis.ErrorReplies {
		t.Error("ErrorReplies should be true")
	}
	if cfg.Server.Redis.IdleTimeout != 5*time.Second {
		t.Errorf("IdleTimeout = %v, want 5s", cfg.Server.Redis.IdleTimeout)
	}
}

func TestLoader_EnvUnknownKey(t *testing.T) {
	t.Setenv("MYAPP_EXTRA_PORT", "9090")

	l := NewLoader(WithEnvPrefix("MYAPP_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if port := l.GetString("extra.port"); port != "9090" {
		t.Errorf("extra.port = %q, want 9090", port)
	}
}

func TestLoader_Priority(t *testing.T) {
	path := writeFile(t, "respkv.yaml", `
server:
  redis:
    addr: "from-file:6379"
log:
  level: warn
`)
	t.Setenv("RESPKV_SERVER_REDIS_ADDR", "from-env:6379")

	cfg := defaultTestConfig()
	if err := NewLoader(WithConfigFile(path)).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Redis.Addr != "from-env:6379" {
		t.Errorf("Addr = %q, want from-env:6379 (env should override file)", cfg.Server.Redis.Addr)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q, want warn (file should override default)", cfg.Log.Level)
	}
}

func TestLoader_DotEnv(t *testing.T) {
	dotenv := writeFile(t, ".env", "RESPKV_LOG_LEVEL=error\nRESPKV_SERVER_REDIS_ADDR=from-dotenv:6379\n")

	// A variable already in the environment wins over the .env file.
	t.Setenv("RESPKV_SERVER_REDIS_ADDR", "from-env:6379")
	// Register cleanup for the variable the .env file will set.
	t.Setenv("RESPKV_LOG_LEVEL", "")
	os.Unsetenv("RESPKV_LOG_LEVEL")

	cfg := defaultTestConfig()
	if err := NewLoader(WithDotEnv(dotenv)).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "error" {
		t.Errorf("Level = %q, want error from .env", cfg.Log.Level)
	}
	if cfg.Server.Redis.Addr != "from-env:6379" {
		t.Errorf("Addr = %q, want from-env:6379", cfg.Server.Redis.Addr)
	}
}

func TestLoader_DotEnvMissing(t *testing.T) {
	cfg := defaultTestConfig()
	if err := NewLoader(WithDotEnv(filepath.Join(t.TempDir(), ".env"))).Load(&cfg); err != nil {
		t.Fatalf("Load() with missing .env error = %v", err)
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	err := l.LoadMap(map[string]any{
		"server": map[string]any{"redis": map[string]any{"addr": "localhost:3000"}},
		"debug":  true,
		"port":   8080,
	})
	if err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	if addr := l.GetString("server.redis.addr"); addr != "localhost:3000" {
		t.Errorf("server.redis.addr = %q, want localhost:3000", addr)
	}
	if !l.GetBool("debug") || l.GetInt("port") != 8080 {
		t.Error("scalar keys not loaded")
	}
	if len(l.Keys()) != 3 {
		t.Errorf("Keys() = %v, want 3 keys", l.Keys())
	}
	if l.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
}

func TestLoader_IsLoaded(t *testing.T) {
	l := NewLoader()
	if l.IsLoaded() {
		t.Error("IsLoaded() should be false before Load()")
	}

	cfg := defaultTestConfig()
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load()")
	}
}

func TestStructKeys(t *testing.T) {
	l := NewLoader()
	l.IndexKeys(&testConfig{})

	want := map[string]string{
		"SERVER_REDIS_ADDR":            "server.redis.addr",
		"SERVER_REDIS_READ_CHUNK_SIZE": "server.redis.read_chunk_size",
		"SERVER_REDIS_IDLE_TIMEOUT":    "server.redis.idle_timeout",
		"SERVER_REDIS_ERROR_REPLIES":   "server.redis.error_replies",
		"LOG_LEVEL":                    "log.level",
	}
	if len(l.envKeys) != len(want) {
		t.Fatalf("envKeys = %v, want %d entries", l.envKeys, len(want))
	}
	for env, key := range want {
		if l.envKeys[env] != key {
			t.Errorf("envKeys[%s] = %q, want %q", env, l.envKeys[env], key)
		}
	}
}
