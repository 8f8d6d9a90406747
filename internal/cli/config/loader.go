package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Merge.
const (
	EnvServer  = "RESPKV_SERVER"
	EnvOutput  = "RESPKV_OUTPUT"
	EnvTimeout = "RESPKV_TIMEOUT"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".respkv", "cli.yaml")
}

// DefaultHistoryPath returns the default REPL history file path.
func DefaultHistoryPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".respkv", "history")
}

// Load loads CLI configuration from file. A missing file yields Default.
// Fields absent from the file keep their defaults.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Connections == nil {
		cfg.Connections = make(map[string]ConnectionConfig)
	}
	return cfg, nil
}

// Save writes CLI configuration to file with mode 0600.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Merge overrides cfg with environment variables, then with flags.
// Flag keys are server, output and timeout.
func Merge(cfg *CLIConfig, env map[string]string, flags map[string]string) (*CLIConfig, error) {
	merged := *cfg
	apply := func(server, output, timeout string) error {
		if server != "" {
			merged.DefaultServer = server
			merged.CurrentConnection = ""
		}
		if output != "" {
			merged.DefaultOutput = output
		}
		if timeout != "" {
			d, err := time.ParseDuration(timeout)
			if err != nil {
				return fmt.Errorf("invalid timeout %q: %w", timeout, err)
			}
			merged.Timeout = d
		}
		return nil
	}

	if err := apply(env[EnvServer], env[EnvOutput], env[EnvTimeout]); err != nil {
		return nil, err
	}
	if err := apply(flags["server"], flags["output"], flags["timeout"]); err != nil {
		return nil, err
	}
	return &merged, nil
}
