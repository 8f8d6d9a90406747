package config

import (
	"fmt"
	"time"
)

// CLIConfig is the configuration for respkv-cli.
type CLIConfig struct {
	DefaultServer string        `yaml:"default_server"`
	DefaultOutput string        `yaml:"default_output"` // raw, json, yaml, table
	Timeout       time.Duration `yaml:"timeout"`
	HistoryFile   string        `yaml:"history_file"`

	// Saved servers by name.
	Connections map[string]ConnectionConfig `yaml:"connections"`

	CurrentConnection string `yaml:"current_connection"`
}

// ConnectionConfig stores a saved server.
type ConnectionConfig struct {
	Server string `yaml:"server"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer: "127.0.0.1:6379",
		DefaultOutput: "raw",
		Timeout:       5 * time.Second,
		Connections:   make(map[string]ConnectionConfig),
	}
}

// Server returns the address to dial: the current connection when one is
// selected, otherwise DefaultServer.
func (c *CLIConfig) Server() string {
	if c.CurrentConnection != "" {
		if conn, ok := c.Connections[c.CurrentConnection]; ok && conn.Server != "" {
			return conn.Server
		}
	}
	return c.DefaultServer
}

// Resolve maps a saved connection name to its address. Anything else is
// returned unchanged and treated as host:port.
func (c *CLIConfig) Resolve(target string) string {
	if conn, ok := c.Connections[target]; ok && conn.Server != "" {
		return conn.Server
	}
	return target
}

// Use selects a saved connection.
func (c *CLIConfig) Use(name string) error {
	if _, ok := c.Connections[name]; !ok {
		return fmt.Errorf("connection %q not found", name)
	}
	c.CurrentConnection = name
	return nil
}
