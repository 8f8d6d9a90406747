package connection

import (
	"context"
	"time"
)

// Manager keeps one client open across REPL commands.
type Manager struct {
	timeout time.Duration
	current *Client
}

// NewManager creates a new connection manager.
func NewManager(timeout time.Duration) *Manager {
	return &Manager{timeout: timeout}
}

// Connect returns a client for addr, reusing the current one when it points
// at the same server.
func (m *Manager) Connect(ctx context.Context, addr string) (*Client, error) {
	if m.current != nil && m.current.Addr() == addr {
		return m.current, nil
	}
	m.Disconnect()

	c, err := Dial(ctx, addr, m.timeout)
	if err != nil {
		return nil, err
	}
	m.current = c
	return c, nil
}

// Disconnect closes the current client. The server closes a connection on
// any protocol error, so callers drop the client after a failed request.
func (m *Manager) Disconnect() {
	if m.current != nil {
		_ = m.current.Close()
		m.current = nil
	}
}

// Current returns the current client, or nil.
func (m *Manager) Current() *Client {
	return m.current
}

// IsConnected returns true if a client is open.
func (m *Manager) IsConnected() bool {
	return m.current != nil
}
