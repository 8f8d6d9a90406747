package connection

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/yndnr/respkv/internal/core/resp"
)

// DefaultTimeout bounds dialing and each request.
const DefaultTimeout = 5 * time.Second

// Client is a RESP client bound to one TCP connection.
// It is not safe for concurrent use.
type Client struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
	br      *bufio.Reader
}

// Dial connects to addr.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{
		addr:    addr,
		timeout: timeout,
		conn:    conn,
		br:      bufio.NewReader(conn),
	}, nil
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Do sends a request and waits for its reply. A server error reply is
// returned as a Reply of KindError, not as an error.
func (c *Client) Do(args ...string) (Reply, error) {
	if err := c.Send(args...); err != nil {
		return Reply{}, err
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return Reply{}, err
	}
	return ReadReply(c.br)
}

// Send writes a request without reading a reply.
func (c *Client) Send(args ...string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	_, err := c.conn.Write(resp.Command(args...))
	return err
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
