package redisserver

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/internal/core/resp"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// conn is a single client connection.
type conn struct {
	nc      net.Conn
	id      string
	limiter *rate.Limiter

	mu      sync.Mutex
	closing bool

	closed atomic.Bool
}

func newConn(nc net.Conn, id string, rateLimit int) *conn {
	c := &conn{nc: nc, id: id}
	if rateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rateLimit), rateLimit)
	}
	return c
}

func (c *conn) close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.nc.Close()
}

// armRead sets the read deadline for the next read. It reports false once
// the connection has been interrupted by Shutdown.
func (c *conn) armRead(idle time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closing {
		return false
	}
	var deadline time.Time
	if idle > 0 {
		deadline = time.Now().Add(idle)
	}
	_ = c.nc.SetReadDeadline(deadline)
	return true
}

// interrupt wakes a blocked read without dropping a reply in progress.
func (c *conn) interrupt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closing = true
	_ = c.nc.SetReadDeadline(time.Now())
}

func (c *conn) interrupted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closing
}

func (c *conn) write(b []byte, timeout time.Duration) error {
	if len(b) == 0 {
		return nil
	}
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := c.nc.SetWriteDeadline(deadline); err != nil {
		return err
	}
	_, err := c.nc.Write(b)
	return err
}

func (s *Server) serveConn(ctx context.Context, c *conn) {
	s.metrics.ConnOpened()
	defer s.metrics.ConnClosed()
	defer c.close()

	ctx = logger.WithConnID(logger.WithLogger(ctx, s.logger), c.id)
	log := logger.L(ctx)
	log.Debug("connection opened", "remote", c.nc.RemoteAddr().String())

	chunk := make([]byte, s.cfg.ReadChunkSize)
	var pending []byte

	for {
		if !c.armRead(s.cfg.IdleTimeout) {
			log.Debug("connection interrupted by shutdown")
			return
		}

		n, readErr := c.nc.Read(chunk)
		if n > 0 {
			pending = append(pending, chunk[:n]...)

			out, consumed, err := s.process(ctx, c, pending)
			pending = pending[:copy(pending, pending[consumed:])]
			if err == nil && len(pending) > s.cfg.MaxPendingBytes {
				err = domain.ErrLimitExceeded.Detailf("%d bytes pending without a complete frame", len(pending))
			}
			if kind := domain.KindOf(err); kind.IsDecode() {
				s.metrics.DecodeError(string(kind))
			}
			if err != nil {
				if domain.IsKind(err, domain.KindStoreUnavailable) {
					log.Warn("store unavailable, closing connection", "error", err)
				} else {
					log.Debug("closing connection", "error", err, "frame", string(pending))
				}
				if s.cfg.ErrorReplies {
					out = append(out, errorReply(err)...)
				}
			}

			if werr := c.write(out, s.cfg.WriteTimeout); werr != nil {
				log.Debug("connection write failed", "error", werr)
				return
			}
			if err != nil {
				return
			}
		}

		if readErr != nil {
			var netErr net.Error
			switch {
			case errors.Is(readErr, io.EOF):
				log.Debug("connection closed by client")
			case c.interrupted():
				log.Debug("connection interrupted by shutdown")
			case errors.As(readErr, &netErr) && netErr.Timeout():
				log.Debug("connection idle timeout")
			default:
				log.Debug("connection read failed", "error", readErr)
			}
			return
		}
	}
}

// process serves every complete frame at the head of buf. It returns the
// replies, the number of bytes consumed and the error that must close the
// connection, if any. An incomplete trailing frame is left for the next read.
func (s *Server) process(ctx context.Context, c *conn, buf []byte) ([]byte, int, error) {
	var out []byte
	consumed := 0

	for consumed < len(buf) {
		v, n, err := resp.Decode(buf[consumed:])
		if err != nil {
			if domain.IsIncomplete(err) {
				return out, consumed, nil
			}
			return out, consumed, err
		}
		consumed += n

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return out, consumed, err
			}
		}

		reply, err := s.handler.Interpret(v)
		if err != nil {
			return out, consumed, err
		}
		out = append(out, reply...)
	}

	return out, consumed, nil
}

func errorReply(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		msg := de.Message
		if de.Details != "" {
			msg += ": " + de.Details
		}
		return resp.ErrorReply("ERR " + string(de.Kind) + " " + msg)
	}
	return resp.ErrorReply("ERR " + err.Error())
}
