package connection

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxBulkLen bounds the bulk replies the client accepts.
const MaxBulkLen = 512 * 1024 * 1024

// ErrProtocol is returned for a reply the reader cannot parse.
var ErrProtocol = errors.New("protocol error")

// ReplyKind identifies the RESP type of a reply.
type ReplyKind string

const (
	KindSimple  ReplyKind = "simple"
	KindError   ReplyKind = "error"
	KindInteger ReplyKind = "integer"
	KindBulk    ReplyKind = "bulk"
	KindNil     ReplyKind = "nil"
)

// Reply is one server reply.
type Reply struct {
	Kind ReplyKind
	// Str holds the text of simple, error and bulk replies.
	Str string
	// Int holds the value of integer replies.
	Int int64
}

// String renders the reply the way redis-cli does.
func (r Reply) String() string {
	switch r.Kind {
	case KindError:
		return "(error) " + r.Str
	case KindInteger:
		return "(integer) " + strconv.FormatInt(r.Int, 10)
	case KindNil:
		return "(nil)"
	case KindBulk:
		return strconv.Quote(r.Str)
	default:
		return r.Str
	}
}

// Value returns the reply payload as text, empty for nil.
func (r Reply) Value() string {
	switch r.Kind {
	case KindInteger:
		return strconv.FormatInt(r.Int, 10)
	case KindNil:
		return ""
	default:
		return r.Str
	}
}

// ReadReply reads one reply from r.
func ReadReply(r *bufio.Reader) (Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return Reply{}, err
	}
	if line == "" {
		return Reply{}, fmt.Errorf("%w: empty reply line", ErrProtocol)
	}

	payload := line[1:]
	switch line[0] {
	case '+':
		return Reply{Kind: KindSimple, Str: payload}, nil
	case '-':
		return Reply{Kind: KindError, Str: payload}, nil
	case ':':
		n, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return Reply{}, fmt.Errorf("%w: integer %q", ErrProtocol, payload)
		}
		return Reply{Kind: KindInteger, Int: n}, nil
	case '$':
		return readBulk(r, payload)
	default:
		return Reply{}, fmt.Errorf("%w: unexpected reply type %q", ErrProtocol, line[0])
	}
}

func readBulk(r *bufio.Reader, header string) (Reply, error) {
	n, err := strconv.Atoi(header)
	if err != nil || n < -1 || n > MaxBulkLen {
		return Reply{}, fmt.Errorf("%w: bulk length %q", ErrProtocol, header)
	}
	if n == -1 {
		return Reply{Kind: KindNil}, nil
	}

	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Reply{}, err
	}
	if buf[n] != '\r' || buf[n+1] != '\n' {
		return Reply{}, fmt.Errorf("%w: bulk reply not terminated by CRLF", ErrProtocol)
	}
	return Reply{Kind: KindBulk, Str: string(buf[:n])}, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(line, "\r\n") {
		return "", fmt.Errorf("%w: line not terminated by CRLF", ErrProtocol)
	}
	return line[:len(line)-2], nil
}
