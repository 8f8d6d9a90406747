package resp

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"github.com/yndnr/respkv/internal/core/domain"
)

// Protocol limits to keep a hostile length prefix from reserving memory.
const (
	// MaxArrayLen limits the number of elements in a RESP array.
	MaxArrayLen = 1024

	// MaxBulkLen limits the size of a single bulk string (512KB).
	MaxBulkLen = 512 * 1024

	// MaxDepth limits array nesting.
	MaxDepth = 32
)

// Type tags.
const (
	tagArray        = '*'
	tagSimpleString = '+'
	tagInteger      = ':'
	tagBulkString   = '$'
)

// Decode decodes exactly one value from the front of buf and returns it
// together with the number of bytes it spans.
//
// Errors are *domain.DomainError values of a decode kind. When
// domain.IsIncomplete(err) is true the buffer holds a prefix of a frame and
// the caller should decode again once more bytes have arrived.
func Decode(buf []byte) (Value, int, error) {
	return decode(buf, 0)
}

func decode(buf []byte, depth int) (Value, int, error) {
	if len(buf) == 0 {
		return nil, 0, domain.ErrUnsupportedType.WithDetails("empty buffer")
	}

	switch buf[0] {
	case tagSimpleString:
		return readSimpleString(buf)
	case tagInteger:
		return readInteger(buf)
	case tagBulkString:
		return readBulkString(buf)
	case tagArray:
		return readArray(buf, depth)
	default:
		return nil, 0, domain.ErrUnsupportedType.Detailf("type tag %q", buf[0])
	}
}

// "+OK\r\n"
func readSimpleString(buf []byte) (Value, int, error) {
	payload, next, err := readLine(buf)
	if err != nil {
		return nil, 0, err
	}
	text, err := parseText(payload)
	if err != nil {
		return nil, 0, err
	}
	return text, next, nil
}

// ":1000\r\n"
func readInteger(buf []byte) (Value, int, error) {
	payload, next, err := readLine(buf)
	if err != nil {
		return nil, 0, err
	}
	if !utf8.Valid(payload) {
		return nil, 0, domain.ErrMalformedPayload.WithDetails("integer is not valid utf-8")
	}
	n, err := strconv.ParseInt(string(payload), 10, 64)
	if err != nil {
		return nil, 0, domain.ErrMalformedPayload.Detailf("invalid integer %q", payload).WithCause(err)
	}
	return Integer(n), next, nil
}

// "$5\r\nhello\r\n"
func readBulkString(buf []byte) (Value, int, error) {
	payload, start, err := readLine(buf)
	if err != nil {
		return nil, 0, err
	}
	size, err := parseLength(payload, MaxBulkLen, "bulk length")
	if err != nil {
		return nil, 0, err
	}

	end := start + size
	if len(buf) < end {
		return nil, 0, domain.ErrTruncated.Detailf("bulk string needs %d bytes, have %d", end+2, len(buf))
	}
	// Reject a wrong terminator as soon as its bytes are visible.
	if len(buf) > end && buf[end] != '\r' {
		return nil, 0, domain.ErrMalformedPayload.WithDetails("invalid bulk terminator")
	}
	if len(buf) > end+1 && buf[end+1] != '\n' {
		return nil, 0, domain.ErrMalformedPayload.WithDetails("invalid bulk terminator")
	}
	if len(buf) < end+2 {
		return nil, 0, domain.ErrTruncated.Detailf("bulk string needs %d bytes, have %d", end+2, len(buf))
	}

	text, err := parseText(buf[start:end])
	if err != nil {
		return nil, 0, err
	}
	return text, end + 2, nil
}

// "*2\r\n$4\r\nECHO\r\n$3\r\nhey\r\n"
func readArray(buf []byte, depth int) (Value, int, error) {
	payload, pos, err := readLine(buf)
	if err != nil {
		return nil, 0, err
	}
	count, err := parseLength(payload, MaxArrayLen, "array length")
	if err != nil {
		return nil, 0, err
	}
	if depth+1 > MaxDepth {
		return nil, 0, domain.ErrLimitExceeded.Detailf("array nesting exceeds %d", MaxDepth)
	}

	values := make(Array, 0, count)
	for len(values) < count {
		if pos >= len(buf) {
			return nil, 0, domain.ErrTruncated.Detailf("array has %d of %d elements", len(values), count)
		}
		v, n, err := decode(buf[pos:], depth+1)
		if err != nil {
			return nil, 0, err
		}
		values = append(values, v)
		pos += n
	}
	return values, pos, nil
}

// readLine returns the bytes between the type tag and the first '\r', and
// the offset just past the following '\n'.
func readLine(buf []byte) ([]byte, int, error) {
	pos := bytes.IndexByte(buf, '\r')
	if pos < 0 {
		return nil, 0, domain.ErrUnterminatedFrame.WithDetails("missing CR")
	}
	if pos+1 >= len(buf) {
		return nil, 0, domain.ErrTruncated.WithDetails("missing LF")
	}
	if buf[pos+1] != '\n' {
		return nil, 0, domain.ErrMalformedPayload.WithDetails("CR not followed by LF")
	}
	return buf[1:pos], pos + 2, nil
}

func parseText(b []byte) (Text, error) {
	if !utf8.Valid(b) {
		return "", domain.ErrMalformedPayload.WithDetails("string is not valid utf-8")
	}
	return Text(b), nil
}

func parseLength(payload []byte, limit int, what string) (int, error) {
	n, err := strconv.ParseUint(string(payload), 10, 64)
	if err != nil {
		return 0, domain.ErrMalformedPayload.Detailf("invalid %s %q", what, payload).WithCause(err)
	}
	if n > uint64(limit) {
		return 0, domain.ErrLimitExceeded.Detailf("%s %d exceeds limit %d", what, n, limit)
	}
	return int(n), nil
}
