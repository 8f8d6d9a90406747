package resp

import (
	"strconv"
	"strings"
)

// Fixed replies.
const (
	OK   = "+OK\r\n"
	Pong = "+PONG\r\n"

	// NullBulk is the reply for a key that expired on this read.
	NullBulk = "$-1\r\n"

	// NilText is the reply for a key that was never set (or already purged).
	NilText = "+(nil)\r\n"
)

// SimpleString formats s as a simple-string reply.
func SimpleString(s string) string {
	return "+" + s + "\r\n"
}

// ErrorReply formats msg as an error reply. CR and LF are replaced so the
// reply stays a single frame.
func ErrorReply(msg string) string {
	msg = strings.NewReplacer("\r", " ", "\n", " ").Replace(msg)
	return "-" + msg + "\r\n"
}

// Encode serializes v. Text is written as a bulk string so that any byte
// content survives the round trip through Decode.
func Encode(v Value) []byte {
	return AppendValue(nil, v)
}

// AppendValue appends the encoding of v to dst.
func AppendValue(dst []byte, v Value) []byte {
	switch v := v.(type) {
	case Text:
		dst = append(dst, tagBulkString)
		dst = strconv.AppendInt(dst, int64(len(v)), 10)
		dst = append(dst, '\r', '\n')
		dst = append(dst, v...)
		return append(dst, '\r', '\n')
	case Integer:
		dst = append(dst, tagInteger)
		dst = strconv.AppendInt(dst, int64(v), 10)
		return append(dst, '\r', '\n')
	case Array:
		dst = append(dst, tagArray)
		dst = strconv.AppendInt(dst, int64(len(v)), 10)
		dst = append(dst, '\r', '\n')
		for _, elem := range v {
			dst = AppendValue(dst, elem)
		}
		return dst
	default:
		return dst
	}
}

// Command encodes a request as an array of bulk strings.
func Command(args ...string) []byte {
	return Encode(Texts(args...))
}
