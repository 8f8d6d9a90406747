package resp

import (
	"strconv"
	"strings"
)

// Value is a decoded protocol value: Array, Text or Integer.
//
// The set is closed; only types in this package implement Value.
type Value interface {
	isValue()
	String() string
}

// Array is an ordered sequence of values. For requests the first element
// is the command name.
type Array []Value

// Text is a simple string or a bulk string. The two framings decode to the
// same variant.
type Text string

// Integer is a signed 64-bit RESP integer.
type Integer int64

func (Array) isValue()   {}
func (Text) isValue()    {}
func (Integer) isValue() {}

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (t Text) String() string {
	return strconv.Quote(string(t))
}

func (n Integer) String() string {
	return strconv.FormatInt(int64(n), 10)
}

// Texts builds an Array of Text values, the shape of a client request.
func Texts(args ...string) Array {
	out := make(Array, len(args))
	for i, a := range args {
		out[i] = Text(a)
	}
	return out
}
