package resp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"text", Text("hello"), "$5\r\nhello\r\n"},
		{"empty text", Text(""), "$0\r\n\r\n"},
		{"integer", Integer(-7), ":-7\r\n"},
		{"array", Texts("GET", "k"), "*2\r\n$3\r\nGET\r\n$1\r\nk\r\n"},
		{"empty array", Array{}, "*0\r\n"},
		{"nested", Array{Integer(1), Array{Text("x")}}, "*2\r\n:1\r\n*1\r\n$1\r\nx\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Encode(tt.value)))
		})
	}
}

func TestEncode_DecodeBack(t *testing.T) {
	values := []Value{
		Texts("SET", "user:1", "hello world", "PX", "100"),
		Array{Text("a\r\nb"), Integer(1 << 40), Array{}, Array{Text("")}},
		Text("ünïcödé"),
	}

	for _, v := range values {
		frame := Encode(v)
		got, n, err := Decode(frame)
		require.NoError(t, err, "value %s", v)
		assert.Equal(t, len(frame), n)
		assert.Equal(t, v, got)
	}
}

func TestReplies(t *testing.T) {
	assert.Equal(t, "+hey\r\n", SimpleString("hey"))
	assert.Equal(t, "+\r\n", SimpleString(""))
	assert.Equal(t, "-ERR bad  input\r\n", ErrorReply("ERR bad\r\ninput"))

	// Fixed replies must themselves be frames a client can read.
	for _, r := range []string{OK, Pong, NilText} {
		v, n, err := Decode([]byte(r))
		require.NoError(t, err, r)
		assert.Equal(t, len(r), n)
		assert.IsType(t, Text(""), v)
	}
}

func TestValueString(t *testing.T) {
	v := Array{Text("ECHO"), Integer(3), Array{Text("x")}}
	assert.Equal(t, `["ECHO" 3 ["x"]]`, v.String())
}
