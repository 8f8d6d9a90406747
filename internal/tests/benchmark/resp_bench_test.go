package benchmark

import (
	"strings"
	"testing"

	"github.com/yndnr/respkv/internal/core/resp"
)

func BenchmarkDecode(b *testing.B) {
	frames := map[string][]byte{
		"ping":   resp.Command("PING"),
		"set":    resp.Command("SET", "session:42", "payload", "PX", "60000"),
		"large":  resp.Command("SET", "blob", strings.Repeat("x", 64*1024)),
		"inline": []byte("+PING\r\n"),
	}

	for name, frame := range frames {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(frame)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := resp.Decode(frame); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecode_Pipelined(b *testing.B) {
	var buf []byte
	for i := 0; i < 100; i++ {
		buf = append(buf, resp.Command("GET", key(i))...)
	}

	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for rest := buf; len(rest) > 0; {
			_, n, err := resp.Decode(rest)
			if err != nil {
				b.Fatal(err)
			}
			rest = rest[n:]
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	v := resp.Texts("SET", "session:42", "payload", "PX", "60000")
	b.ReportAllocs()
	dst := make([]byte, 0, 128)
	for i := 0; i < b.N; i++ {
		dst = resp.AppendValue(dst[:0], v)
	}
}
