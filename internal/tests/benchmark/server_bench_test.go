package benchmark

import (
	"bufio"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/core/resp"
)

func BenchmarkServer_RoundTrip(b *testing.B) {
	addr := startServer(b)

	client, err := connection.Dial(context.Background(), addr, 5*time.Second)
	if err != nil {
		b.Fatal(err)
	}
	defer client.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Do("SET", key(i%1000), "value"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkServer_Pipelined(b *testing.B) {
	addr := startServer(b)

	const depth = 64
	var batch []byte
	for i := 0; i < depth; i++ {
		batch = append(batch, resp.Command("GET", key(i))...)
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		b.Fatal(err)
	}
	defer conn.Close()
	br := bufio.NewReader(conn)

	b.SetBytes(int64(len(batch)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := conn.Write(batch); err != nil {
			b.Fatal(err)
		}
		for j := 0; j < depth; j++ {
			if _, err := connection.ReadReply(br); err != nil {
				if err == io.EOF {
					b.Fatal("server closed the connection")
				}
				b.Fatal(err)
			}
		}
	}
}
