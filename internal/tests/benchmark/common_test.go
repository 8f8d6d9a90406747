package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
)

// KeyCounts defines the store sizes for benchmarking.
var KeyCounts = []int{1000, 10000, 100000}

func key(i int) string {
	return fmt.Sprintf("key:%08d", i)
}

// prefillStore stores count keys without expiry.
func prefillStore(b *testing.B, store *memory.Store, count int) {
	b.Helper()
	for i := 0; i < count; i++ {
		if err := store.Set(key(i), "value", 0); err != nil {
			b.Fatalf("Set: %v", err)
		}
	}
}

// startServer runs a RESP server on a loopback port for the benchmark.
func startServer(b *testing.B) string {
	b.Helper()

	store := memory.New()
	srv := redisserver.New(&redisserver.Config{Addr: "127.0.0.1:0"}, command.New(store))
	if err := srv.Start(context.Background()); err != nil {
		b.Fatalf("Start: %v", err)
	}
	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		_ = store.Close()
	})
	return srv.Addr().String()
}
