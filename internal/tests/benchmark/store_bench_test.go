package benchmark

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/core/resp"
	"github.com/yndnr/respkv/internal/storage/memory"
)

func BenchmarkStore_Get(b *testing.B) {
	for _, count := range KeyCounts {
		b.Run(fmt.Sprintf("keys=%d", count), func(b *testing.B) {
			store := memory.New()
			prefillStore(b, store, count)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := store.Get(key(i % count)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStore_Set(b *testing.B) {
	store := memory.New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := store.Set(key(i%100000), "value", 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStore_ParallelMixed(b *testing.B) {
	store := memory.New()
	prefillStore(b, store, 10000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(rand.Int63()))
		for pb.Next() {
			k := key(r.Intn(10000))
			if r.Intn(10) == 0 {
				_ = store.Set(k, "value", 0)
			} else {
				_, _, _ = store.Get(k)
			}
		}
	})
}

func BenchmarkInterpret(b *testing.B) {
	store := memory.New()
	prefillStore(b, store, 1000)
	in := command.New(store)

	requests := map[string]resp.Value{
		"ping": resp.Texts("PING"),
		"get":  resp.Texts("GET", key(7)),
		"set":  resp.Texts("SET", key(7), "value", "PX", "60000"),
	}

	for name, req := range requests {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := in.Interpret(req); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
