package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}

	// Process metrics are unavailable on some platforms; a partial gather
	// still returns the runtime families.
	families, _ := r.Gatherer().Gather()
	found := false
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "go_") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Go runtime metrics not registered")
	}
}

func TestRegistry_CommandDone(t *testing.T) {
	r := NewRegistry()

	r.CommandDone("GET", "hit", time.Millisecond)
	r.CommandDone("GET", "hit", time.Millisecond)
	r.CommandDone("GET", "expired", time.Millisecond)
	r.CommandDone("SET", "ok", time.Millisecond)

	if got := testutil.ToFloat64(r.CommandsTotal.WithLabelValues("GET", "hit")); got != 2 {
		t.Errorf("commands_total{GET,hit} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.CommandsTotal.WithLabelValues("SET", "ok")); got != 1 {
		t.Errorf("commands_total{SET,ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ExpiredReads); got != 1 {
		t.Errorf("expired_reads_total = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.CommandDuration); got != 2 {
		t.Errorf("command_duration_seconds series = %d, want 2", got)
	}
}

func TestRegistry_Connections(t *testing.T) {
	r := NewRegistry()

	r.ConnOpened()
	r.ConnOpened()
	r.ConnClosed()

	if got := testutil.ToFloat64(r.ConnectionsActive); got != 1 {
		t.Errorf("connections_active = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ConnectionsTotal); got != 2 {
		t.Errorf("connections_total = %v, want 2", got)
	}
}

func TestRegistry_DecodeError(t *testing.T) {
	r := NewRegistry()

	r.DecodeError("malformed_payload")
	r.DecodeError("malformed_payload")
	r.DecodeError("limit_exceeded")

	if got := testutil.ToFloat64(r.DecodeErrors.WithLabelValues("malformed_payload")); got != 2 {
		t.Errorf("decode_errors_total{malformed_payload} = %v, want 2", got)
	}
}

type fixedLen int

func (n fixedLen) Len() int { return int(n) }

func TestCollector(t *testing.T) {
	c := NewCollector(fixedLen(3))

	expected := `
# HELP respkv_keys Keys held by the store, including expired keys not yet read
# TYPE respkv_keys gauge
respkv_keys 3
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Fatalf("CollectAndCompare: %v", err)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RegisterStore(fixedLen(7))
	r.ConnOpened()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"respkv_keys 7", "respkv_connections_total 1"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("body missing %q", want)
		}
	}
}
