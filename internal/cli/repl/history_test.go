package repl

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestHistory_Add(t *testing.T) {
	h := NewHistory("")
	h.Add("a")
	h.Add("b")
	h.Add("b")

	if got := h.Entries(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Entries() = %v", got)
	}
}

func TestHistory_Add_MaxSize(t *testing.T) {
	h := NewHistory("")
	h.maxSize = 3

	for _, cmd := range []string{"cmd1", "cmd2", "cmd3", "cmd4"} {
		h.Add(cmd)
	}

	if got := h.Entries(); !reflect.DeepEqual(got, []string{"cmd2", "cmd3", "cmd4"}) {
		t.Errorf("Entries() = %v", got)
	}
}

func TestHistory_Get(t *testing.T) {
	h := NewHistory("")
	h.Add("first")
	h.Add("second")
	h.Add("third")

	tests := []struct {
		index int
		want  string
	}{
		{0, "third"},
		{1, "second"},
		{2, "first"},
		{3, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := h.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(file)
	h.Add("SET k v")
	h.Add("GET k")
	if err := h.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	h2 := NewHistory(file)
	if err := h2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := h2.Entries(); !reflect.DeepEqual(got, []string{"SET k v", "GET k"}) {
		t.Errorf("Entries() = %v", got)
	}
}

func TestHistory_MissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"))
	if err := h.Load(); err != nil {
		t.Errorf("Load should not error for a missing file: %v", err)
	}
	if len(h.Entries()) != 0 {
		t.Error("entries should be empty")
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")
	h.Add("x")
	if err := h.Save(); err != nil {
		t.Errorf("Save without a file should be a no-op: %v", err)
	}
	if err := h.Load(); err != nil {
		t.Errorf("Load without a file should be a no-op: %v", err)
	}
}
