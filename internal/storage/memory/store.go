package memory

import (
	"sync"
	"time"

	"github.com/yndnr/respkv/internal/core/domain"
)

// Entry is a stored value with its expiry.
type Entry struct {
	Value string

	// ExpiresAt is an absolute Unix time in milliseconds. Zero means the
	// entry never expires.
	ExpiresAt int64
}

// ExpiredAt reports whether the entry is expired at nowMillis.
func (e Entry) ExpiredAt(nowMillis int64) bool {
	return e.ExpiresAt > 0 && nowMillis >= e.ExpiresAt
}

// Lookup is the outcome of Store.Get.
type Lookup int

const (
	// Missing means the key is not in the map.
	Missing Lookup = iota
	// Hit means the key is present and not expired.
	Hit
	// Expired means the key was present but expired; it has been removed.
	Expired
)

func (l Lookup) String() string {
	switch l {
	case Hit:
		return "hit"
	case Expired:
		return "expired"
	default:
		return "missing"
	}
}

// Store is the process-wide key-value map.
//
// A single mutex covers the whole map. Every operation takes it once, so a
// lookup and the lazy removal of an expired entry happen atomically.
type Store struct {
	mu      sync.Mutex
	entries map[string]Entry
	closed  bool

	now func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithClock sets the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]Entry),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NowMillis returns the store clock in Unix milliseconds.
func (s *Store) NowMillis() int64 {
	return s.now().UnixMilli()
}

// Get looks up key. An entry whose expiry has passed is deleted and
// reported as Expired; the next Get for the same key reports Missing.
func (s *Store) Get(key string) (Entry, Lookup, error) {
	now := s.NowMillis()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Entry{}, Missing, domain.ErrStoreUnavailable.WithDetails("store closed")
	}

	entry, ok := s.entries[key]
	if !ok {
		return Entry{}, Missing, nil
	}

	if entry.ExpiredAt(now) {
		delete(s.entries, key)
		return Entry{}, Expired, nil
	}

	return entry, Hit, nil
}

// Set stores value under key, replacing any previous entry and its expiry.
func (s *Store) Set(key, value string, expiresAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreUnavailable.WithDetails("store closed")
	}

	s.entries[key] = Entry{Value: value, ExpiresAt: expiresAt}
	return nil
}

// Len returns the number of stored entries, including expired entries that
// have not been read since they expired.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close releases the map. Later operations fail with StoreUnavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.entries = nil
	return nil
}
