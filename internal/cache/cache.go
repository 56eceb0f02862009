// Package cache is the process-wide TTL cache used to memoize expensive counts
// and to invalidate list data after writes.
package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// SweepInterval is how often the shared cache drops expired entries proactively.
const SweepInterval = 5 * time.Minute

const (
	KeyUsersTotal = "users:total"
	BlogsPrefix   = "blogs:"
)

// BlogCountKey caches the total for one blog search.
func BlogCountKey(search, projectID string, includeDeleted bool) string {
	scope := "active"
	if includeDeleted {
		scope = "all"
	}
	return BlogsPrefix + "count:" + scope + ":" + projectID + ":" + search
}

// Store is the narrow surface call sites use; they never touch the backing LRU.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	Clear()
	InvalidatePattern(prefix string) int
	Stats() Stats
}

type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// DefaultMaxEntries bounds the shared cache; the least recently used key goes first.
const DefaultMaxEntries = 10000

// Memory is an in-memory Store on top of a bounded LRU. Each entry carries its own
// expiry, checked lazily on Get and by Sweep.
type Memory struct {
	mu     sync.Mutex
	lru    *lru.Cache[string, entry]
	now    func() time.Time
	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewMemory() *Memory {
	return NewMemorySize(DefaultMaxEntries)
}

// NewMemorySize builds a Memory holding at most size entries (DefaultMaxEntries when size < 1).
func NewMemorySize(size int) *Memory {
	if size < 1 {
		size = DefaultMaxEntries
	}
	l, err := lru.New[string, entry](size)
	if err != nil {
		panic(err)
	}
	return &Memory{lru: l, now: time.Now}
}

func (m *Memory) Get(key string) (any, bool) {
	m.mu.Lock()
	e, ok := m.lru.Get(key)
	if ok && e.expired(m.now()) {
		m.lru.Remove(key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		m.misses.Add(1)
		return nil, false
	}
	m.hits.Add(1)
	return e.value, true
}

// Set overwrites unconditionally.
func (m *Memory) Set(key string, value any, ttl time.Duration) {
	m.mu.Lock()
	m.lru.Add(key, entry{value: value, expiresAt: m.now().Add(ttl)})
	m.mu.Unlock()
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	m.lru.Remove(key)
	m.mu.Unlock()
}

func (m *Memory) Clear() {
	m.mu.Lock()
	m.lru.Purge()
	m.mu.Unlock()
}

// InvalidatePattern removes every key starting with prefix and reports how many were removed.
func (m *Memory) InvalidatePattern(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, k := range m.lru.Keys() {
		if strings.HasPrefix(k, prefix) && m.lru.Remove(k) {
			n++
		}
	}
	return n
}

func (m *Memory) Stats() Stats {
	return Stats{Entries: m.lru.Len(), Hits: m.hits.Load(), Misses: m.misses.Load()}
}

// Sweep deletes all entries expired at now.
func (m *Memory) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, k := range m.lru.Keys() {
		if e, ok := m.lru.Peek(k); ok && e.expired(now) {
			m.lru.Remove(k)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep(m.now())
		}
	}
}

var (
	sharedOnce sync.Once
	shared     *Memory
)

// Shared returns the process cache, created on first use with its sweeper running
// for the life of the process.
func Shared() *Memory {
	sharedOnce.Do(func() {
		shared = NewMemory()
		go shared.Run(context.Background(), SweepInterval)
	})
	return shared
}

// GetAs reads key and asserts its type. A type mismatch counts as a miss.
func GetAs[T any](s Store, key string) (T, bool) {
	var zero T
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
