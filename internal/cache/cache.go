package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"VolRadar/internal/model"
)

// DefaultTTL is how long a computed ranking stays valid.
const DefaultTTL = 600 * time.Second

// Key builds the cache key for a ticker universe. The key is independent of
// ticker order so that the same universe always hits the same entry.
func Key(tickers []string) string {
	sorted := make([]string, len(tickers))
	copy(sorted, tickers)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

type entry struct {
	result   []model.RankedCandidate
	storedAt time.Time
}

// ResultCache is a process-wide TTL cache for pipeline results. It is an
// owned, injectable component: one instance is created at startup and handed
// to whoever needs it. Read-mostly; a single writer refreshes entries.
type ResultCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a ResultCache with the given TTL. A non-positive ttl falls back
// to DefaultTTL.
func New(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached result for key if present and within the TTL. The
// returned slice is a copy so callers cannot mutate the stored rows.
func (c *ResultCache) Get(key string) ([]model.RankedCandidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	out := make([]model.RankedCandidate, len(e.result))
	copy(out, e.result)
	return out, true
}

// Put stores a result for key, stamping it with the current time.
func (c *ResultCache) Put(key string, result []model.RankedCandidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{result: result, storedAt: c.now()}
}

// Invalidate clears every entry. Safe to call when nothing is cached.
func (c *ResultCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
