// Package cache provides the process-wide, in-memory response cache for
// model calls. Entries are time-bounded; there is no persistence.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// DefaultTTL bounds how long a cached model response stays valid.
const DefaultTTL = 24 * time.Hour

// KeyFrom builds a cache key from the operation kind, source URL, and page
// content, so identical pages are not re-sent to the model.
func KeyFrom(kind, url, content string) string {
	h := sha256.Sum256([]byte(kind + "\n" + url + "\n" + content))
	return hex.EncodeToString(h[:])
}

type entry struct {
	value    []byte
	deadline time.Time
}

// TTLCache is a mutex-guarded expiring map. Expired entries are evicted
// lazily on lookup. Construct one at process start and inject it; concurrent
// requests for the same key may both miss and both call the model, which is
// an accepted simplification.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewTTL returns a cache whose entries expire after ttl. Zero or negative
// ttl falls back to DefaultTTL.
func NewTTL(ttl time.Duration) *TTLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTLCache{entries: make(map[string]entry), ttl: ttl, now: time.Now}
}

// Get returns the cached bytes for key, evicting the entry if it expired.
func (c *TTLCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.deadline) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Put stores value under key with a fresh deadline.
func (c *TTLCache) Put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, deadline: c.now().Add(c.ttl)}
}

// Evict removes key regardless of expiry.
func (c *TTLCache) Evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports live entries without evicting expired ones.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
