// Package cache keeps rendered API responses for the current snapshot, each
// with a weak ETag. Entries belong to a load id; storing a response for a
// newer load drops everything cached for older ones.
package cache

import (
	"crypto/md5"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

type entry struct {
	data []byte
	etag string
}

// Cache is a thread-safe response cache scoped to one snapshot at a time.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	loadID  uint64
	enabled bool

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a new cache. Pass enabled=false to create a no-op cache.
func New(enabled bool) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		enabled: enabled,
	}
}

// Get retrieves the response cached for key under loadID.
func (c *Cache) Get(key string, loadID uint64) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	e, exists := c.entries[key]
	current := c.loadID
	c.mu.RUnlock()
	if !exists || current != loadID {
		c.misses.Add(1)
		return nil, "", false
	}
	c.hits.Add(1)
	return e.data, e.etag, true
}

// Set stores data for key under loadID and returns its ETag. Responses for a
// load older than the one already cached are not stored.
func (c *Cache) Set(key string, loadID uint64, data []byte) string {
	etag := ComputeETag(data)
	if !c.enabled {
		return etag
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case loadID < c.loadID:
		return etag
	case loadID > c.loadID:
		c.entries = make(map[string]entry)
		c.loadID = loadID
	}
	c.entries[key] = entry{data: data, etag: etag}
	return etag
}

// Stats returns cache statistics.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return map[string]interface{}{
		"enabled":    c.enabled,
		"load_id":    c.loadID,
		"total_keys": len(c.entries),
		"hits":       c.hits.Load(),
		"misses":     c.misses.Load(),
	}
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch checks if an If-None-Match header matches etag. Lists and
// weak/strong variants of the same tag are accepted.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}
