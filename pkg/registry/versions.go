package registry

import "sync"

// VersionCache memoizes fetched version lists for the lifetime of a process.
//
// Entries are write-once: the first Put for a key wins and later Puts are
// ignored, so a list handed out once is never swapped under a caller. There
// is no TTL and no invalidation. Concurrent fetches for the same key are not
// de-duplicated; both run and the loser's Put is a no-op.
//
// Tests construct private instances to avoid cross-test pollution.
type VersionCache struct {
	mu      sync.Mutex
	entries map[string][]string
}

// NewVersionCache creates an empty version cache.
func NewVersionCache() *VersionCache {
	return &VersionCache{entries: make(map[string][]string)}
}

func (c *VersionCache) get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	vs, ok := c.entries[key]
	return vs, ok
}

func (c *VersionCache) put(key string, versions []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return
	}
	c.entries[key] = versions
}
