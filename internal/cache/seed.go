// Package cache holds process-local caches used as fast paths in front of the stores.
package cache

import (
	"time"

	"github.com/coocood/freecache"
)

const defaultSeedCacheSize = 512 * 1024

// SeedMarker remembers which users already went through default routine
// seeding in this process. It is a fast path only; the stores stay the
// source of truth.
type SeedMarker struct {
	cache  *freecache.Cache
	expire int
}

// NewSeedMarker builds a marker whose entries expire after ttl. A zero ttl
// keeps entries until they are evicted.
func NewSeedMarker(ttl time.Duration) *SeedMarker {
	return &SeedMarker{
		cache:  freecache.NewCache(defaultSeedCacheSize),
		expire: int(ttl / time.Second),
	}
}

// Seeded reports whether userID was marked and the entry has not expired.
func (m *SeedMarker) Seeded(userID string) bool {
	_, err := m.cache.Get([]byte(userID))
	return err == nil
}

// MarkSeeded records userID as seeded.
func (m *SeedMarker) MarkSeeded(userID string) {
	// Set only fails for entries larger than the cache segment size.
	_ = m.cache.Set([]byte(userID), []byte{1}, m.expire)
}

// Forget drops the mark for userID.
func (m *SeedMarker) Forget(userID string) {
	m.cache.Del([]byte(userID))
}
