// Package cache keeps the latest channel snapshot per channel key in memory.
package cache

import (
	"sync"
	"time"

	"streamer_info/internal/models"
)

// FreshnessCache stores one ChannelInfo per key, last write wins. It never
// expires entries on its own, callers decide staleness with IsFresh.
type FreshnessCache struct {
	mu      sync.RWMutex
	entries map[string]models.ChannelInfo
}

func NewFreshnessCache() *FreshnessCache {
	return &FreshnessCache{
		entries: make(map[string]models.ChannelInfo),
	}
}

// Get returns the stored snapshot for key, if any.
func (c *FreshnessCache) Get(key string) (models.ChannelInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.entries[key]
	return info, ok
}

// Put replaces the snapshot stored for key.
func (c *FreshnessCache) Put(key string, info models.ChannelInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = info
}

func (c *FreshnessCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// IsFresh reports whether info was fetched no longer than window before now.
func IsFresh(info models.ChannelInfo, now time.Time, window time.Duration) bool {
	return !now.After(info.FetchedAt.Add(window))
}
