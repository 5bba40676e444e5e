package application

import (
	"sync"
	"time"

	"github.com/example/campus-scheduler/internal/timetable"
)

// entryCache stores recently merged timetable entries to avoid re-reading
// every schedule and booking row for identical queries while the underlying
// data remains unchanged.
type entryCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]entryCacheEntry
}

type entryCacheEntry struct {
	entries   []timetable.Entry
	expiresAt time.Time
}

func newEntryCache(ttl time.Duration, maxEntries int, now func() time.Time) *entryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	if now == nil {
		now = time.Now
	}
	return &entryCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]entryCacheEntry),
	}
}

func (c *entryCache) Get(key string) ([]timetable.Entry, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return cloneEntries(entry.entries), true
}

func (c *entryCache) Store(key string, entries []timetable.Entry) {
	if c == nil {
		return
	}
	cloned := cloneEntries(entries)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = entryCacheEntry{entries: cloned, expiresAt: expiry}
}

func (c *entryCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]entryCacheEntry)
	c.mu.Unlock()
}

func (c *entryCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *entryCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

func cloneEntries(entries []timetable.Entry) []timetable.Entry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]timetable.Entry, len(entries))
	copy(out, entries)
	for i := range out {
		if len(out[i].Weeks) > 0 {
			weeks := make([]int, len(out[i].Weeks))
			copy(weeks, out[i].Weeks)
			out[i].Weeks = weeks
		}
	}
	return out
}
