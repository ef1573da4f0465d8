package tzdb

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the zone capacity of the process-wide cache. Real
// programs touch a handful of zones; 128 covers even a per-user-zone
// service without measurable memory cost.
const DefaultCacheSize = 128

// Cache wraps a [Source] with a bounded table cache. Concurrent lookups of
// the same zone share a single underlying load, and once the cache is full
// the least recently used table is evicted. Tables are immutable, so a
// caller may keep using one after eviction.
type Cache struct {
	src   Source
	max   int
	group singleflight.Group

	mu      sync.Mutex
	seq     uint64
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	table *Table
	used  uint64
}

// NewCache returns a cache over src holding at most max tables.
func NewCache(src Source, max int) *Cache {
	if max < 1 {
		max = 1
	}
	return &Cache{
		src:     src,
		max:     max,
		entries: make(map[string]*cacheEntry, max),
	}
}

// Load returns the table for the zone, reading through to the source on a
// miss.
func (c *Cache) Load(id string) (*Table, error) {
	c.mu.Lock()
	if e, ok := c.entries[id]; ok {
		c.seq++
		e.used = c.seq
		c.mu.Unlock()
		return e.table, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(id, func() (any, error) {
		t, err := c.src.Load(id)
		if err != nil {
			return nil, err
		}
		c.store(id, t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

func (c *Cache) store(id string, t *Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.entries[id] = &cacheEntry{table: t, used: c.seq}
	for len(c.entries) > c.max {
		var victim string
		var oldest uint64
		for k, e := range c.entries {
			if victim == "" || e.used < oldest {
				victim, oldest = k, e.used
			}
		}
		delete(c.entries, victim)
	}
}

// Evict drops one zone from the cache. The next Load reads it from the
// source again, which is how a long-running process picks up a tzdata
// update.
func (c *Cache) Evict(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Flush empties the cache.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	maps.Clear(c.entries)
}

// Len reports how many tables are currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
