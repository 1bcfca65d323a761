package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// VisitCache keeps at most maxEntries per-visit values in memory, each for
// at most ttl after its last Set. When full, Set drops the least recently
// set entry, which is also the next to expire. Expired entries are dropped
// lazily on access and by Sweep.
type VisitCache[V any] struct {
	mu  sync.Mutex
	lru *simplelru.LRU
	ttl time.Duration
	now func() time.Time
}

func NewVisitCache[V any](ttl time.Duration, maxEntries int) (*VisitCache[V], error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("visit cache: ttl must be positive, got %s", ttl)
	}
	lru, err := simplelru.NewLRU(maxEntries, nil)
	if err != nil {
		return nil, fmt.Errorf("visit cache: %w", err)
	}
	return &VisitCache[V]{lru: lru, ttl: ttl, now: time.Now}, nil
}

func (c *VisitCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	raw, ok := c.lru.Peek(key)
	if !ok {
		return zero, false
	}
	e := raw.(entry[V])
	if !c.now().Before(e.expiresAt) {
		c.lru.Remove(key)
		return zero, false
	}
	return e.value, true
}

// Set stores value and reports whether an older entry was evicted to make
// room.
func (c *VisitCache[V]) Set(key string, value V) (evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Add(key, entry[V]{value: value, expiresAt: c.now().Add(c.ttl)})
}

func (c *VisitCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

// Sweep removes expired entries and reports how many were dropped.
func (c *VisitCache[V]) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for {
		_, raw, ok := c.lru.GetOldest()
		if !ok || now.Before(raw.(entry[V]).expiresAt) {
			return n
		}
		c.lru.RemoveOldest()
		n++
	}
}

func (c *VisitCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
