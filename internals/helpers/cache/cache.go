package cache

import (
	"sync"
	"time"

	"github.com/AungS8430/schooler/internals/helpers/metrics"
)

// Purger is anything the janitor can sweep.
type Purger interface {
	Purge(now time.Time) int
}

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache is a small TTL map keyed by resource id. Lookups are counted
// per cache name on the Prometheus registry.
type Cache[V any] struct {
	name string
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	items map[string]entry[V]
}

func New[V any](name string, ttl time.Duration) *Cache[V] {
	return &Cache[V]{name: name, ttl: ttl, now: time.Now, items: map[string]entry[V]{}}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expires) {
		metrics.CacheLookups.WithLabelValues(c.name, "miss").Inc()
		var zero V
		return zero, false
	}
	metrics.CacheLookups.WithLabelValues(c.name, "hit").Inc()
	return e.value, true
}

func (c *Cache[V]) Set(key string, v V) {
	c.mu.Lock()
	c.items[key] = entry[V]{value: v, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Purge drops expired entries and returns how many went.
func (c *Cache[V]) Purge(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.items {
		if !now.Before(e.expires) {
			delete(c.items, k)
			n++
		}
	}
	return n
}
