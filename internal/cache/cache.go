package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	val V
	exp time.Time
}

// Memory is a TTL cache. A non-positive ttl disables it: Set is a no-op.
type Memory[K comparable, V any] struct {
	mu  sync.RWMutex
	m   map[K]entry[V]
	ttl time.Duration
	now func() time.Time
}

func NewMemory[K comparable, V any](ttl time.Duration) *Memory[K, V] {
	return &Memory[K, V]{m: make(map[K]entry[V]), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for expiry.
func (c *Memory[K, V]) WithClock(now func() time.Time) *Memory[K, V] {
	c.now = now
	return c
}

func (c *Memory[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	if !ok || !c.now().Before(e.exp) {
		var zero V
		return zero, false
	}
	return e.val, true
}

func (c *Memory[K, V]) Set(key K, val V) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry[V]{val: val, exp: c.now().Add(c.ttl)}
}

func (c *Memory[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}

func (c *Memory[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.m)
}
