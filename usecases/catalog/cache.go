package catalog

import (
	"context"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const cacheKey = "mergedCharacteristicMetaData"

// Cache holds a single lazily built value. Concurrent misses share one build, and a build
// started before an Evict is returned to its callers but never stored.
// A nil value or an error is never stored.
type Cache[V any] struct {
	store *expirable.LRU[string, *V]
	group singleflight.Group

	// guards generation and keeps publish and Evict from interleaving
	mu         sync.Mutex
	generation uint64
}

func NewCache[V any]() *Cache[V] {
	return &Cache[V]{
		store: expirable.NewLRU[string, *V](1, nil, 0),
	}
}

func (c *Cache[V]) GetOrBuild(ctx context.Context, build func(context.Context) (*V, error)) (*V, error) {
	if value, ok := c.store.Get(cacheKey); ok {
		return value, nil
	}

	value, err, _ := c.group.Do(cacheKey, func() (any, error) {
		if value, ok := c.store.Get(cacheKey); ok {
			return value, nil
		}
		generation := c.currentGeneration()

		// shared by every waiter: one caller going away must not fail the others
		value, err := build(context.WithoutCancel(ctx))
		if err != nil || value == nil {
			return value, err
		}
		c.publish(value, generation)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*V), nil
}

func (c *Cache[V]) Evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.group.Forget(cacheKey)
	c.store.Purge()
}

func (c *Cache[V]) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// publish stores value only if no Evict happened since generation was read.
func (c *Cache[V]) publish(value *V, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return false
	}
	c.store.Add(cacheKey, value)
	return true
}

func (c *Cache[V]) Peek() (*V, bool) {
	return c.store.Peek(cacheKey)
}
