package transform

import (
	"sync"

	"record-copier/record"
)

// Cache memoizes resolved transforms by attribute type for one copy session.
type Cache struct {
	provider Provider

	mu       sync.Mutex
	resolved map[string]Transform
}

// NewCache returns an empty cache resolving through provider.
func NewCache(provider Provider) *Cache {
	return &Cache{
		provider: provider,
		resolved: make(map[string]Transform),
	}
}

// Resolve returns the cached transform for attrType, resolving it on first use.
// Resolution failures are not cached.
func (c *Cache) Resolve(rec record.Record, attrType string) (Transform, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.resolved[attrType]; ok {
		return t, nil
	}

	t, err := c.provider.Transform(rec, attrType)
	if err != nil {
		return nil, err
	}
	c.resolved[attrType] = t

	return t, nil
}

// Len returns the number of resolved transforms.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.resolved)
}
