package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/photosphere/pkg/domain"
)

type entry struct {
	elements []domain.Element
	expires  time.Time
}

// Cache implements ports.AtomDataCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
	mu   sync.RWMutex
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL expires entries ttl after they are saved. Zero keeps them forever.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// NewCache creates a new in-memory cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		data: make(map[string]entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Save stores a copy of elements.
func (c *Cache) Save(ctx context.Context, key string, elements []domain.Element) error {
	e := entry{elements: domain.CloneElements(elements)}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = e
	return nil
}

// Load returns a copy so callers can't mutate cached entries.
func (c *Cache) Load(ctx context.Context, key string) ([]domain.Element, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok || (!e.expires.IsZero() && !c.now().Before(e.expires)) {
		return nil, domain.ErrCacheMiss
	}
	return domain.CloneElements(e.elements), nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
