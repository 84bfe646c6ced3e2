package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

var _ domain.ProgressCache = (*InMemoryProgressCache)(nil)

// InMemoryProgressCache is the process-local cache used when redis is not configured.
type InMemoryProgressCache struct {
	store map[string]domain.Progress

	mu sync.RWMutex
}

func NewInMemoryProgressCache() *InMemoryProgressCache {
	return &InMemoryProgressCache{
		store: make(map[string]domain.Progress),
	}
}

func (c *InMemoryProgressCache) Get(ctx context.Context, profileID string) (*domain.Progress, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	progress, ok := c.store[profileID]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return &progress, nil
}

// Set stores a shallow copy. Snapshots are never mutated after they are built.
func (c *InMemoryProgressCache) Set(ctx context.Context, profileID string, progress *domain.Progress) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[profileID] = *progress
	return nil
}

func (c *InMemoryProgressCache) Invalidate(ctx context.Context, profileID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.store, profileID)
	return nil
}
