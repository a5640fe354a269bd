package repository

import (
	"context"
	"sync"
	"time"

	"github.com/AzielCF/az-rules/rulesengine/domain"
)

type memoryConfigEntry struct {
	cfg       domain.WorkflowConfig
	expiresAt time.Time
}

// MemoryConfigCache is the in-process domain.ConfigCache, used when Valkey is not enabled.
// Expired entries are dropped lazily on read and by Cleanup.
type MemoryConfigCache struct {
	mu      sync.RWMutex
	entries map[string]memoryConfigEntry
	now     func() time.Time
}

func NewMemoryConfigCache() *MemoryConfigCache {
	return &MemoryConfigCache{
		entries: make(map[string]memoryConfigEntry),
		now:     time.Now,
	}
}

func (c *MemoryConfigCache) Get(ctx context.Context, workspaceID string) (*domain.WorkflowConfig, error) {
	c.mu.RLock()
	entry, ok := c.entries[workspaceID]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, nil
	}
	cfg := entry.cfg.Clone()
	return &cfg, nil
}

func (c *MemoryConfigCache) Save(ctx context.Context, cfg *domain.WorkflowConfig, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cfg.WorkspaceID] = memoryConfigEntry{
		cfg:       cfg.Clone(),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

func (c *MemoryConfigCache) Delete(ctx context.Context, workspaceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, workspaceID)
	return nil
}

// Cleanup removes expired entries.
func (c *MemoryConfigCache) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	return nil
}

// StartCleanup runs Cleanup on interval until ctx is done.
func (c *MemoryConfigCache) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = c.Cleanup(ctx)
			}
		}
	}()
}

func (c *MemoryConfigCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
