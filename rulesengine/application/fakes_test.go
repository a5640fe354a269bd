package application

import (
	"context"
	"sync"
	"time"

	"github.com/AzielCF/az-rules/rulesengine/domain"
)

type fakeConfigStore struct {
	mu    sync.Mutex
	cfg   *domain.WorkflowConfig
	err   error
	block bool
	calls int
}

func (f *fakeConfigStore) Get(ctx context.Context, workspaceID string) (*domain.WorkflowConfig, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block {
		// Ignores ctx on purpose: the provider must still return.
		time.Sleep(time.Second)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.cfg, nil
}

func (f *fakeConfigStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type panicConfigStore struct{}

func (panicConfigStore) Get(ctx context.Context, workspaceID string) (*domain.WorkflowConfig, error) {
	panic("boom")
}

type mapConfigCache struct {
	mu      sync.Mutex
	entries map[string]domain.WorkflowConfig
	getErr  error
}

func newMapConfigCache() *mapConfigCache {
	return &mapConfigCache{entries: map[string]domain.WorkflowConfig{}}
}

func (c *mapConfigCache) Get(ctx context.Context, workspaceID string) (*domain.WorkflowConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	cfg, ok := c.entries[workspaceID]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (c *mapConfigCache) Save(ctx context.Context, cfg *domain.WorkflowConfig, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cfg.WorkspaceID] = cfg.Clone()
	return nil
}

func (c *mapConfigCache) Delete(ctx context.Context, workspaceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, workspaceID)
	return nil
}

type fakeConversationStore struct {
	conv  *domain.ConversationSummary
	err   error
	block bool
	calls int
}

func (f *fakeConversationStore) GetMostRecentByContact(ctx context.Context, workspaceID, contactID string) (*domain.ConversationSummary, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.conv, f.err
}

func lastMessage(at time.Time) *domain.ConversationSummary {
	return &domain.ConversationSummary{ID: "conv-1", WorkspaceID: "ws", ContactID: "c-1", LastMessageAt: &at}
}
