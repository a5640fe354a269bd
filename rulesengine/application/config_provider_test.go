package application

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgError "github.com/AzielCF/az-rules/pkg/error"
	"github.com/AzielCF/az-rules/rulesengine/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedConfig(workspaceID string) *domain.WorkflowConfig {
	cfg := domain.WorkflowConfig{
		WorkspaceID: workspaceID,
		KeywordTriggers: []domain.KeywordTrigger{
			{ID: "stop", Keywords: []string{"STOP"}, Action: domain.ActionHandoff, CaseSensitive: true, MatchMode: domain.MatchExact, Enabled: true},
		},
		LeadRouting:       domain.LeadRouting{DetectionWindowHours: 48},
		AIFallbackEnabled: false,
	}
	return &cfg
}

func TestConfigProvider_ReturnsStoredConfig(t *testing.T) {
	store := &fakeConfigStore{cfg: storedConfig("ws-1")}
	p := NewConfigProvider(store, nil, 0, 0)

	cfg := p.Get(context.Background(), "ws-1")
	assert.Equal(t, "ws-1", cfg.WorkspaceID)
	assert.Equal(t, 48, cfg.LeadRouting.DetectionWindowHours)
	assert.False(t, cfg.AIFallbackEnabled)
	require.Len(t, cfg.KeywordTriggers, 1)
	assert.Equal(t, "stop", cfg.KeywordTriggers[0].ID)
}

func TestConfigProvider_DefaultsOnErrors(t *testing.T) {
	cases := map[string]domain.ConfigStore{
		"store error": &fakeConfigStore{err: errors.New("connection refused")},
		"not found":   &fakeConfigStore{err: pkgError.NotFoundError("missing")},
		"nil config":  &fakeConfigStore{},
		"panic":       panicConfigStore{},
		"no store":    nil,
	}

	for name, store := range cases {
		t.Run(name, func(t *testing.T) {
			p := NewConfigProvider(store, nil, 0, 0)
			cfg := p.Get(context.Background(), "ws-9")
			assert.Equal(t, domain.DefaultWorkflowConfig("ws-9"), cfg)
		})
	}
}

func TestConfigProvider_TimeoutFallsBackToDefaults(t *testing.T) {
	store := &fakeConfigStore{cfg: storedConfig("ws-1"), block: true}
	p := NewConfigProvider(store, nil, 0, 20*time.Millisecond)

	start := time.Now()
	cfg := p.Get(context.Background(), "ws-1")
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, domain.DefaultWorkflowConfig("ws-1"), cfg)
}

func TestConfigProvider_NormalizesWindowAndWorkspace(t *testing.T) {
	stored := storedConfig("other")
	stored.LeadRouting.DetectionWindowHours = 0
	p := NewConfigProvider(&fakeConfigStore{cfg: stored}, nil, 0, 0)

	cfg := p.Get(context.Background(), "ws-1")
	assert.Equal(t, "ws-1", cfg.WorkspaceID)
	assert.Equal(t, domain.DefaultDetectionWindowHours, cfg.LeadRouting.DetectionWindowHours)
}

func TestConfigProvider_ClampsOversizedWindow(t *testing.T) {
	stored := storedConfig("ws-1")
	stored.LeadRouting.DetectionWindowHours = 3_000_000
	p := NewConfigProvider(&fakeConfigStore{cfg: stored}, nil, 0, 0)

	cfg := p.Get(context.Background(), "ws-1")
	assert.Equal(t, domain.MaxDetectionWindowHours, cfg.LeadRouting.DetectionWindowHours)

	// A clamped window still classifies recent contacts as returning.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	leads := NewLeadClassifier(&fakeConversationStore{conv: lastMessage(now.Add(-time.Hour))}, time.Second).
		WithClock(func() time.Time { return now })
	assert.Equal(t, domain.LeadReturning, leads.Classify(context.Background(), "ws-1", "c-1", cfg.LeadRouting.DetectionWindowHours))
}

func TestConfigProvider_UsesCache(t *testing.T) {
	store := &fakeConfigStore{cfg: storedConfig("ws-1")}
	cache := newMapConfigCache()
	p := NewConfigProvider(store, cache, time.Minute, 0)

	first := p.Get(context.Background(), "ws-1")
	second := p.Get(context.Background(), "ws-1")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.Calls())

	// Mutating a returned config must not leak into the cache.
	second.KeywordTriggers[0].Keywords[0] = "changed"
	third := p.Get(context.Background(), "ws-1")
	assert.Equal(t, "STOP", third.KeywordTriggers[0].Keywords[0])

	p.Invalidate(context.Background(), "ws-1")
	p.Get(context.Background(), "ws-1")
	assert.Equal(t, 2, store.Calls())
}

func TestConfigProvider_CachesDefaultsForMissingConfig(t *testing.T) {
	store := &fakeConfigStore{err: pkgError.NotFoundError("missing")}
	cache := newMapConfigCache()
	p := NewConfigProvider(store, cache, time.Minute, 0)

	p.Get(context.Background(), "ws-1")
	p.Get(context.Background(), "ws-1")
	assert.Equal(t, 1, store.Calls())
}

func TestConfigProvider_DoesNotCacheTransientFailures(t *testing.T) {
	store := &fakeConfigStore{err: errors.New("timeout")}
	cache := newMapConfigCache()
	p := NewConfigProvider(store, cache, time.Minute, 0)

	p.Get(context.Background(), "ws-1")
	p.Get(context.Background(), "ws-1")
	assert.Equal(t, 2, store.Calls())
}

func TestConfigProvider_CacheErrorFallsThroughToStore(t *testing.T) {
	store := &fakeConfigStore{cfg: storedConfig("ws-1")}
	cache := newMapConfigCache()
	cache.getErr = errors.New("valkey down")
	p := NewConfigProvider(store, cache, time.Minute, 0)

	cfg := p.Get(context.Background(), "ws-1")
	assert.Equal(t, 48, cfg.LeadRouting.DetectionWindowHours)
	assert.Equal(t, 1, store.Calls())
}
