package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgError "github.com/AzielCF/az-rules/pkg/error"
	"github.com/AzielCF/az-rules/pkg/metrics"
	"github.com/AzielCF/az-rules/rulesengine/domain"
	"github.com/sirupsen/logrus"
)

const (
	DefaultLookupTimeout  = 3 * time.Second
	DefaultConfigCacheTTL = time.Minute
)

// ConfigProvider resolves the workflow config for a workspace. It never fails:
// every lookup problem resolves to the built-in defaults.
type ConfigProvider struct {
	store    domain.ConfigStore
	cache    domain.ConfigCache
	cacheTTL time.Duration
	timeout  time.Duration
}

// NewConfigProvider wires a store and an optional cache. Zero durations use the defaults.
func NewConfigProvider(store domain.ConfigStore, cache domain.ConfigCache, cacheTTL, timeout time.Duration) *ConfigProvider {
	if cacheTTL <= 0 {
		cacheTTL = DefaultConfigCacheTTL
	}
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &ConfigProvider{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		timeout:  timeout,
	}
}

// Get returns the effective config for workspaceID.
func (p *ConfigProvider) Get(ctx context.Context, workspaceID string) domain.WorkflowConfig {
	if p.cache != nil {
		cached, err := boundedRead(ctx, p.timeout, func(ctx context.Context) (*domain.WorkflowConfig, error) {
			return p.cache.Get(ctx, workspaceID)
		})
		if err != nil {
			logrus.WithError(err).Debugf("[RULES_CONFIG] Cache read failed for workspace %s", workspaceID)
		} else if cached != nil {
			return cached.Clone()
		}
	}

	cfg, err := p.load(ctx, workspaceID)
	if err != nil {
		var notFound pkgError.NotFoundError
		if errors.As(err, &notFound) {
			logrus.Debugf("[RULES_CONFIG] No stored config for workspace %s, using defaults", workspaceID)
			defaults := domain.DefaultWorkflowConfig(workspaceID)
			p.remember(ctx, &defaults)
			return defaults
		}

		metrics.RulesLookupFailures.WithLabelValues(metrics.LookupConfig).Inc()
		logrus.WithError(err).Errorf("[RULES_CONFIG] Falling back to default config for workspace %s", workspaceID)
		return domain.DefaultWorkflowConfig(workspaceID)
	}

	p.remember(ctx, cfg)
	return cfg.Clone()
}

// Invalidate drops the cached entry after a settings write.
func (p *ConfigProvider) Invalidate(ctx context.Context, workspaceID string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Delete(ctx, workspaceID); err != nil {
		logrus.WithError(err).Warnf("[RULES_CONFIG] Failed to invalidate cached config for workspace %s", workspaceID)
	}
}

func (p *ConfigProvider) load(ctx context.Context, workspaceID string) (*domain.WorkflowConfig, error) {
	if p.store == nil {
		return nil, pkgError.NotFoundError("no config store configured")
	}

	cfg, err := boundedRead(ctx, p.timeout, func(ctx context.Context) (*domain.WorkflowConfig, error) {
		return p.store.Get(ctx, workspaceID)
	})
	if err != nil {
		var notFound pkgError.NotFoundError
		if errors.As(err, &notFound) {
			return nil, notFound
		}
		return nil, &pkgError.ConfigLookupError{WorkspaceID: workspaceID, Err: err}
	}
	if cfg == nil {
		return nil, pkgError.NotFoundError(fmt.Sprintf("workflow config for workspace %s not found", workspaceID))
	}

	normalized := cfg.Clone()
	normalized.WorkspaceID = workspaceID
	switch window := normalized.LeadRouting.DetectionWindowHours; {
	case window <= 0:
		normalized.LeadRouting.DetectionWindowHours = domain.DefaultDetectionWindowHours
	case window > domain.MaxDetectionWindowHours:
		normalized.LeadRouting.DetectionWindowHours = domain.MaxDetectionWindowHours
	}
	return &normalized, nil
}

func (p *ConfigProvider) remember(ctx context.Context, cfg *domain.WorkflowConfig) {
	if p.cache == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.cache.Save(saveCtx, cfg, p.cacheTTL); err != nil {
		logrus.WithError(err).Debugf("[RULES_CONFIG] Cache write failed for workspace %s", cfg.WorkspaceID)
	}
}
