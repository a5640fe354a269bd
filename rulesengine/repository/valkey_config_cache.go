package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	valkeylib "github.com/valkey-io/valkey-go"

	"github.com/AzielCF/az-rules/infrastructure/valkey"
	"github.com/AzielCF/az-rules/rulesengine/domain"
)

// ValkeyConfigCache implements domain.ConfigCache on Valkey so every instance
// behind the load balancer sees the same invalidations.
type ValkeyConfigCache struct {
	client *valkey.Client
	prefix string
}

func NewValkeyConfigCache(client *valkey.Client) *ValkeyConfigCache {
	return &ValkeyConfigCache{
		client: client,
		prefix: client.Key("rules_config") + ":",
	}
}

func (s *ValkeyConfigCache) fullKey(workspaceID string) string {
	return s.prefix + workspaceID
}

func (s *ValkeyConfigCache) inner() valkeylib.Client {
	return s.client.Inner()
}

func (s *ValkeyConfigCache) Get(ctx context.Context, workspaceID string) (*domain.WorkflowConfig, error) {
	cmd := s.inner().B().Get().Key(s.fullKey(workspaceID)).Build()

	data, err := s.inner().Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached config: %w", err)
	}

	var cfg domain.WorkflowConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached config: %w", err)
	}
	return &cfg, nil
}

func (s *ValkeyConfigCache) Save(ctx context.Context, cfg *domain.WorkflowConfig, ttl time.Duration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	cmd := s.inner().B().Set().
		Key(s.fullKey(cfg.WorkspaceID)).
		Value(string(data)).
		Ex(ttl).
		Build()

	if err := s.inner().Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to cache config: %w", err)
	}
	return nil
}

func (s *ValkeyConfigCache) Delete(ctx context.Context, workspaceID string) error {
	cmd := s.inner().B().Del().Key(s.fullKey(workspaceID)).Build()
	if err := s.inner().Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to delete cached config: %w", err)
	}
	return nil
}
