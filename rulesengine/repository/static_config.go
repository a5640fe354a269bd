package repository

import (
	"context"

	"github.com/AzielCF/az-rules/rulesengine/domain"
)

// StaticConfigStore serves the built-in defaults to every workspace. Used when
// no settings database is configured.
type StaticConfigStore struct{}

func NewStaticConfigStore() StaticConfigStore {
	return StaticConfigStore{}
}

func (StaticConfigStore) Get(ctx context.Context, workspaceID string) (*domain.WorkflowConfig, error) {
	cfg := domain.DefaultWorkflowConfig(workspaceID)
	return &cfg, nil
}
