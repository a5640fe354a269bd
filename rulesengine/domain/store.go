package domain

import (
	"context"
	"time"
)

// ConfigStore loads a workspace's persisted workflow configuration.
// Implementations return a pkg/error.NotFoundError when nothing is stored.
type ConfigStore interface {
	Get(ctx context.Context, workspaceID string) (*WorkflowConfig, error)
}

// ConfigWriter is the settings write path; the engine itself never calls it.
type ConfigWriter interface {
	Save(ctx context.Context, cfg WorkflowConfig) error
}

// ConfigCache holds recently loaded configs. Must be safe for concurrent use.
type ConfigCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, workspaceID string) (*WorkflowConfig, error)
	Save(ctx context.Context, cfg *WorkflowConfig, ttl time.Duration) error
	Delete(ctx context.Context, workspaceID string) error
}

// ConversationSummary is the slice of a conversation record the lead
// classifier needs.
type ConversationSummary struct {
	ID            string
	WorkspaceID   string
	ContactID     string
	LastMessageAt *time.Time
}

// ConversationStore is owned by the message ingestion pipeline; the engine only reads it.
type ConversationStore interface {
	// GetMostRecentByContact returns nil, nil when the contact has no
	// conversation in the workspace.
	GetMostRecentByContact(ctx context.Context, workspaceID, contactID string) (*ConversationSummary, error)
}
