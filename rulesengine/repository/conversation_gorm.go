package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AzielCF/az-rules/rulesengine/domain"
	"gorm.io/gorm"
)

// ConversationModel mirrors the columns of the ingestion pipeline's
// conversations table that lead detection reads. LastMessageAt is epoch
// milliseconds.
type ConversationModel struct {
	ID            string `gorm:"primaryKey;column:id"`
	WorkspaceID   string `gorm:"column:workspace_id;index:idx_conversations_contact,priority:1"`
	ContactID     string `gorm:"column:contact_id;index:idx_conversations_contact,priority:2"`
	LastMessageAt *int64 `gorm:"column:last_message_at"`
}

func (ConversationModel) TableName() string {
	return "conversations"
}

// ConversationGormRepository is a read-only domain.ConversationStore.
type ConversationGormRepository struct {
	db *gorm.DB
}

func NewConversationGormRepository(db *gorm.DB) *ConversationGormRepository {
	return &ConversationGormRepository{db: db}
}

// InitSchema creates the table for local SQLite setups; in production the
// ingestion pipeline owns it.
func (r *ConversationGormRepository) InitSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&ConversationModel{})
}

func (r *ConversationGormRepository) GetMostRecentByContact(ctx context.Context, workspaceID, contactID string) (*domain.ConversationSummary, error) {
	var m ConversationModel
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND contact_id = ?", workspaceID, contactID).
		Order("last_message_at IS NULL, last_message_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	summary := &domain.ConversationSummary{
		ID:          m.ID,
		WorkspaceID: m.WorkspaceID,
		ContactID:   m.ContactID,
	}
	if m.LastMessageAt != nil {
		at := time.UnixMilli(*m.LastMessageAt).UTC()
		summary.LastMessageAt = &at
	}
	return summary, nil
}
