package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgError "github.com/AzielCF/az-rules/pkg/error"
	"github.com/AzielCF/az-rules/rulesengine/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WorkflowConfigModel is the persisted form of a workspace's rule set.
// Trigger and FAQ lists keep their order inside the JSON columns.
type WorkflowConfigModel struct {
	WorkspaceID           string                  `gorm:"primaryKey;column:workspace_id"`
	KeywordTriggers       []domain.KeywordTrigger `gorm:"column:keyword_triggers;type:text;serializer:json"`
	FAQTemplates          []domain.FAQTemplate    `gorm:"column:faq_templates;type:text;serializer:json"`
	NewLeadGreeting       string                  `gorm:"column:new_lead_greeting"`
	ReturningLeadGreeting string                  `gorm:"column:returning_lead_greeting"`
	DetectionWindowHours  int                     `gorm:"column:detection_window_hours"`
	AIFallbackEnabled     bool                    `gorm:"column:ai_fallback_enabled"`
	UpdatedAt             time.Time               `gorm:"column:updated_at"`
}

func (WorkflowConfigModel) TableName() string {
	return "workflow_configs"
}

func (m WorkflowConfigModel) toDomain() *domain.WorkflowConfig {
	return &domain.WorkflowConfig{
		WorkspaceID:     m.WorkspaceID,
		KeywordTriggers: m.KeywordTriggers,
		FAQTemplates:    m.FAQTemplates,
		LeadRouting: domain.LeadRouting{
			NewLeadGreeting:       m.NewLeadGreeting,
			ReturningLeadGreeting: m.ReturningLeadGreeting,
			DetectionWindowHours:  m.DetectionWindowHours,
		},
		AIFallbackEnabled: m.AIFallbackEnabled,
	}
}

func fromDomainConfig(cfg domain.WorkflowConfig) WorkflowConfigModel {
	return WorkflowConfigModel{
		WorkspaceID:           cfg.WorkspaceID,
		KeywordTriggers:       cfg.KeywordTriggers,
		FAQTemplates:          cfg.FAQTemplates,
		NewLeadGreeting:       cfg.LeadRouting.NewLeadGreeting,
		ReturningLeadGreeting: cfg.LeadRouting.ReturningLeadGreeting,
		DetectionWindowHours:  cfg.LeadRouting.DetectionWindowHours,
		AIFallbackEnabled:     cfg.AIFallbackEnabled,
	}
}

// ConfigGormRepository implements domain.ConfigStore and domain.ConfigWriter.
type ConfigGormRepository struct {
	db *gorm.DB
}

func NewConfigGormRepository(db *gorm.DB) *ConfigGormRepository {
	return &ConfigGormRepository{db: db}
}

func (r *ConfigGormRepository) InitSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&WorkflowConfigModel{})
}

func (r *ConfigGormRepository) Get(ctx context.Context, workspaceID string) (*domain.WorkflowConfig, error) {
	var m WorkflowConfigModel
	if err := r.db.WithContext(ctx).First(&m, "workspace_id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgError.NotFoundError(fmt.Sprintf("workflow config for workspace %s not found", workspaceID))
		}
		return nil, fmt.Errorf("failed to load workflow config: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ConfigGormRepository) Save(ctx context.Context, cfg domain.WorkflowConfig) error {
	m := fromDomainConfig(cfg)
	m.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace_id"}},
		UpdateAll: true,
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to save workflow config: %w", err)
	}
	return nil
}

func (r *ConfigGormRepository) Delete(ctx context.Context, workspaceID string) error {
	return r.db.WithContext(ctx).Delete(&WorkflowConfigModel{}, "workspace_id = ?", workspaceID).Error
}
