package validations

import (
	"context"
	"testing"

	pkgError "github.com/AzielCF/az-rules/pkg/error"
	"github.com/AzielCF/az-rules/rulesengine/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateProcessInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   domain.ProcessInput
		wantErr bool
	}{
		{"valid", domain.ProcessInput{WorkspaceID: "ws", ContactID: "c1", Message: "hola"}, false},
		{"empty message allowed", domain.ProcessInput{WorkspaceID: "ws", ContactID: "c1"}, false},
		{"missing contact", domain.ProcessInput{WorkspaceID: "ws", Message: "hola"}, true},
		{"missing workspace", domain.ProcessInput{ContactID: "c1", Message: "hola"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProcessInput(ctx, tt.input)
			if tt.wantErr {
				assert.IsType(t, pkgError.ValidationError(""), err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateWorkflowConfig_Defaults(t *testing.T) {
	assert.NoError(t, ValidateWorkflowConfig(context.Background(), domain.DefaultWorkflowConfig("ws-1")))
}

func TestValidateWorkflowConfig_Rejects(t *testing.T) {
	ctx := context.Background()

	badAction := domain.DefaultWorkflowConfig("ws")
	badAction.KeywordTriggers[0].Action = "escalate"

	badMode := domain.DefaultWorkflowConfig("ws")
	badMode.KeywordTriggers[0].MatchMode = "regex"

	blankKeyword := domain.DefaultWorkflowConfig("ws")
	blankKeyword.KeywordTriggers[0].Keywords = []string{"ok", ""}

	emptyFAQ := domain.DefaultWorkflowConfig("ws")
	emptyFAQ.FAQTemplates[0].Response = ""

	negativeWindow := domain.DefaultWorkflowConfig("ws")
	negativeWindow.LeadRouting.DetectionWindowHours = -1

	noWorkspace := domain.DefaultWorkflowConfig("")

	for name, cfg := range map[string]domain.WorkflowConfig{
		"bad action":      badAction,
		"bad match mode":  badMode,
		"blank keyword":   blankKeyword,
		"empty faq":       emptyFAQ,
		"negative window": negativeWindow,
		"no workspace":    noWorkspace,
	} {
		t.Run(name, func(t *testing.T) {
			err := ValidateWorkflowConfig(ctx, cfg)
			assert.IsType(t, pkgError.ValidationError(""), err)
		})
	}
}
