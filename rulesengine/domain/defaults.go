package domain

const (
	DefaultDetectionWindowHours = 24
	// MaxDetectionWindowHours (one year) keeps the window far below the time.Duration range.
	MaxDetectionWindowHours = 24 * 365

	// DefaultAcknowledgment is sent when no rule matched and AI fallback is off.
	DefaultAcknowledgment = "Pesan Anda telah diterima. Tim kami akan segera merespons."
)

// DefaultWorkflowConfig returns a fresh copy of the built-in rule set for a workspace.
// Callers may mutate the result freely.
func DefaultWorkflowConfig(workspaceID string) WorkflowConfig {
	return WorkflowConfig{
		WorkspaceID: workspaceID,
		KeywordTriggers: []KeywordTrigger{
			{
				ID:            "handoff-trigger",
				Keywords:      []string{"human", "agent", "speak to person", "real person"},
				Action:        ActionHandoff,
				CaseSensitive: false,
				MatchMode:     MatchContains,
				Enabled:       true,
			},
			{
				ID:            "manager-trigger",
				Keywords:      []string{"!summary", "!report", "!analysis"},
				Action:        ActionManagerBot,
				CaseSensitive: false,
				MatchMode:     MatchStartsWith,
				Enabled:       true,
			},
		},
		FAQTemplates: []FAQTemplate{
			{
				ID:              "pricing-faq",
				TriggerKeywords: []string{"harga", "price", "pricing", "biaya", "cost", "berapa"},
				Response:        "[Placeholder: Pricing info - configure in Settings]",
				Enabled:         true,
			},
			{
				ID:              "services-faq",
				TriggerKeywords: []string{"layanan", "services", "service", "apa saja"},
				Response:        "[Placeholder: Services info - configure in Settings]",
				Enabled:         true,
			},
			{
				ID:              "hours-faq",
				TriggerKeywords: []string{"jam", "hours", "buka", "open", "tutup", "close"},
				Response:        "[Placeholder: Business hours - configure in Settings]",
				Enabled:         true,
			},
		},
		LeadRouting: LeadRouting{
			NewLeadGreeting:       "[Placeholder: New lead greeting - configure in Settings]",
			ReturningLeadGreeting: "[Placeholder: Welcome back message - configure in Settings]",
			DetectionWindowHours:  DefaultDetectionWindowHours,
		},
		AIFallbackEnabled: true,
	}
}
