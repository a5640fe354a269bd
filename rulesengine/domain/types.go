package domain

import (
	"fmt"
	"strings"
)

// TriggerAction is the closed set of outcomes a rule can select.
type TriggerAction string

const (
	ActionHandoff     TriggerAction = "handoff"
	ActionManagerBot  TriggerAction = "manager_bot"
	ActionFAQResponse TriggerAction = "faq_response"
	ActionPassThrough TriggerAction = "pass_through"
)

// TriggerActions lists every variant, in declaration order.
var TriggerActions = []TriggerAction{ActionHandoff, ActionManagerBot, ActionFAQResponse, ActionPassThrough}

func (a TriggerAction) Valid() bool {
	switch a {
	case ActionHandoff, ActionManagerBot, ActionFAQResponse, ActionPassThrough:
		return true
	}
	return false
}

func ParseTriggerAction(s string) (TriggerAction, error) {
	a := TriggerAction(strings.TrimSpace(strings.ToLower(s)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown trigger action %q", s)
	}
	return a, nil
}

// MatchMode controls how a keyword is compared against the normalized message.
type MatchMode string

const (
	MatchExact      MatchMode = "exact"
	MatchContains   MatchMode = "contains"
	MatchStartsWith MatchMode = "starts_with"
)

var MatchModes = []MatchMode{MatchExact, MatchContains, MatchStartsWith}

func (m MatchMode) Valid() bool {
	switch m {
	case MatchExact, MatchContains, MatchStartsWith:
		return true
	}
	return false
}

func ParseMatchMode(s string) (MatchMode, error) {
	m := MatchMode(strings.TrimSpace(strings.ToLower(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown match mode %q", s)
	}
	return m, nil
}

type LeadType string

const (
	LeadNew       LeadType = "new"
	LeadReturning LeadType = "returning"
)

// KeywordTrigger is an operator-configured rule. Keywords are tried in order
// and the first hit wins.
type KeywordTrigger struct {
	ID               string        `json:"id"`
	Keywords         []string      `json:"keywords"`
	Action           TriggerAction `json:"action"`
	ResponseTemplate string        `json:"response_template,omitempty"`
	CaseSensitive    bool          `json:"case_sensitive"`
	MatchMode        MatchMode     `json:"match_mode"`
	Enabled          bool          `json:"enabled"`
}

// FAQTemplate is matched case-insensitively as a substring, independent of
// any trigger-level flags.
type FAQTemplate struct {
	ID              string   `json:"id"`
	TriggerKeywords []string `json:"trigger_keywords"`
	Response        string   `json:"response"`
	Enabled         bool     `json:"enabled"`
}

type LeadRouting struct {
	NewLeadGreeting       string `json:"new_lead_greeting"`
	ReturningLeadGreeting string `json:"returning_lead_greeting"`
	DetectionWindowHours  int    `json:"detection_window_hours"`
}

// WorkflowConfig is the per-workspace rule set. List order is evaluation order.
type WorkflowConfig struct {
	WorkspaceID       string           `json:"workspace_id"`
	KeywordTriggers   []KeywordTrigger `json:"keyword_triggers"`
	FAQTemplates      []FAQTemplate    `json:"faq_templates"`
	LeadRouting       LeadRouting      `json:"lead_routing"`
	AIFallbackEnabled bool             `json:"ai_fallback_enabled"`
}

// RuleMatch is the ephemeral output of a single matcher pass.
type RuleMatch struct {
	Matched        bool
	RuleID         string
	Action         TriggerAction
	Response       string
	MatchedKeyword string
}

// NoMatch is what both matchers return when nothing in the list fired.
func NoMatch() RuleMatch {
	return RuleMatch{Matched: false, Action: ActionPassThrough}
}

// RulesResult is the decision handed back to the webhook ingress.
// Handled=false means the caller must invoke the AI layer.
type RulesResult struct {
	Handled              bool          `json:"handled"`
	Action               TriggerAction `json:"action"`
	Response             string        `json:"response,omitempty"`
	LeadType             LeadType      `json:"lead_type"`
	MatchedRule          string        `json:"matched_rule,omitempty"`
	ShouldHandoff        bool          `json:"should_handoff,omitempty"`
	ShouldTriggerManager bool          `json:"should_trigger_manager,omitempty"`
}

// ProcessInput is one inbound chat message.
type ProcessInput struct {
	WorkspaceID  string `json:"workspace_id"`
	ContactID    string `json:"contact_id"`
	ContactPhone string `json:"contact_phone"`
	Message      string `json:"message"`
}

// Clone returns a deep copy so cached configs are never shared across invocations.
func (c WorkflowConfig) Clone() WorkflowConfig {
	out := c
	if c.KeywordTriggers != nil {
		out.KeywordTriggers = make([]KeywordTrigger, len(c.KeywordTriggers))
		for i, t := range c.KeywordTriggers {
			t.Keywords = append([]string(nil), t.Keywords...)
			out.KeywordTriggers[i] = t
		}
	}
	if c.FAQTemplates != nil {
		out.FAQTemplates = make([]FAQTemplate, len(c.FAQTemplates))
		for i, f := range c.FAQTemplates {
			f.TriggerKeywords = append([]string(nil), f.TriggerKeywords...)
			out.FAQTemplates[i] = f
		}
	}
	return out
}
