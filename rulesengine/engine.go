package rulesengine

import (
	"context"
	"time"

	"github.com/AzielCF/az-rules/pkg/metrics"
	"github.com/AzielCF/az-rules/rulesengine/application"
	"github.com/AzielCF/az-rules/rulesengine/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Engine is the decision composer for inbound messages. It keeps no state
// between calls and is safe for concurrent use.
type Engine struct {
	configs *application.ConfigProvider
	leads   *application.LeadClassifier
}

func NewEngine(configs *application.ConfigProvider, leads *application.LeadClassifier) *Engine {
	return &Engine{configs: configs, leads: leads}
}

// Configs exposes the provider so the settings path can read and invalidate configs.
func (e *Engine) Configs() *application.ConfigProvider {
	return e.configs
}

// recoveredResult is what a caller gets if anything inside Process panics:
// let the AI layer handle the message rather than fail the webhook ack.
func recoveredResult() domain.RulesResult {
	return domain.RulesResult{
		Handled:  false,
		Action:   domain.ActionPassThrough,
		LeadType: domain.LeadNew,
	}
}

// Process decides a single message. Precedence is fixed: keyword trigger,
// then FAQ template, then AI fallback, then the static acknowledgment.
// It never returns an error; every failure degrades to a conservative result.
func (e *Engine) Process(ctx context.Context, input domain.ProcessInput) (result domain.RulesResult) {
	start := time.Now()
	traceID := uuid.NewString()
	source := metrics.SourceRecovered

	log := logrus.WithFields(logrus.Fields{
		"trace_id":     traceID,
		"workspace_id": input.WorkspaceID,
		"contact_id":   input.ContactID,
	})

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[RULES] Recovered from panic while processing message: %v", r)
			result = recoveredResult()
			source = metrics.SourceRecovered
		}
		metrics.RulesDecisions.WithLabelValues(string(result.Action), source, string(result.LeadType)).Inc()
		metrics.RulesDecisionDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
		log.Infof("[RULES] Completed in %s (%s)", time.Since(start).Round(time.Microsecond), source)
	}()

	log.WithField("is_command", application.IsCommand(input.Message)).
		Infof("[RULES] Processing message for contact %s", input.ContactID)

	// 1. Config
	config := e.configs.Get(ctx, input.WorkspaceID)

	// 2. Lead type, always computed: the caller needs it even on AI fallback
	leadType := e.leads.Classify(ctx, input.WorkspaceID, input.ContactID, config.LeadRouting.DetectionWindowHours)
	log.Debugf("[RULES] Lead type: %s", leadType)

	// 3. Keyword triggers
	if match := application.MatchTriggers(input.Message, config.KeywordTriggers); match.Matched {
		log.Infof("[RULES] Keyword trigger matched: %s (keyword %q)", match.RuleID, match.MatchedKeyword)
		source = metrics.SourceTrigger
		return composeTriggerResult(match, leadType)
	}

	// 4. FAQ templates
	if match := application.MatchFAQ(input.Message, config.FAQTemplates); match.Matched {
		log.Infof("[RULES] FAQ template matched: %s (keyword %q)", match.RuleID, match.MatchedKeyword)
		source = metrics.SourceFAQ
		return domain.RulesResult{
			Handled:     true,
			Action:      domain.ActionFAQResponse,
			Response:    match.Response,
			LeadType:    leadType,
			MatchedRule: match.RuleID,
		}
	}

	// 5. Nothing matched
	if !config.AIFallbackEnabled {
		log.Info("[RULES] No rule match and AI fallback disabled, sending acknowledgment")
		source = metrics.SourceStatic
		return domain.RulesResult{
			Handled:  true,
			Action:   domain.ActionPassThrough,
			Response: domain.DefaultAcknowledgment,
			LeadType: leadType,
		}
	}

	log.Info("[RULES] No rule match, passing to AI")
	source = metrics.SourceAIFallback
	return domain.RulesResult{
		Handled:  false,
		Action:   domain.ActionPassThrough,
		LeadType: leadType,
	}
}

func composeTriggerResult(match domain.RuleMatch, leadType domain.LeadType) domain.RulesResult {
	result := domain.RulesResult{
		Handled:     true,
		Action:      match.Action,
		Response:    match.Response,
		LeadType:    leadType,
		MatchedRule: match.RuleID,
	}

	switch match.Action {
	case domain.ActionHandoff:
		result.ShouldHandoff = true
	case domain.ActionManagerBot:
		result.ShouldTriggerManager = true
	case domain.ActionFAQResponse, domain.ActionPassThrough:
	default:
		// The matcher already drops triggers with unknown actions.
		result.Action = domain.ActionPassThrough
	}
	return result
}
