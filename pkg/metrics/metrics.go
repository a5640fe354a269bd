package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceTrigger    = "keyword_trigger"
	SourceFAQ        = "faq_template"
	SourceAIFallback = "ai_fallback"
	SourceStatic     = "static_ack"
	SourceRecovered  = "recovered"

	LookupConfig       = "config"
	LookupConversation = "conversation"
)

var (
	RulesDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rules_decisions_total",
			Help: "Total number of inbound messages decided by the rules engine",
		},
		[]string{"action", "source", "lead_type"},
	)

	RulesLookupFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rules_lookup_failures_total",
			Help: "External reads that failed or timed out and were absorbed",
		},
		[]string{"lookup"},
	)

	RulesDecisionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rules_decision_duration_seconds",
			Help:    "Time spent deciding a single inbound message",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"source"},
	)

	DuplicateDeliveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rules_duplicate_deliveries_total",
			Help: "Webhook deliveries dropped because their idempotency key was already claimed",
		},
	)
)
