package application

import (
	"context"
	"time"

	"github.com/AzielCF/az-rules/pkg/metrics"
	pkgError "github.com/AzielCF/az-rules/pkg/error"
	"github.com/AzielCF/az-rules/rulesengine/domain"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// LeadClassifier labels a contact new or returning from the timestamp of its
// most recent conversation message.
type LeadClassifier struct {
	store   domain.ConversationStore
	timeout time.Duration
	now     func() time.Time
}

func NewLeadClassifier(store domain.ConversationStore, timeout time.Duration) *LeadClassifier {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &LeadClassifier{store: store, timeout: timeout, now: time.Now}
}

// WithClock replaces the time source. Intended for tests.
func (c *LeadClassifier) WithClock(now func() time.Time) *LeadClassifier {
	c.now = now
	return c
}

// Classify performs exactly one conversation read. Errors, timeouts and
// missing data all resolve to LeadNew. A contact whose last message is
// exactly windowHours old is new.
func (c *LeadClassifier) Classify(ctx context.Context, workspaceID, contactID string, windowHours int) domain.LeadType {
	conv, err := c.lookup(ctx, workspaceID, contactID)
	if err != nil {
		metrics.RulesLookupFailures.WithLabelValues(metrics.LookupConversation).Inc()
		logrus.WithError(err).Errorf("[LEAD] Failed to detect lead type for contact %s", contactID)
		return domain.LeadNew
	}
	if conv == nil || conv.LastMessageAt == nil {
		return domain.LeadNew
	}

	lastMessageAt := *conv.LastMessageAt
	elapsed := c.now().Sub(lastMessageAt)
	window := time.Duration(windowHours) * time.Hour

	logrus.Debugf("[LEAD] Contact %s last active %s (window %dh)", contactID, humanize.Time(lastMessageAt), windowHours)

	if elapsed < window {
		return domain.LeadReturning
	}
	return domain.LeadNew
}

func (c *LeadClassifier) lookup(ctx context.Context, workspaceID, contactID string) (*domain.ConversationSummary, error) {
	if c.store == nil {
		return nil, nil
	}

	conv, err := boundedRead(ctx, c.timeout, func(ctx context.Context) (*domain.ConversationSummary, error) {
		return c.store.GetMostRecentByContact(ctx, workspaceID, contactID)
	})
	if err != nil {
		return nil, &pkgError.ConversationLookupError{WorkspaceID: workspaceID, ContactID: contactID, Err: err}
	}
	return conv, nil
}
