package application

import (
	"strings"

	"github.com/AzielCF/az-rules/rulesengine/domain"
	"github.com/sirupsen/logrus"
)

// normalizeText trims always and lower-cases only for case-insensitive rules.
func normalizeText(text string, caseSensitive bool) string {
	trimmed := strings.TrimSpace(text)
	if caseSensitive {
		return trimmed
	}
	return strings.ToLower(trimmed)
}

func matchesKeyword(message, keyword string, mode domain.MatchMode) bool {
	switch mode {
	case domain.MatchExact:
		return message == keyword
	case domain.MatchContains:
		return strings.Contains(message, keyword)
	case domain.MatchStartsWith:
		return strings.HasPrefix(message, keyword)
	}
	return false
}

// malformedTrigger returns a non-empty reason when the trigger cannot be evaluated.
func malformedTrigger(t domain.KeywordTrigger) string {
	switch {
	case strings.TrimSpace(t.ID) == "":
		return "missing id"
	case len(t.Keywords) == 0:
		return "no keywords"
	case !t.MatchMode.Valid():
		return "unknown match mode " + string(t.MatchMode)
	case !t.Action.Valid():
		return "unknown action " + string(t.Action)
	}
	return ""
}

// MatchTriggers evaluates triggers in list order and returns on the first
// keyword of the first enabled trigger that matches. Malformed triggers are
// skipped without aborting the pass; that includes triggers with a blank id,
// which therefore never match (every match reports its rule id).
func MatchTriggers(message string, triggers []domain.KeywordTrigger) domain.RuleMatch {
	for i, trigger := range triggers {
		if !trigger.Enabled {
			continue
		}
		if reason := malformedTrigger(trigger); reason != "" {
			logrus.Warnf("[RULES] Skipping keyword trigger #%d (%s): %s", i, trigger.ID, reason)
			continue
		}

		normalizedMessage := normalizeText(message, trigger.CaseSensitive)
		for _, keyword := range trigger.Keywords {
			normalizedKeyword := normalizeText(keyword, trigger.CaseSensitive)
			if normalizedKeyword == "" {
				// A blank keyword would match every message in contains/starts_with mode.
				continue
			}
			if matchesKeyword(normalizedMessage, normalizedKeyword, trigger.MatchMode) {
				return domain.RuleMatch{
					Matched:        true,
					RuleID:         trigger.ID,
					Action:         trigger.Action,
					Response:       trigger.ResponseTemplate,
					MatchedKeyword: keyword,
				}
			}
		}
	}
	return domain.NoMatch()
}

// MatchFAQ scans templates in order for a case-insensitive substring hit.
func MatchFAQ(message string, templates []domain.FAQTemplate) domain.RuleMatch {
	normalizedMessage := strings.ToLower(strings.TrimSpace(message))

	for i, template := range templates {
		if !template.Enabled {
			continue
		}
		if strings.TrimSpace(template.ID) == "" || len(template.TriggerKeywords) == 0 {
			logrus.Warnf("[RULES] Skipping FAQ template #%d (%s): missing id or keywords", i, template.ID)
			continue
		}

		for _, keyword := range template.TriggerKeywords {
			if strings.TrimSpace(keyword) == "" {
				continue
			}
			if strings.Contains(normalizedMessage, strings.ToLower(keyword)) {
				return domain.RuleMatch{
					Matched:        true,
					RuleID:         template.ID,
					Action:         domain.ActionFAQResponse,
					Response:       template.Response,
					MatchedKeyword: keyword,
				}
			}
		}
	}
	return domain.NoMatch()
}

// IsCommand reports whether the message looks like a bot command ("!x" or "/x").
func IsCommand(message string) bool {
	trimmed := strings.TrimSpace(message)
	return strings.HasPrefix(trimmed, "!") || strings.HasPrefix(trimmed, "/")
}
