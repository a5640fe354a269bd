package application

import (
	"testing"

	"github.com/AzielCF/az-rules/rulesengine/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trigger(id string, mode domain.MatchMode, caseSensitive bool, keywords ...string) domain.KeywordTrigger {
	return domain.KeywordTrigger{
		ID:            id,
		Keywords:      keywords,
		Action:        domain.ActionHandoff,
		CaseSensitive: caseSensitive,
		MatchMode:     mode,
		Enabled:       true,
	}
}

func TestMatchTriggers_MatchModes(t *testing.T) {
	cases := []struct {
		message string
		mode    domain.MatchMode
		want    bool
	}{
		{"human", domain.MatchExact, true},
		{"  human  ", domain.MatchExact, true},
		{"call a human please", domain.MatchExact, false},
		{"humanoid", domain.MatchExact, false},
		{"call a human please", domain.MatchContains, true},
		{"humanoid", domain.MatchContains, true},
		{"hello", domain.MatchContains, false},
		{"humanoid", domain.MatchStartsWith, true},
		{"human", domain.MatchStartsWith, true},
		{"call a human please", domain.MatchStartsWith, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.mode)+"/"+tc.message, func(t *testing.T) {
			got := MatchTriggers(tc.message, []domain.KeywordTrigger{trigger("t1", tc.mode, false, "human")})
			assert.Equal(t, tc.want, got.Matched)
		})
	}
}

func TestMatchTriggers_CaseSensitivityIsPerTrigger(t *testing.T) {
	sensitive := trigger("sensitive", domain.MatchExact, true, "STOP")
	insensitive := trigger("insensitive", domain.MatchExact, false, "STOP")

	assert.False(t, MatchTriggers("stop", []domain.KeywordTrigger{sensitive}).Matched)
	assert.True(t, MatchTriggers("STOP", []domain.KeywordTrigger{sensitive}).Matched)
	assert.True(t, MatchTriggers("stop", []domain.KeywordTrigger{insensitive}).Matched)

	// El primero no aplica por mayúsculas, el segundo sí.
	got := MatchTriggers("stop", []domain.KeywordTrigger{sensitive, insensitive})
	require.True(t, got.Matched)
	assert.Equal(t, "insensitive", got.RuleID)
}

func TestMatchTriggers_FirstMatchWins(t *testing.T) {
	first := trigger("first", domain.MatchContains, false, "help")
	first.Action = domain.ActionManagerBot
	first.ResponseTemplate = "from first"
	second := trigger("second", domain.MatchContains, false, "help me", "help")
	second.ResponseTemplate = "from second"

	got := MatchTriggers("please help me", []domain.KeywordTrigger{first, second})
	require.True(t, got.Matched)
	assert.Equal(t, "first", got.RuleID)
	assert.Equal(t, domain.ActionManagerBot, got.Action)
	assert.Equal(t, "from first", got.Response)
	assert.Equal(t, "help", got.MatchedKeyword)
}

func TestMatchTriggers_FirstKeywordWithinTrigger(t *testing.T) {
	tr := trigger("t", domain.MatchContains, false, "agent", "human")
	got := MatchTriggers("human or agent", []domain.KeywordTrigger{tr})
	require.True(t, got.Matched)
	assert.Equal(t, "agent", got.MatchedKeyword)
}

func TestMatchTriggers_DisabledNeverMatch(t *testing.T) {
	disabled := trigger("off", domain.MatchContains, false, "human")
	disabled.Enabled = false

	for _, msg := range []string{"human", "HUMAN", "i want a human", ""} {
		got := MatchTriggers(msg, []domain.KeywordTrigger{disabled})
		assert.False(t, got.Matched, msg)
	}
}

func TestMatchTriggers_NoMatch(t *testing.T) {
	got := MatchTriggers("hello there", domain.DefaultWorkflowConfig("ws").KeywordTriggers)
	assert.Equal(t, domain.NoMatch(), got)

	assert.False(t, MatchTriggers("anything", nil).Matched)
}

func TestMatchTriggers_SkipsMalformedEntries(t *testing.T) {
	noKeywords := trigger("no-keywords", domain.MatchContains, false)
	badMode := trigger("bad-mode", domain.MatchMode("regex"), false, "human")
	badAction := trigger("bad-action", domain.MatchContains, false, "human")
	badAction.Action = domain.TriggerAction("escalate")
	noID := trigger("", domain.MatchContains, false, "human")
	blankKeyword := trigger("blank", domain.MatchContains, false, "   ", "")
	good := trigger("good", domain.MatchContains, false, "human")

	got := MatchTriggers("a human please", []domain.KeywordTrigger{noKeywords, badMode, badAction, noID, blankKeyword, good})
	require.True(t, got.Matched)
	assert.Equal(t, "good", got.RuleID)
}

func TestMatchFAQ_AlwaysCaseInsensitive(t *testing.T) {
	templates := []domain.FAQTemplate{
		{ID: "pricing", TriggerKeywords: []string{"HARGA"}, Response: "Rp 100k", Enabled: true},
	}

	for _, msg := range []string{"berapa harga paketnya?", "BERAPA HARGA?", "  Harga  "} {
		got := MatchFAQ(msg, templates)
		require.True(t, got.Matched, msg)
		assert.Equal(t, "pricing", got.RuleID)
		assert.Equal(t, domain.ActionFAQResponse, got.Action)
		assert.Equal(t, "Rp 100k", got.Response)
		assert.Equal(t, "HARGA", got.MatchedKeyword)
	}
}

func TestMatchFAQ_OrderAndDisabled(t *testing.T) {
	templates := []domain.FAQTemplate{
		{ID: "off", TriggerKeywords: []string{"jam"}, Response: "never", Enabled: false},
		{ID: "hours", TriggerKeywords: []string{"buka"}, Response: "open 9-5", Enabled: true},
		{ID: "hours-dup", TriggerKeywords: []string{"jam", "buka"}, Response: "dup", Enabled: true},
	}

	got := MatchFAQ("jam berapa buka?", templates)
	require.True(t, got.Matched)
	assert.Equal(t, "hours", got.RuleID)

	got = MatchFAQ("jam?", templates)
	require.True(t, got.Matched)
	assert.Equal(t, "hours-dup", got.RuleID)

	assert.Equal(t, domain.NoMatch(), MatchFAQ("selamat pagi", templates))
}

func TestMatchFAQ_SkipsMalformedEntries(t *testing.T) {
	templates := []domain.FAQTemplate{
		{ID: "empty", Response: "x", Enabled: true},
		{ID: "", TriggerKeywords: []string{"price"}, Response: "x", Enabled: true},
		{ID: "blank", TriggerKeywords: []string{" "}, Response: "x", Enabled: true},
		{ID: "price", TriggerKeywords: []string{"price"}, Response: "$10", Enabled: true},
	}
	got := MatchFAQ("what is the price", templates)
	require.True(t, got.Matched)
	assert.Equal(t, "price", got.RuleID)
}

func TestIsCommand(t *testing.T) {
	assert.True(t, IsCommand("!summary"))
	assert.True(t, IsCommand("  /start"))
	assert.False(t, IsCommand("hello !"))
	assert.False(t, IsCommand(""))
}
