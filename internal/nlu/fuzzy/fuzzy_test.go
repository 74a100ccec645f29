// internal/nlu/fuzzy/fuzzy_test.go
package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-assistant/internal/models"
	"finance-assistant/internal/nlu/classifier"
	"finance-assistant/pkg/patterns"
)

func builtinMatcher(t *testing.T) *Matcher {
	t.Helper()
	reg, err := patterns.NewBuiltin()
	require.NoError(t, err)
	return New(reg)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"spend", "spnd", 1},
		{"groceries", "grocries", 1},
		{"kitten", "sitting", 3},
		{"budget", "bugdet", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestMatch_AcceptsTyposWithinTwoEdits(t *testing.T) {
	m := builtinMatcher(t)
	reg, err := patterns.NewBuiltin()
	require.NoError(t, err)
	direct := classifier.New(reg, classifier.DefaultTieBreakPolicy())

	query := "how mcuh did i spnd on grocries"

	// The direct classifier finds nothing to hold on to.
	assert.Equal(t, 0.0, direct.Classify(query, "en").Confidence)

	got := m.Match(query, "en")
	assert.Equal(t, models.IntentSpendingByCategory, got.Intent)
	assert.Greater(t, got.Confidence, AcceptThreshold)
	assert.LessOrEqual(t, got.Confidence, ScoreCap)
}

func TestMatch_CapsBelowDirectMatches(t *testing.T) {
	m := builtinMatcher(t)

	// Even a perfect keyword covering never reaches a structural 1.0.
	got := m.Match("spend groceries", "en")
	assert.LessOrEqual(t, got.Confidence, ScoreCap)
}

func TestMatch_NoContentTokens(t *testing.T) {
	m := builtinMatcher(t)

	for _, query := range []string{"", "a an it", "the and for"} {
		got := m.Match(query, "en")
		assert.Equal(t, models.IntentUnknown, got.Intent, "query %q", query)
	}
}

func TestCovers(t *testing.T) {
	tests := []struct {
		token, keyword string
		want           bool
	}{
		{"spend", "spend", true},
		{"spending", "spend", true}, // containment
		{"spnd", "spend", true},     // one edit
		{"spemd", "spend", true},    // substitution
		{"budget", "spend", false},
		{"xy", "spend", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, covers(tt.token, tt.keyword), "%s vs %s", tt.token, tt.keyword)
	}
}
