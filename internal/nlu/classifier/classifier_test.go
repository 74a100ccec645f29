// internal/nlu/classifier/classifier_test.go
package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-assistant/internal/models"
	"finance-assistant/pkg/patterns"
)

func builtinClassifier(t *testing.T) *Classifier {
	t.Helper()
	reg, err := patterns.NewBuiltin()
	require.NoError(t, err)
	return New(reg, DefaultTieBreakPolicy())
}

func registryFromJSON(t *testing.T, content string) *patterns.Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intents.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	reg, err := patterns.Load(path)
	require.NoError(t, err)
	return reg
}

func TestClassify_ExactStructuralMatch(t *testing.T) {
	c := builtinClassifier(t)

	tests := []struct {
		name   string
		query  string
		locale string
		intent models.Intent
	}{
		{"spending total en", "how much did I spend this month", "en", models.IntentSpendingTotal},
		{"category capture en", "how much did I spend on groceries", "en", models.IntentSpendingByCategory},
		{"compare en", "compare with last month", "en", models.IntentCompareMonths},
		{"extra payment en", "what if i pay $100 extra on my loan", "en", models.IntentLoanExtraPayment},
		{"spending total es", "cuánto gasté este mes", "es", models.IntentSpendingTotal},
		{"category es", "cuánto gasté en supermercado", "es", models.IntentSpendingByCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.query, tt.locale)
			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, 1.0, got.Confidence)
		})
	}
}

func TestClassify_NoMatchIsUnknown(t *testing.T) {
	c := builtinClassifier(t)

	got := c.Classify("xyzzy blorp quux", "en")

	assert.Equal(t, models.IntentUnknown, got.Intent)
	assert.Equal(t, 0.0, got.Confidence)
}

func TestClassify_PartialKeywordScore(t *testing.T) {
	c := builtinClassifier(t)

	// "spend" alone hits single-keyword patterns at the full fraction,
	// scaled by the partial weight.
	got := c.Classify("spend", "en")

	assert.InDelta(t, 0.7, got.Confidence, 1e-9)
}

func TestClassify_Deterministic(t *testing.T) {
	c := builtinClassifier(t)
	query := "how much did I spend on groceries and compare with last month"

	first := c.Rank(query, "en")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Rank(query, "en"))
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	c := builtinClassifier(t)

	for _, query := range []string{
		"how much did I spend this month",
		"spend groceries budget loan",
		"random words here",
		"",
	} {
		for _, cand := range c.Rank(query, "en") {
			assert.GreaterOrEqual(t, cand.Confidence, 0.0, "query %q", query)
			assert.LessOrEqual(t, cand.Confidence, 1.0, "query %q", query)
		}
	}
}

func TestClassify_AmbiguityTieBreak(t *testing.T) {
	// Two overlapping intents: "loan balance" scores loan_status at
	// 2/3 and loan_extra_payment at 2/4, both partial, gap under 0.2.
	reg := registryFromJSON(t, `{
		"version": "test",
		"locales": {
			"en": {
				"loan_status": ["loan balance summary"],
				"loan_extra_payment": ["loan balance extra payment"]
			}
		}
	}`)

	t.Run("curated specific intent wins the tie", func(t *testing.T) {
		c := New(reg, DefaultTieBreakPolicy())
		got := c.Classify("loan balance", "en")
		assert.Equal(t, models.IntentLoanExtraPayment, got.Intent)
	})

	t.Run("without curated intents the best stands", func(t *testing.T) {
		c := New(reg, TieBreakPolicy{ConfidentScore: 0.8, AmbiguityGap: 0.2})
		got := c.Classify("loan balance", "en")
		assert.Equal(t, models.IntentLoanStatus, got.Intent)
	})

	t.Run("confident scores skip the tie-break", func(t *testing.T) {
		// Gap rule only applies below the confident threshold.
		c := New(reg, TieBreakPolicy{ConfidentScore: 0.3, AmbiguityGap: 0.2, Preferred: DefaultTieBreakPolicy().Preferred})
		got := c.Classify("loan balance", "en")
		assert.Equal(t, models.IntentLoanStatus, got.Intent)
	})
}

func TestRank_SortedDescending(t *testing.T) {
	c := builtinClassifier(t)

	ranked := c.Rank("how much did I spend on groceries", "en")
	require.NotEmpty(t, ranked)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Confidence, ranked[i].Confidence)
	}
}

func TestClassify_UnsupportedLocale(t *testing.T) {
	c := builtinClassifier(t)

	got := c.Classify("how much did I spend this month", "fr")

	assert.Equal(t, models.IntentUnknown, got.Intent)
}
