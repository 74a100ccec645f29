// internal/nlu/classifier/classifier.go
package classifier

import (
	"sort"

	"finance-assistant/internal/models"
	"finance-assistant/pkg/patterns"
)

const (
	// exactScore is awarded for a full structural pattern match.
	exactScore = 1.0
	// partialWeight scales the keyword-overlap fraction so partial
	// matches always rank below structural ones.
	partialWeight = 0.7
)

// Candidate is one confidence-scored classification outcome.
// Confidence is always in [0, 1].
type Candidate struct {
	Intent     models.Intent `json:"intent"`
	Confidence float64       `json:"confidence"`
}

// Unknown is the defined no-match outcome.
func Unknown() Candidate {
	return Candidate{Intent: models.IntentUnknown, Confidence: 0}
}

// TieBreakPolicy is the ambiguity rule as externally editable data.
// The thresholds are empirically tuned; they are kept as a value so
// operators can adjust them without touching the matcher.
type TieBreakPolicy struct {
	// ConfidentScore: at or above this, the best candidate stands.
	ConfidentScore float64 `mapstructure:"confident_score"`
	// AmbiguityGap: below this distance between the top two scores the
	// result counts as ambiguous.
	AmbiguityGap float64 `mapstructure:"ambiguity_gap"`
	// Preferred lists the curated specific intents that win ambiguous
	// ties, in no particular order.
	Preferred []models.Intent `mapstructure:"preferred"`
}

// DefaultTieBreakPolicy mirrors the tuned production values.
func DefaultTieBreakPolicy() TieBreakPolicy {
	return TieBreakPolicy{
		ConfidentScore: 0.8,
		AmbiguityGap:   0.2,
		Preferred: []models.Intent{
			models.IntentSpendingByCategory,
			models.IntentCompareMonths,
			models.IntentLoanExtraPayment,
			models.IntentMilestoneTimeline,
			models.IntentGoalStatus,
			models.IntentBudgetStatus,
			models.IntentInvestmentGrowth,
		},
	}
}

// Classifier scores queries against the immutable pattern registry.
// It is pure and safe for concurrent use.
type Classifier struct {
	registry  *patterns.Registry
	policy    TieBreakPolicy
	preferred map[models.Intent]struct{}
}

func New(registry *patterns.Registry, policy TieBreakPolicy) *Classifier {
	preferred := make(map[models.Intent]struct{}, len(policy.Preferred))
	for _, intent := range policy.Preferred {
		preferred[intent] = struct{}{}
	}
	return &Classifier{registry: registry, policy: policy, preferred: preferred}
}

// Rank scores every intent of the locale and returns all candidates
// scoring above zero, sorted by confidence descending with a label
// tie-break for determinism.
func (c *Classifier) Rank(query, locale string) []Candidate {
	normalized := patterns.Normalize(query)
	queryTokens := tokenSet(patterns.Tokenize(normalized))

	var ranked []Candidate
	for _, intent := range c.registry.Intents(locale) {
		score := 0.0
		for _, p := range c.registry.Patterns(locale, intent) {
			if s := patternScore(normalized, queryTokens, p); s > score {
				score = s
			}
		}
		if score > 0 {
			ranked = append(ranked, Candidate{Intent: intent, Confidence: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].Intent < ranked[j].Intent
	})
	return ranked
}

// Classify returns the single best candidate after applying the
// ambiguity tie-break, or the unknown candidate if nothing scores.
func (c *Classifier) Classify(query, locale string) Candidate {
	ranked := c.Rank(query, locale)
	if len(ranked) == 0 {
		return Unknown()
	}

	best := ranked[0]
	if !c.ambiguous(ranked) {
		return best
	}

	// Ambiguous: among the top three, the first curated specific
	// intent wins; otherwise the original best stands.
	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}
	for _, cand := range top {
		if _, ok := c.preferred[cand.Intent]; ok {
			return cand
		}
	}
	return best
}

func (c *Classifier) ambiguous(ranked []Candidate) bool {
	if len(ranked) < 2 {
		return false
	}
	top, second := ranked[0].Confidence, ranked[1].Confidence
	return top < c.policy.ConfidentScore && top-second < c.policy.AmbiguityGap
}

func patternScore(normalized string, queryTokens map[string]struct{}, p patterns.Pattern) float64 {
	if p.Matches(normalized) {
		return exactScore
	}

	keywords := p.Keywords()
	if len(keywords) == 0 {
		return 0
	}
	hits := 0
	for _, kw := range keywords {
		if _, ok := queryTokens[kw]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords)) * partialWeight
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
