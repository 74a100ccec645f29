// internal/nlu/decomposer/decomposer.go
package decomposer

import (
	"sort"
	"strings"

	"finance-assistant/internal/models"
	"finance-assistant/internal/nlu/classifier"
	"finance-assistant/pkg/patterns"
)

const (
	// fragmentThreshold filters weak per-fragment classifications.
	fragmentThreshold = 0.5
	// secondaryConfidence is the fixed score of trigger-word intents.
	secondaryConfidence = 0.6
)

// conjunctionMarkers split compound queries per locale. Splitting is
// structural only; fragments are classified independently.
var conjunctionMarkers = map[string][]string{
	"en": {" and ", " also ", " then ", ","},
	"es": {" y ", " también ", " tambien ", " luego ", ","},
}

// secondaryTriggers map stand-alone keywords to an extra intent when
// the query did not split.
var secondaryTriggers = map[string]map[string]models.Intent{
	"en": {
		"compare": models.IntentCompareMonths,
		"versus":  models.IntentCompareMonths,
		"budget":  models.IntentBudgetStatus,
		"goal":    models.IntentGoalStatus,
		"invest":  models.IntentInvestmentGrowth,
	},
	"es": {
		"compara":     models.IntentCompareMonths,
		"comparar":    models.IntentCompareMonths,
		"presupuesto": models.IntentBudgetStatus,
		"meta":        models.IntentGoalStatus,
		"invertir":    models.IntentInvestmentGrowth,
	},
}

// Decomposer detects compound queries ("spend this month and compare
// with last month") and classifies each part on its own.
type Decomposer struct {
	classifier *classifier.Classifier
}

func New(c *classifier.Classifier) *Decomposer {
	return &Decomposer{classifier: c}
}

// Decompose returns every intent candidate of the query, deduplicated
// by label at max confidence and sorted descending.
func (d *Decomposer) Decompose(query, locale string) []classifier.Candidate {
	fragments := split(patterns.Normalize(query), locale)

	var found []classifier.Candidate
	if len(fragments) > 1 {
		for _, frag := range fragments {
			cand := d.classifier.Classify(frag, locale)
			if cand.Intent != models.IntentUnknown && cand.Confidence > fragmentThreshold {
				found = append(found, cand)
			}
		}
	} else {
		primary := d.classifier.Classify(query, locale)
		if primary.Intent != models.IntentUnknown {
			found = append(found, primary)
		}
		for _, tok := range patterns.Tokenize(patterns.Normalize(query)) {
			intent, ok := secondaryTriggers[locale][tok]
			if ok && intent != primary.Intent {
				found = append(found, classifier.Candidate{Intent: intent, Confidence: secondaryConfidence})
			}
		}
	}

	return dedupe(found)
}

func split(normalized, locale string) []string {
	fragments := []string{normalized}
	for _, marker := range conjunctionMarkers[locale] {
		var next []string
		for _, frag := range fragments {
			for _, part := range strings.Split(frag, marker) {
				part = strings.TrimSpace(part)
				if part != "" {
					next = append(next, part)
				}
			}
		}
		fragments = next
	}
	return fragments
}

func dedupe(cands []classifier.Candidate) []classifier.Candidate {
	best := make(map[models.Intent]float64, len(cands))
	for _, c := range cands {
		if c.Confidence > best[c.Intent] {
			best[c.Intent] = c.Confidence
		}
	}

	out := make([]classifier.Candidate, 0, len(best))
	for intent, conf := range best {
		out = append(out, classifier.Candidate{Intent: intent, Confidence: conf})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Intent < out[j].Intent
	})
	return out
}
