// internal/nlu/fuzzy/fuzzy.go
package fuzzy

import (
	"strings"

	"finance-assistant/internal/nlu/classifier"
	"finance-assistant/pkg/patterns"
)

const (
	// ScoreCap keeps fuzzy matches below direct classifier matches.
	ScoreCap = 0.6
	// AcceptThreshold: callers take a fuzzy result only above this.
	AcceptThreshold = 0.4
	// maxEditDistance is the Levenshtein tolerance per keyword.
	maxEditDistance = 2
)

// Matcher is the edit-distance fallback over the pattern registry,
// invoked only when direct classification is unknown or weak.
type Matcher struct {
	registry *patterns.Registry
}

func New(registry *patterns.Registry) *Matcher {
	return &Matcher{registry: registry}
}

// Match scores every intent by how well the query's content tokens
// cover its pattern keywords, tolerating typos up to two edits.
func (m *Matcher) Match(query, locale string) classifier.Candidate {
	queryTokens := patterns.ContentTokens(locale, query)
	if len(queryTokens) == 0 {
		return classifier.Unknown()
	}

	best := classifier.Unknown()
	for _, intent := range m.registry.Intents(locale) {
		score := 0.0
		for _, p := range m.registry.Patterns(locale, intent) {
			if s := patternSimilarity(queryTokens, p.Keywords()); s > score {
				score = s
			}
		}
		score *= ScoreCap
		if score > best.Confidence {
			best = classifier.Candidate{Intent: intent, Confidence: score}
		}
	}
	return best
}

// patternSimilarity is the fraction of pattern keywords covered by at
// least one query token.
func patternSimilarity(queryTokens, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	covered := 0
	for _, kw := range keywords {
		for _, tok := range queryTokens {
			if covers(tok, kw) {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(keywords))
}

// covers: equal, one contains the other, or within the edit tolerance.
func covers(token, keyword string) bool {
	if token == keyword {
		return true
	}
	if strings.Contains(token, keyword) || strings.Contains(keyword, token) {
		return true
	}
	return Levenshtein(token, keyword) <= maxEditDistance
}

// Levenshtein is the classic dynamic-programming edit distance with
// unit insert/delete/substitute costs.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
