// internal/nlu/contextual/enhancer.go
package contextual

import (
	"strings"

	"finance-assistant/internal/models"
	"finance-assistant/pkg/patterns"
)

const (
	// historyWindow bounds how far back the enhancer looks.
	historyWindow = 6
	// maxKeywordsPerTurn caps extraction per user turn.
	maxKeywordsPerTurn = 5
	// maxAppended caps how many keywords a terse query receives.
	maxAppended = 3
	// terseTokenCount: queries with fewer whitespace tokens than this
	// are considered follow-ups worth enriching.
	terseTokenCount = 4
	// minWordLen: only words longer than this carry topic context.
	minWordLen = 3
)

// Enhance folds recent conversation keywords into terse follow-up
// queries ("and last month?"). Longer queries and empty histories pass
// through unchanged. The history is read-only; the caller owns it.
func Enhance(query string, history []models.ConversationTurn, locale string) string {
	if len(history) == 0 {
		return query
	}

	window := history
	if len(window) > historyWindow {
		window = window[len(window)-historyWindow:]
	}

	seen := make(map[string]struct{})
	var keywords []string
	for _, turn := range window {
		if turn.Role != models.RoleUser {
			continue
		}
		taken := 0
		for _, word := range patterns.Tokenize(patterns.Normalize(turn.Text)) {
			if taken >= maxKeywordsPerTurn {
				break
			}
			if len([]rune(word)) <= minWordLen || patterns.IsStopWord(locale, word) {
				continue
			}
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			keywords = append(keywords, word)
			taken++
		}
	}

	if len(keywords) == 0 || len(strings.Fields(query)) >= terseTokenCount {
		return query
	}

	if len(keywords) > maxAppended {
		keywords = keywords[:maxAppended]
	}
	return strings.TrimSpace(query) + " " + strings.Join(keywords, " ")
}
