// pkg/patterns/tokens.go
package patterns

import "strings"

// Stop-words are shared by the classifier, the fuzzy matcher and the
// conversation enhancer so that all three agree on what carries meaning.
var stopWordsByLocale = map[string]map[string]struct{}{
	"en": toSet([]string{
		"the", "and", "for", "with", "this", "that", "what", "when",
		"how", "much", "many", "did", "does", "was", "were", "are",
		"you", "your", "have", "has", "had", "can", "will", "would",
		"should", "could", "about", "from", "into", "over", "under",
		"all", "any", "some", "not", "but", "out", "off", "too",
		"very", "just", "than", "then", "them", "they", "there",
		"here", "its", "his", "her", "who", "why", "which", "been",
	}),
	"es": toSet([]string{
		"que", "qué", "cual", "cuál", "como", "cómo", "cuanto",
		"cuánto", "cuanta", "cuánta", "cuantos", "cuántos", "para",
		"por", "con", "una", "uno", "unos", "unas", "los", "las",
		"del", "este", "esta", "esto", "mis", "mas", "más", "menos",
		"sobre", "desde", "hasta", "tengo", "tiene", "quiero",
		"saber", "dime", "cada", "donde", "dónde", "cuando",
		"cuándo", "ser", "son", "fue", "hay", "muy", "pero",
	}),
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// punctCutset is the punctuation users attach to amounts and
// questions. Tokenize and capture extraction strip the same set, so a
// captured value always matches its tokenized form.
const punctCutset = "?!.,;:\"'()"

// Normalize lowercases and trims a raw query. Every matching routine
// operates on normalized text only.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Tokenize splits a normalized query into tokens, stripping attached
// punctuation.
func Tokenize(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.Trim(f, punctCutset)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// IsStopWord reports whether token is in the locale's fixed stop-word
// set. Unknown locales have no stop-words.
func IsStopWord(locale, token string) bool {
	set, ok := stopWordsByLocale[locale]
	if !ok {
		return false
	}
	_, stop := set[token]
	return stop
}

// ContentTokens returns the query tokens that carry meaning: longer
// than two runes and not stop-words. One- and two-rune tokens are
// dropped because they sit within the fuzzy matcher's edit tolerance
// of almost any keyword and would cover them spuriously.
func ContentTokens(locale, query string) []string {
	tokens := Tokenize(Normalize(query))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len([]rune(t)) <= 2 || IsStopWord(locale, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
