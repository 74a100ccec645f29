// internal/router/parse.go
package router

import (
	"regexp"
	"strconv"
	"strings"

	"finance-assistant/internal/models"
	"finance-assistant/pkg/patterns"
)

// Fallbacks used when free text carries no parsable number. Unparsable
// numeric tokens default rather than fail.
const (
	defaultAmount        = 100.0
	defaultYears         = 10.0
	defaultAnnualRatePct = 7.0
)

var numberRe = regexp.MustCompile(`\$?\s*(\d+(?:[.,]\d+)?)`)
var yearsRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:years?|años?|anos?)`)

// parseAmount extracts the first monetary number from free text,
// falling back to a fixed default when nothing parses.
func parseAmount(text string) float64 {
	m := numberRe.FindStringSubmatch(text)
	if m == nil {
		return defaultAmount
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || v <= 0 {
		return defaultAmount
	}
	return v
}

// parseYears extracts an explicit year horizon ("in 5 years"), falling
// back to the default projection window.
func parseYears(text string) float64 {
	m := yearsRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return defaultYears
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return defaultYears
	}
	return v
}

// captureOrKeyword pulls a named capture slot from the intent's
// patterns, falling back to the last content token of the query.
func (r *Router) captureOrKeyword(req Request, name string) string {
	if v, ok := r.registry.ExtractCapture(req.Locale, req.Intent, req.Query, name); ok {
		return v
	}
	tokens := patterns.ContentTokens(req.Locale, req.Query)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// sumByDirection totals transaction amounts matching a direction.
func sumByDirection(txs []models.Transaction, direction string) float64 {
	var total float64
	for _, t := range txs {
		if t.Direction == direction {
			total += t.Amount
		}
	}
	return total
}
