// pkg/patterns/registry.go
package patterns

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"finance-assistant/internal/models"
)

// Pattern is one compiled token pattern. Tokens are literals, "*"
// wildcards, or "{name}" capture slots. Compiled once, read-only after.
type Pattern struct {
	Raw      string
	re       *regexp.Regexp
	keywords []string
}

var captureToken = regexp.MustCompile(`^\{([a-zA-Z][a-zA-Z0-9_]*)\}$`)

func compilePattern(locale, raw string) (Pattern, error) {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(tokens) == 0 {
		return Pattern{}, fmt.Errorf("empty pattern")
	}

	parts := make([]string, 0, len(tokens))
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch {
		case tok == "*":
			parts = append(parts, `.*`)
		case captureToken.MatchString(tok):
			name := captureToken.FindStringSubmatch(tok)[1]
			parts = append(parts, fmt.Sprintf(`(?P<%s>.+?)`, name))
		default:
			parts = append(parts, regexp.QuoteMeta(tok))
			if len([]rune(tok)) > 2 && !IsStopWord(locale, tok) {
				keywords = append(keywords, tok)
			}
		}
	}

	re, err := regexp.Compile(`^` + strings.Join(parts, `\s+`) + `$`)
	if err != nil {
		return Pattern{}, fmt.Errorf("compile pattern %q: %w", raw, err)
	}
	return Pattern{Raw: raw, re: re, keywords: keywords}, nil
}

// Matches reports a full structural match against a normalized query.
func (p Pattern) Matches(query string) bool {
	return p.re.MatchString(query)
}

// Captures returns the named capture slots filled by a structural
// match, or nil when the pattern does not match. Values are trimmed of
// the same punctuation Tokenize strips, so a captured category or
// amount compares cleanly against tokenized data.
func (p Pattern) Captures(query string) map[string]string {
	m := p.re.FindStringSubmatch(query)
	if m == nil {
		return nil
	}
	out := make(map[string]string)
	for i, name := range p.re.SubexpNames() {
		if name != "" && i < len(m) {
			out[name] = strings.Trim(strings.TrimSpace(m[i]), punctCutset)
		}
	}
	return out
}

// Keywords returns the pattern's content keywords (syntax stripped,
// short tokens and stop-words dropped).
func (p Pattern) Keywords() []string {
	return p.keywords
}

// Registry is the immutable two-level lookup from locale and intent
// label to compiled patterns. Built once at startup, never mutated, so
// concurrent requests read it without coordination.
type Registry struct {
	version  string
	byLocale map[string]map[models.Intent][]Pattern
}

// NewBuiltin builds the registry from the compiled-in tables.
func NewBuiltin() (*Registry, error) {
	return build("builtin", map[string]map[string][]string{
		"en": builtinEnglish,
		"es": builtinSpanish,
	})
}

// Load reads a versioned pattern file, validates it against the file
// schema and compiles it into a registry.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(fileSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate pattern file: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("invalid pattern file %s: %s", path, strings.Join(details, "; "))
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse pattern file: %w", err)
	}
	return build(file.Version, file.Locales)
}

func build(version string, locales map[string]map[string][]string) (*Registry, error) {
	reg := &Registry{
		version:  version,
		byLocale: make(map[string]map[models.Intent][]Pattern, len(locales)),
	}
	for locale, table := range locales {
		compiled := make(map[models.Intent][]Pattern, len(table))
		for label, raws := range table {
			if len(raws) == 0 {
				return nil, fmt.Errorf("locale %s: intent %s has no patterns", locale, label)
			}
			list := make([]Pattern, 0, len(raws))
			for _, raw := range raws {
				p, err := compilePattern(locale, raw)
				if err != nil {
					return nil, fmt.Errorf("locale %s, intent %s: %w", locale, label, err)
				}
				list = append(list, p)
			}
			compiled[models.Intent(label)] = list
		}
		reg.byLocale[locale] = compiled
	}
	return reg, nil
}

// Version identifies the pattern data the registry was built from.
func (r *Registry) Version() string {
	return r.version
}

// Locales returns the supported locales in stable order.
func (r *Registry) Locales() []string {
	out := make([]string, 0, len(r.byLocale))
	for loc := range r.byLocale {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// HasLocale reports whether the locale has a pattern table.
func (r *Registry) HasLocale(locale string) bool {
	_, ok := r.byLocale[locale]
	return ok
}

// Intents returns the intent labels of a locale in stable order, so
// that classification over the registry is deterministic.
func (r *Registry) Intents(locale string) []models.Intent {
	table, ok := r.byLocale[locale]
	if !ok {
		return nil
	}
	out := make([]models.Intent, 0, len(table))
	for label := range table {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Patterns returns the compiled patterns of one intent in one locale.
func (r *Registry) Patterns(locale string, intent models.Intent) []Pattern {
	table, ok := r.byLocale[locale]
	if !ok {
		return nil
	}
	return table[intent]
}

// ExtractCapture runs the intent's patterns against a normalized query
// and returns the first filled capture slot with the given name.
func (r *Registry) ExtractCapture(locale string, intent models.Intent, query, name string) (string, bool) {
	for _, p := range r.Patterns(locale, intent) {
		caps := p.Captures(Normalize(query))
		if caps == nil {
			continue
		}
		if v, ok := caps[name]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// ValidateCoverage enforces the registry invariant: every routable
// intent must have a non-empty pattern list in every supported locale.
func (r *Registry) ValidateCoverage(intents []models.Intent) error {
	for _, locale := range r.Locales() {
		table := r.byLocale[locale]
		for _, intent := range intents {
			if len(table[intent]) == 0 {
				return fmt.Errorf("locale %s: intent %s has no patterns", locale, intent)
			}
		}
	}
	return nil
}
