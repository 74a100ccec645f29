// pkg/patterns/schema.go
package patterns

// File is the on-disk shape of a versioned pattern table. The two-level
// lookup (locale -> intent label -> pattern list) is data, so adding a
// locale or an intent is a data change, never a code change.
type File struct {
	Version     string                         `json:"version"`
	LastUpdated string                         `json:"lastUpdated"`
	Locales     map[string]map[string][]string `json:"locales"`
}

// fileSchema validates a pattern file before anything is compiled from
// it. A file that fails the schema is rejected as a whole.
const fileSchema = `{
  "type": "object",
  "required": ["version", "locales"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "lastUpdated": {"type": "string"},
    "locales": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "minProperties": 1,
        "additionalProperties": {
          "type": "array",
          "minItems": 1,
          "items": {"type": "string", "minLength": 1}
        }
      }
    }
  },
  "additionalProperties": false
}`
