package ai

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const headingsSchema = `{
  "type": "object",
  "required": ["headings"],
  "properties": {
    "headings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text", "level"],
        "properties": {
          "text": {"type": "string", "minLength": 1},
          "level": {"type": "integer", "minimum": 1, "maximum": 6}
        }
      }
    }
  }
}`

const glossarySchema = `{
  "type": "object",
  "required": ["glossary"],
  "properties": {
    "glossary": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["term", "definition"],
        "properties": {
          "term": {"type": "string", "minLength": 1},
          "definition": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var compiledSchemas = map[string]*jsonschema.Schema{
	"headings": jsonschema.MustCompileString("headings.json", headingsSchema),
	"glossary": jsonschema.MustCompileString("glossary.json", glossarySchema),
}

// validateJSON checks a raw model response against a named schema before
// anything downstream trusts its shape.
func validateJSON(name, raw string) error {
	schema, ok := compiledSchemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("response violates %s schema: %w", name, err)
	}
	return nil
}
