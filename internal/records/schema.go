package records

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const pangramSchemaJSON = `{
  "type": "object",
  "required": ["letters"],
  "properties": {
    "word": {"type": "string"},
    "letters": {"type": "array", "items": {"type": "string"}},
    "possible_words": {"type": "array", "items": {"type": "string"}}
  }
}`

const combinedSchemaJSON = `{
  "type": "object",
  "required": ["letters", "words"],
  "properties": {
    "letters": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "words": {"type": "array", "items": {"type": "string"}},
    "total_words": {"type": "integer", "minimum": 0}
  }
}`

const playSchemaJSON = `{
  "type": "object",
  "required": ["key_letter", "other_letters", "words", "total_words"],
  "properties": {
    "key_letter": {"type": "string", "minLength": 1},
    "other_letters": {"type": "array", "items": {"type": "string"}},
    "words": {"type": "array", "items": {"type": "string"}},
    "total_words": {"type": "integer", "minimum": 0}
  }
}`

var (
	pangramSchema  = mustSchema(pangramSchemaJSON)
	combinedSchema = mustSchema(combinedSchemaJSON)
	playSchema     = mustSchema(playSchemaJSON)
)

// ValidationError lists every schema violation found in one document.
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("records: %s does not match schema: %s", e.Path, strings.Join(e.Errors, "; "))
}

func mustSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("records: compile schema: %v", err))
	}
	return schema
}

func validate(schema *gojsonschema.Schema, path string, data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("records: parse %s: %w", path, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		msgs = append(msgs, verr.String())
	}
	return &ValidationError{Path: path, Errors: msgs}
}
