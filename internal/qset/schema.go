package qset

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// metadataSchema is the JSON Schema every metadata.json must satisfy
// before a set is loaded. Option letters are constrained to the fixed
// answer alphabet.
const metadataSchema = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["image_filename", "correct_answer"],
				"properties": {
					"image_filename": {"type": "string", "minLength": 1},
					"correct_answer": {"enum": ["A", "B", "C", "D", "E"]},
					"year": {"type": ["integer", "null"]},
					"question_number": {"type": ["integer", "null"], "minimum": 1},
					"set_identifier": {"type": ["string", "null"]},
					"category": {"type": ["string", "null"]}
				}
			}
		}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// validateMetadata checks raw metadata.json bytes against the schema.
func validateMetadata(raw []byte) error {
	schemaOnce.Do(func() {
		var def any
		if schemaErr = json.Unmarshal([]byte(metadataSchema), &def); schemaErr != nil {
			return
		}
		c := jsonschema.NewCompiler()
		if schemaErr = c.AddResource("schema://metadata.json", def); schemaErr != nil {
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://metadata.json")
	})
	if schemaErr != nil {
		return fmt.Errorf("compile metadata schema: %w", schemaErr)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("metadata schema: %w", err)
	}
	return nil
}
