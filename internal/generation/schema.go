package generation

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names
const (
	schemaLesson     = "lesson"
	schemaQuiz       = "quiz"
	schemaFlashcards = "flashcards"
	schemaWorksheet  = "worksheet"
)

// schemaSources hold the minimum shape each structured reply must have.
// Extra fields are allowed so prompt wording can evolve independently.
// A lesson needs a non-empty summary or key point list, and quiz and
// flashcard replies need at least one item.
var schemaSources = map[string]string{
	schemaLesson: `{
		"type": "object",
		"required": ["explanation"],
		"properties": {
			"title": {"type": "string"},
			"explanation": {"type": "string", "minLength": 1},
			"summary": {"type": "array", "items": {"type": "string"}},
			"keyPoints": {"type": "array", "items": {"type": "string"}}
		},
		"anyOf": [
			{"required": ["summary"], "properties": {"summary": {"minItems": 1}}},
			{"required": ["keyPoints"], "properties": {"keyPoints": {"minItems": 1}}}
		]
	}`,
	schemaQuiz: `{
		"type": "array",
		"minItems": 1,
		"items": {
			"type": "object",
			"required": ["question", "options", "correct"],
			"properties": {
				"question": {"type": "string", "minLength": 1},
				"options": {"type": "array", "minItems": 4, "maxItems": 4, "items": {"type": "string"}},
				"correct": {"type": "string"},
				"explanation": {"type": "string"}
			}
		}
	}`,
	schemaFlashcards: `{
		"type": "array",
		"minItems": 1,
		"items": {
			"type": "object",
			"required": ["front", "back"],
			"properties": {
				"front": {"type": "string", "minLength": 1},
				"back": {"type": "string", "minLength": 1}
			}
		}
	}`,
	schemaWorksheet: `{
		"type": "object",
		"required": ["mcq", "short"],
		"properties": {
			"mcq": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["question", "options", "answer"],
					"properties": {
						"question": {"type": "string", "minLength": 1},
						"options": {"type": "array", "items": {"type": "string"}},
						"answer": {"type": "string"}
					}
				}
			},
			"short": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["question", "answer"],
					"properties": {
						"question": {"type": "string", "minLength": 1},
						"answer": {"type": "string"}
					}
				}
			}
		}
	}`,
}

// compiledSchemas caches compiled schemas by name.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	src, ok := schemaSources[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	var doc any
	if err := json.Unmarshal([]byte(src), &doc); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://lumen/%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}

	compiledSchemas.Store(name, compiled)
	return compiled, nil
}

// validate checks a parsed reply against the named schema.
// Violations wrap ErrInvalidResponse.
func validate(name string, v any) error {
	compiled, err := compiledSchema(name)
	if err != nil {
		return err
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("%w: %s reply failed schema validation: %v", ErrInvalidResponse, name, err)
	}
	return nil
}
