package generation

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/quizforge/quizforge-backend/internal/llm"
)

// Schema names used by task configs. An empty schema name means the
// task produces free text.
const (
	SchemaQuiz    = "quiz"
	SchemaSummary = "summary"
	SchemaRaw     = ""
)

// quizSchema describes the structured quiz output requested from the
// model. The IDs the model emits are provisional; the normalizer
// replaces them with the canonical ID graph.
func quizSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "quiz-response",
		Description: "A multiple-choice quiz with per-choice explanations",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"quiz_title", "difficulty", "category", "questions"},
			"properties": map[string]any{
				"quiz_title": map[string]any{"type": "string"},
				"difficulty": map[string]any{"type": "string"},
				"category":   map[string]any{"type": "string"},
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"question_id", "question_text", "choices", "correct_choice_id", "answer_explanation"},
						"properties": map[string]any{
							"question_id":   map[string]any{"type": "string"},
							"question_text": map[string]any{"type": "string"},
							"choices": map[string]any{
								"type": "array",
								"items": map[string]any{
									"type":     "object",
									"required": []any{"choice_id", "choice_text", "choice_explanation"},
									"properties": map[string]any{
										"choice_id":          map[string]any{"type": "string"},
										"choice_text":        map[string]any{"type": "string"},
										"choice_explanation": map[string]any{"type": "string"},
									},
								},
							},
							"correct_choice_id":  map[string]any{"type": "string"},
							"answer_explanation": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}
}

// summarySchema describes the structured summary output: markdown body
// plus reinforcement questions with answers.
func summarySchema() *llm.Schema {
	return &llm.Schema{
		Name:        "summary-response",
		Description: "A structured content summary with reinforcement questions",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"title", "summary_text"},
			"properties": map[string]any{
				"title":        map[string]any{"type": "string"},
				"summary_text": map[string]any{"type": "string"},
				"related_questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"question", "answer"},
						"properties": map[string]any{
							"question": map[string]any{"type": "string"},
							"answer":   map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}
}

// FormatInstructions renders the text injected into every prompt's
// format_instructions placeholder. Empty string when the task has no
// structured schema.
func FormatInstructions(schema *llm.Schema) string {
	if schema == nil {
		return ""
	}
	def, err := json.MarshalIndent(schema.Definition, "", "  ")
	if err != nil {
		// Definitions are static maps of strings; this cannot fail.
		return ""
	}
	return fmt.Sprintf(
		"The output must be a single JSON object conforming to the JSON Schema below, with no additional text:\n%s",
		def)
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateAgainstSchema checks a parsed JSON value against the schema.
// The error is the raw validation failure; callers wrap it.
func validateAgainstSchema(schema *llm.Schema, parsed any) error {
	if schema == nil {
		return nil
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	return compiled.Validate(parsed)
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *llm.Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
