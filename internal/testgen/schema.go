package testgen

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/abhisek/examforge/internal/llm"
)

// batchSchema describes the expected shape of a parsed question batch.
// Validation is advisory: a batch that fails it is logged, not dropped,
// because the normalizer repairs most structural defects anyway.
var batchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of generated exam questions",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"question_type", "question_text", "options", "correct_answer"},
					"properties": map[string]any{
						"question_id":   map[string]any{"type": "integer"},
						"question_type": map[string]any{"type": "string"},
						"question_text": map[string]any{"type": "string"},
						"options": map[string]any{
							"type": "object",
							"additionalProperties": map[string]any{
								"type": "string",
							},
						},
						"correct_answer": map[string]any{
							"type": "string",
							"enum": []any{"a", "b", "c", "d"},
						},
					},
				},
			},
		},
	},
}

// validateBatch checks a parsed batch against the question schema and
// logs any violation at warn level.
func validateBatch(log zerolog.Logger, batch *Batch, label string) {
	if batch == nil || batch.Failed() {
		return
	}
	raw, err := json.Marshal(batch)
	if err != nil {
		return
	}
	if err := llm.ValidateSchema(batchSchema, raw); err != nil {
		log.Warn().
			Str("chunk", label).
			Err(err).
			Msg("batch failed schema validation, continuing with repair passes")
	}
}
