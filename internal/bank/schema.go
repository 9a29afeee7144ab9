package bank

// bankSchema defines the JSON schema the embedded question bank must satisfy.
// Referential rules that JSON Schema cannot express (unique question ids,
// correctAnswerId matching exactly one option) are checked in validate().
var bankSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":    "integer",
				"minimum": 1,
			},
			"category": map[string]any{
				"type": "string",
				"enum": []any{"Hardware", "Network", "Security", "Troubleshooting"},
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"Easy", "Medium", "Hard"},
			},
			"text": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"options": map[string]any{
				"type":     "array",
				"minItems": 2,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":   map[string]any{"type": "string", "minLength": 1},
						"text": map[string]any{"type": "string", "minLength": 1},
					},
					"required":             []any{"id", "text"},
					"additionalProperties": false,
				},
			},
			"correctAnswerId": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"explanation": map[string]any{
				"type": "string",
			},
		},
		"required":             []any{"id", "category", "difficulty", "text", "options", "correctAnswerId", "explanation"},
		"additionalProperties": false,
	},
}
