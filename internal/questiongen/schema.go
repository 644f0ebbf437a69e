package questiongen

import (
	"github.com/alta-drill/alta/internal/llm"
)

// DraftSchema is the structured output requested from the model. It is
// strict-mode compatible: every property is required and no extras are
// allowed.
var DraftSchema = &llm.Schema{
	Name:        "exam-questions",
	Description: "A batch of multiple-choice certification exam questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question stem",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Answer choices; exactly one is correct",
							"items":       map[string]any{"type": "string"},
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied exactly",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is correct and the distractors are not",
						},
					},
					"required":             []any{"question", "options", "answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

type draftOutput struct {
	Questions []struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}
