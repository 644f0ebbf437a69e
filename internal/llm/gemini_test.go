package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestToGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"chapter": map[string]any{"type": []any{"string", "null"}},
			"count":   map[string]any{"type": "integer"},
			"level":   map[string]any{"type": "string", "enum": []any{"K2", "K3", "K4"}},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 2,
				"maxItems": 6,
			},
		},
		"required": []string{"chapter", "options"},
	}

	s := toGeminiSchema(def)

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(s.Properties))
	}
	if s.Properties["chapter"].Type != genai.TypeString {
		t.Errorf("union type = %s, want STRING", s.Properties["chapter"].Type)
	}
	if s.Properties["count"].Type != genai.TypeInteger {
		t.Errorf("count type = %s", s.Properties["count"].Type)
	}
	if len(s.Properties["level"].Enum) != 3 {
		t.Errorf("enum = %v", s.Properties["level"].Enum)
	}
	opts := s.Properties["options"]
	if opts.Type != genai.TypeArray || opts.Items.Type != genai.TypeString {
		t.Errorf("options = %s of %s", opts.Type, opts.Items.Type)
	}
	if opts.MinItems == nil || *opts.MinItems != 2 || opts.MaxItems == nil || *opts.MaxItems != 6 {
		t.Errorf("options bounds = %v..%v", opts.MinItems, opts.MaxItems)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}

func TestToGeminiContents(t *testing.T) {
	got := toGeminiContents([]Message{
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	})
	if len(got) != 2 {
		t.Fatalf("contents = %d, want 2", len(got))
	}
	if got[0].Role != genai.RoleUser || got[1].Role != genai.RoleModel {
		t.Errorf("roles = %s, %s", got[0].Role, got[1].Role)
	}
	if got[1].Parts[0].Text != "a" {
		t.Errorf("text = %q", got[1].Parts[0].Text)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(t.Context(), GeminiConfig{}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
