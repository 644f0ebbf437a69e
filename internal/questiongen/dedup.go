package questiongen

import (
	"fmt"
	"strings"

	"github.com/alta-drill/alta/internal/bank"
)

// DuplicateValidator rejects drafts whose text matches an existing question.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *bank.Question, in Input) *ValidationError {
	key := bank.TextKey(q.Text)
	for _, e := range in.Existing {
		if bank.TextKey(e) == key {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "question already exists in the bank",
				Retryable: true,
			}
		}
	}
	return nil
}

// buildDedup lists the most recent max texts for the prompt, or "None".
func buildDedup(texts []string, max int) string {
	if len(texts) == 0 {
		return "None"
	}
	if max > 0 && len(texts) > max {
		texts = texts[len(texts)-max:]
	}

	var b strings.Builder
	for i, q := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
