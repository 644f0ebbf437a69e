package questiongen

import (
	"fmt"
	"strings"

	"github.com/alta-drill/alta/internal/bank"
)

// Option count bounds for a drafted question.
const (
	MinOptions = 2
	MaxOptions = 6
)

// StructuralValidator checks that a draft is a well-formed multiple-choice
// question: non-empty text and explanation, 2 to 6 distinct options, and an
// answer that is one of them.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *bank.Question, _ Input) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("question is empty")
	}
	if len(q.Text) > 1000 {
		return fail("question exceeds 1000 characters")
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return fail("explanation is empty")
	}
	if n := len(q.Options); n < MinOptions || n > MaxOptions {
		return fail("need %d to %d options, got %d", MinOptions, MaxOptions, n)
	}

	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fail("option is empty")
		}
		if seen[o] {
			return fail("duplicate option %q", o)
		}
		seen[o] = true
	}
	if !seen[q.Answer] {
		return fail("answer %q is not one of the options", q.Answer)
	}
	return nil
}
