package questiongen

import (
	"fmt"

	"github.com/alta-drill/alta/internal/bank"
)

// Input is what a drafting run is asked to produce.
type Input struct {
	// Chapter is the syllabus chapter every draft is tagged with.
	Chapter bank.Chapter

	// Count is the number of drafts wanted.
	Count int

	// Topic optionally narrows the chapter, e.g. "decision table testing".
	Topic string

	// Existing holds question texts already in the bank. Drafts that
	// repeat one are rejected, and a window of them is shown in the prompt.
	Existing []string

	// Examples are sample questions shown to the model for style.
	Examples []bank.Question
}

// Rejection is a draft that failed validation.
type Rejection struct {
	Question bank.Question
	Err      *ValidationError
}

// Result is the outcome of a drafting run.
type Result struct {
	Accepted []bank.Question
	Rejected []Rejection
	Rounds   int
}

// Validator checks a drafted question.
type Validator interface {
	// Name is a short identifier used in error messages.
	Name() string

	// Validate returns nil when q passes.
	Validate(q *bank.Question, in Input) *ValidationError
}

// ValidationError describes why a draft failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // whether asking again is likely to help
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
