package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultPath is the question file looked up when no path is configured.
const DefaultPath = "questions.json"

// DataLoadError reports a question file that is missing or cannot be parsed.
// It is the only error that stops a quiz from being shown.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load questions from %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Missing reports whether the file does not exist.
func (e *DataLoadError) Missing() bool {
	return errors.Is(e.Err, fs.ErrNotExist)
}

// Load reads and validates the question file at path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	qs, err := Parse(data)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	return &Bank{path: path, questions: qs}, nil
}

// Parse decodes and validates question file contents.
func Parse(data []byte) ([]Question, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	for i, q := range qs {
		if err := Check(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return qs, nil
}

// Check verifies the invariants the schema cannot express.
func Check(q Question) error {
	if q.Chapter == "" {
		return errors.New("chapter is empty")
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o] {
			return fmt.Errorf("duplicate option %q", o)
		}
		seen[o] = true
	}
	if !seen[q.Answer] {
		return fmt.Errorf("answer %q is not one of the options", q.Answer)
	}
	return nil
}
