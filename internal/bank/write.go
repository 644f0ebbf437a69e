package bank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Save writes questions to path as an indented JSON array. The file is
// replaced atomically.
func Save(path string, questions []Question) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if questions == nil {
		questions = []Question{}
	}
	if err := enc.Encode(questions); err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".questions-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Append adds questions to the file at path, creating it when missing.
// Questions whose text is already present are skipped. It returns the number
// of questions actually written.
func Append(path string, add []Question) (int, error) {
	existing := New(nil)
	b, err := Load(path)
	switch {
	case err == nil:
		existing = b
	case errors.Is(err, fs.ErrNotExist):
	default:
		return 0, err
	}

	all := existing.Questions()
	added := 0
	for _, q := range add {
		if err := Check(q); err != nil {
			return 0, fmt.Errorf("question %q: %w", q.Text, err)
		}
		if New(all).Contains(q.Text) {
			continue
		}
		all = append(all, q)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := Save(path, all); err != nil {
		return 0, err
	}
	return added, nil
}
