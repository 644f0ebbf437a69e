package bank

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleFile = `[
  {"chapter": 3, "question": "Which technique uses equivalence partitions?", "options": ["EP", "BVA", "DT"], "answer": "EP", "explanation": "By definition."},
  {"chapter": "1", "question": "What is a test basis?", "options": ["A", "B"], "answer": "B", "explanation": "Syllabus 1.1"},
  {"chapter": "10", "question": "Pick one", "options": ["x", "y"], "answer": "x", "explanation": ""}
]`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, sampleFile)
	b, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}
	if b.Path() != path {
		t.Errorf("Path = %q, want %q", b.Path(), path)
	}
	q := b.Questions()[0]
	if q.Chapter != "3" {
		t.Errorf("numeric chapter decoded as %q, want %q", q.Chapter, "3")
	}
	if q.AnswerIndex() != 0 {
		t.Errorf("AnswerIndex = %d, want 0", q.AnswerIndex())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var dle *DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("error %T is not *DataLoadError", err)
	}
	if !dle.Missing() {
		t.Error("Missing() = false, want true")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false")
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"not json", `{{{`, "invalid JSON"},
		{"object instead of array", `{"chapter": 1}`, "schema"},
		{"missing answer", `[{"chapter": 1, "question": "q", "options": ["a"], "explanation": ""}]`, "schema"},
		{"empty options", `[{"chapter": 1, "question": "q", "options": [], "answer": "a", "explanation": ""}]`, "schema"},
		{"answer not an option", `[{"chapter": 1, "question": "q", "options": ["a", "b"], "answer": "c", "explanation": ""}]`, "not one of the options"},
		{"duplicate option", `[{"chapter": 1, "question": "q", "options": ["a", "a"], "answer": "a", "explanation": ""}]`, "duplicate option"},
		{"boolean chapter", `[{"chapter": true, "question": "q", "options": ["a"], "answer": "a", "explanation": ""}]`, "schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			var dle *DataLoadError
			if !errors.As(err, &dle) {
				t.Fatalf("error %T is not *DataLoadError", err)
			}
			if dle.Missing() {
				t.Error("Missing() = true for a malformed file")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadEmptyArray(t *testing.T) {
	b, err := Load(writeFile(t, `[]`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len = %d, want 0", b.Len())
	}
}

func TestChapterUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want Chapter
	}{
		{`3`, "3"},
		{`"3"`, "3"},
		{`" 4 "`, "4"},
		{`"K-1"`, "K-1"},
	}
	for _, tt := range tests {
		var c Chapter
		if err := json.Unmarshal([]byte(tt.in), &c); err != nil {
			t.Errorf("unmarshal %s: %v", tt.in, err)
			continue
		}
		if c != tt.want {
			t.Errorf("unmarshal %s = %q, want %q", tt.in, c, tt.want)
		}
	}
}

func TestChaptersSorted(t *testing.T) {
	b := New([]Question{
		{Chapter: "10", Text: "a"},
		{Chapter: "2", Text: "b"},
		{Chapter: "2", Text: "c"},
		{Chapter: "1", Text: "d"},
	})
	got := b.Chapters()
	want := []ChapterCount{{"1", 1}, {"2", 2}, {"10", 1}}
	if len(got) != len(want) {
		t.Fatalf("Chapters = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Chapters[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if n := b.CountChapter("2"); n != 2 {
		t.Errorf("CountChapter(2) = %d, want 2", n)
	}
}

func TestQuestionsIsCopy(t *testing.T) {
	b := New([]Question{{Chapter: "1", Text: "orig"}})
	qs := b.Questions()
	qs[0].Text = "mutated"
	if b.Questions()[0].Text != "orig" {
		t.Error("mutating Questions() result changed the bank")
	}
}

func TestContains(t *testing.T) {
	b := New([]Question{{Chapter: "1", Text: "What is  a Test Basis?"}})
	if !b.Contains("what is a test basis?") {
		t.Error("Contains should ignore case and repeated whitespace")
	}
	if b.Contains("something else") {
		t.Error("Contains matched an unrelated text")
	}
}

func TestAppend(t *testing.T) {
	path := writeFile(t, sampleFile)

	add := []Question{
		{Chapter: "3", Text: "Which technique uses equivalence partitions?", Options: []string{"a"}, Answer: "a"},
		{Chapter: "4", Text: "New question", Options: []string{"a", "b"}, Answer: "b", Explanation: "because"},
	}
	n, err := Append(path, add)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if n != 1 {
		t.Errorf("added = %d, want 1 (duplicate skipped)", n)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if b.Len() != 4 {
		t.Errorf("Len after append = %d, want 4", b.Len())
	}
}

func TestAppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.json")
	n, err := Append(path, []Question{{Chapter: "1", Text: "q", Options: []string{"a"}, Answer: "a"}})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if n != 1 {
		t.Errorf("added = %d, want 1", n)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("load created file: %v", err)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.json")
	_, err := Append(path, []Question{{Chapter: "1", Text: "q", Options: []string{"a"}, Answer: "z"}})
	if err == nil {
		t.Fatal("expected error for answer outside options")
	}
}
