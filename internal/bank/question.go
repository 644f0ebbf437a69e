package bank

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Chapter identifies a syllabus section. Question files carry it either as a
// JSON string or a JSON number; both decode to the same Chapter.
type Chapter string

func (c *Chapter) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Chapter(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("chapter must be a string or a number: %w", err)
	}
	*c = Chapter(n.String())
	return nil
}

func (c Chapter) String() string { return string(c) }

// Question is a single multiple-choice record from the question file.
type Question struct {
	Chapter     Chapter  `json:"chapter"`
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// IsCorrect reports whether option is exactly the recorded answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.Answer
}

// AnswerIndex returns the position of the answer among the options, or -1.
func (q Question) AnswerIndex() int {
	for i, o := range q.Options {
		if o == q.Answer {
			return i
		}
	}
	return -1
}

// ChapterCount pairs a chapter with the number of questions tagged with it.
type ChapterCount struct {
	Chapter Chapter
	Count   int
}

// Bank is the read-only set of questions loaded from a file.
type Bank struct {
	path      string
	questions []Question
}

// New creates a Bank from in-memory questions. The slice is copied.
func New(questions []Question) *Bank {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Bank{questions: qs}
}

// Path returns the file the bank was loaded from ("" for in-memory banks).
func (b *Bank) Path() string { return b.path }

// Len returns the number of questions.
func (b *Bank) Len() int { return len(b.questions) }

// Questions returns a copy of the questions in file order.
func (b *Bank) Questions() []Question {
	qs := make([]Question, len(b.questions))
	copy(qs, b.questions)
	return qs
}

// Texts returns the question texts in file order.
func (b *Bank) Texts() []string {
	texts := make([]string, len(b.questions))
	for i, q := range b.questions {
		texts[i] = q.Text
	}
	return texts
}

// Contains reports whether a question with the same text (ignoring
// surrounding whitespace and case) is already in the bank.
func (b *Bank) Contains(text string) bool {
	key := TextKey(text)
	for _, q := range b.questions {
		if TextKey(q.Text) == key {
			return true
		}
	}
	return false
}

// Chapters returns the distinct chapters with their question counts, sorted
// numerically where both chapters are integers and lexically otherwise.
func (b *Bank) Chapters() []ChapterCount {
	counts := make(map[Chapter]int)
	for _, q := range b.questions {
		counts[q.Chapter]++
	}
	out := make([]ChapterCount, 0, len(counts))
	for ch, n := range counts {
		out = append(out, ChapterCount{Chapter: ch, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return lessChapter(out[i].Chapter, out[j].Chapter)
	})
	return out
}

// CountChapter returns how many questions are tagged with ch.
func (b *Bank) CountChapter(ch Chapter) int {
	n := 0
	for _, q := range b.questions {
		if q.Chapter == ch {
			n++
		}
	}
	return n
}

func lessChapter(a, b Chapter) bool {
	ai, aerr := strconv.Atoi(string(a))
	bi, berr := strconv.Atoi(string(b))
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}

// TextKey folds case and whitespace so equivalent question texts compare equal.
func TextKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
