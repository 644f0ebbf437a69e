package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write practice questions for the ISTQB/JSTQB Advanced Level Test Analyst certification exam.

Rules:
- Every question tests one learning objective from the requested syllabus chapter.
- Each question has between 2 and 6 options, typically 4. Exactly one option is correct.
- The "answer" field must repeat the correct option text exactly, character for character.
- Distractors must be plausible and reflect common misunderstandings, not obviously wrong filler.
- The explanation says why the answer is correct and, briefly, why the other options are not.
- Write in the same language as the example questions. Without examples, write in English.
- Do not repeat or lightly reword any question from the "already in the bank" list.`

// buildUserMessage renders the per-request prompt.
func buildUserMessage(in Input, want int, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Chapter: %s\n", in.Chapter)
	if in.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", want)

	if ex := in.Examples; len(ex) > 0 {
		if cfg.MaxExamples > 0 && len(ex) > cfg.MaxExamples {
			ex = ex[:cfg.MaxExamples]
		}
		b.WriteString("\nExample questions:\n")
		for i, q := range ex {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q.Text)
			for _, o := range q.Options {
				fmt.Fprintf(&b, "   - %s\n", o)
			}
			fmt.Fprintf(&b, "   Answer: %s\n", q.Answer)
		}
	}

	b.WriteString("\nAlready in the bank:\n")
	b.WriteString(buildDedup(in.Existing, cfg.MaxExisting))
	return b.String()
}
