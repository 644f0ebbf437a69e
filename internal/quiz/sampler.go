package quiz

import (
	"math/rand/v2"

	"github.com/alta-drill/alta/internal/bank"
)

// Sample draws a quiz set from questions according to cfg.
// The input slice is not modified.
func Sample(questions []bank.Question, cfg Config, rng *rand.Rand) []bank.Question {
	if cfg.Sampling == SamplingBalanced {
		return sampleBalanced(questions, cfg, rng)
	}

	out := make([]bank.Question, len(questions))
	copy(out, questions)
	if cfg.Shuffle {
		shuffle(out, rng)
	}
	return out
}

// sampleBalanced takes up to FocusCap questions from the focus chapter and up
// to OtherCap from the remaining chapters, then shuffles the union.
func sampleBalanced(questions []bank.Question, cfg Config, rng *rand.Rand) []bank.Question {
	var focus, other []bank.Question
	for _, q := range questions {
		if q.Chapter == cfg.FocusChapter {
			focus = append(focus, q)
		} else {
			other = append(other, q)
		}
	}

	out := make([]bank.Question, 0, min(cfg.FocusCap, len(focus))+min(cfg.OtherCap, len(other)))
	out = append(out, pick(focus, cfg.FocusCap, rng)...)
	out = append(out, pick(other, cfg.OtherCap, rng)...)
	shuffle(out, rng)
	return out
}

// pick returns up to n distinct random elements of qs.
func pick(qs []bank.Question, n int, rng *rand.Rand) []bank.Question {
	if n > len(qs) {
		n = len(qs)
	}
	if n <= 0 {
		return nil
	}
	idx := rng.Perm(len(qs))[:n]
	out := make([]bank.Question, n)
	for i, j := range idx {
		out[i] = qs[j]
	}
	return out
}

func shuffle(qs []bank.Question, rng *rand.Rand) {
	rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
}
