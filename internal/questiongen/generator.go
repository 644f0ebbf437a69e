package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/llm"
)

// Purpose labels drafting requests in the LLM request log.
const Purpose = "question-gen"

// ErrNoDrafts is returned when a run ends without a single accepted draft.
var ErrNoDrafts = errors.New("no valid questions were generated")

// Generator drafts exam questions with an LLM.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// Generate asks for in.Count questions, validating each draft. Rejected
// drafts are collected, and further rounds ask for the shortfall until
// Count is met or MaxRounds is reached. A round whose rejections are all
// non-retryable ends the run. Accepted drafts never duplicate each other.
func (g *Generator) Generate(ctx context.Context, in Input) (*Result, error) {
	if in.Count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", in.Count)
	}
	if in.Chapter == "" {
		return nil, fmt.Errorf("chapter is required")
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	res := &Result{}
	seen := append([]string(nil), in.Existing...)
	rounds := max(g.config.MaxRounds, 1)

	for res.Rounds < rounds && len(res.Accepted) < in.Count {
		res.Rounds++

		want := in.Count - len(res.Accepted)
		if g.config.MaxPerRequest > 0 {
			want = min(want, g.config.MaxPerRequest)
		}

		round := in
		round.Existing = seen
		drafts, err := g.request(ctx, round, want)
		if err != nil {
			if len(res.Accepted) > 0 {
				return res, nil
			}
			return nil, err
		}

		retryable, rejected := false, 0
		for _, q := range drafts {
			if len(res.Accepted) == in.Count {
				break
			}
			if verr := g.validate(&q, round); verr != nil {
				res.Rejected = append(res.Rejected, Rejection{Question: q, Err: verr})
				retryable = retryable || verr.Retryable
				rejected++
				continue
			}
			res.Accepted = append(res.Accepted, q)
			seen = append(seen, q.Text)
			round.Existing = seen
		}

		if rejected > 0 && !retryable {
			break
		}
	}

	if len(res.Accepted) == 0 {
		return res, ErrNoDrafts
	}
	return res, nil
}

func (g *Generator) request(ctx context.Context, in Input, want int) ([]bank.Question, error) {
	req := llm.UserPrompt(systemPrompt, buildUserMessage(in, want, g.config))
	req.Schema = DraftSchema
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out draftOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	qs := make([]bank.Question, len(out.Questions))
	for i, d := range out.Questions {
		qs[i] = bank.Question{
			Chapter:     in.Chapter,
			Text:        d.Question,
			Options:     d.Options,
			Answer:      d.Answer,
			Explanation: d.Explanation,
		}
	}
	return qs, nil
}

func (g *Generator) validate(q *bank.Question, in Input) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, in); verr != nil {
			return verr
		}
	}
	return nil
}
