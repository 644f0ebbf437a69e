package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/llm"
)

type draft struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

func validDraft(text string) draft {
	return draft{
		Question:    text,
		Options:     []string{"Equivalence partitioning", "Pairwise testing", "Use case testing", "Error guessing"},
		Answer:      "Pairwise testing",
		Explanation: "Pairwise testing covers every pair of parameter values.",
	}
}

func draftsJSON(t *testing.T, ds ...draft) json.RawMessage {
	t.Helper()
	if ds == nil {
		ds = []draft{}
	}
	b, err := json.Marshal(map[string]any{"questions": ds})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestGenerate_AllValid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: draftsJSON(t, validDraft("Which technique reduces combinations?"), validDraft("Which technique is combinatorial?")),
	})
	gen := New(mock, DefaultConfig())

	res, err := gen.Generate(context.Background(), Input{Chapter: "3", Count: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Accepted) != 2 || len(res.Rejected) != 0 || res.Rounds != 1 {
		t.Fatalf("result = %d accepted, %d rejected, %d rounds", len(res.Accepted), len(res.Rejected), res.Rounds)
	}
	for _, q := range res.Accepted {
		if q.Chapter != "3" {
			t.Errorf("chapter = %q, want 3", q.Chapter)
		}
		if err := bank.Check(q); err != nil {
			t.Errorf("accepted draft fails bank.Check: %v", err)
		}
	}

	req := mock.Calls[0]
	if req.Schema != DraftSchema {
		t.Error("request should use DraftSchema")
	}
	if !strings.Contains(req.Messages[0].Content, "Number of questions: 2") {
		t.Errorf("prompt = %q", req.Messages[0].Content)
	}
}

func TestGenerate_RejectsAndRefills(t *testing.T) {
	bad := validDraft("Broken answer?")
	bad.Answer = "Not an option"
	dup := validDraft("Existing question?")

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: draftsJSON(t, validDraft("First new?"), bad, dup)},
		llm.MockResponse{Content: draftsJSON(t, validDraft("first  NEW?"), validDraft("Second new?"))},
	)
	gen := New(mock, DefaultConfig())

	res, err := gen.Generate(context.Background(), Input{
		Chapter:  "2",
		Count:    2,
		Existing: []string{"existing question?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Rounds != 2 {
		t.Errorf("rounds = %d, want 2", res.Rounds)
	}
	if len(res.Accepted) != 2 || res.Accepted[1].Text != "Second new?" {
		t.Fatalf("accepted = %+v", res.Accepted)
	}

	var validators []string
	for _, r := range res.Rejected {
		validators = append(validators, r.Err.Validator)
	}
	want := []string{"structural", "duplicate", "duplicate"}
	if fmt.Sprint(validators) != fmt.Sprint(want) {
		t.Errorf("rejections = %v, want %v", validators, want)
	}

	second := mock.Calls[1].Messages[0].Content
	if !strings.Contains(second, "Number of questions: 1") {
		t.Errorf("second round should ask for the shortfall:\n%s", second)
	}
	if !strings.Contains(second, "First new?") {
		t.Errorf("second round should list accepted drafts as existing:\n%s", second)
	}
}

func TestGenerate_StopsAtMaxRounds(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: draftsJSON(t)},
		llm.MockResponse{Content: draftsJSON(t)},
		llm.MockResponse{Content: draftsJSON(t)},
		llm.MockResponse{Content: draftsJSON(t)},
	)
	cfg := DefaultConfig()
	cfg.MaxRounds = 2
	gen := New(mock, cfg)

	res, err := gen.Generate(context.Background(), Input{Chapter: "1", Count: 3})
	if !errors.Is(err, ErrNoDrafts) {
		t.Fatalf("err = %v, want ErrNoDrafts", err)
	}
	if res.Rounds != 2 || mock.CallCount() != 2 {
		t.Errorf("rounds = %d, calls = %d; want 2", res.Rounds, mock.CallCount())
	}
}

func TestGenerate_PartialOnLaterFailure(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: draftsJSON(t, validDraft("Only one?"))},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	gen := New(mock, DefaultConfig())

	res, err := gen.Generate(context.Background(), Input{Chapter: "1", Count: 2})
	if err != nil {
		t.Fatalf("partial result should not error: %v", err)
	}
	if len(res.Accepted) != 1 {
		t.Errorf("accepted = %d, want 1", len(res.Accepted))
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Chapter: "1", Count: 1})
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want wrapped ErrRateLimit", err)
	}
}

func TestGenerate_BadInput(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig())
	if _, err := gen.Generate(context.Background(), Input{Chapter: "1"}); err == nil {
		t.Error("expected error for zero count")
	}
	if _, err := gen.Generate(context.Background(), Input{Count: 1}); err == nil {
		t.Error("expected error for missing chapter")
	}
}

func TestGenerate_SplitsLargeRequests(t *testing.T) {
	var ds []draft
	for i := 0; i < 3; i++ {
		ds = append(ds, validDraft(fmt.Sprintf("Question %d?", i)))
	}
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: draftsJSON(t, ds[:2]...)},
		llm.MockResponse{Content: draftsJSON(t, ds[2:]...)},
	)
	cfg := DefaultConfig()
	cfg.MaxPerRequest = 2
	gen := New(mock, cfg)

	res, err := gen.Generate(context.Background(), Input{Chapter: "4", Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Accepted) != 3 || res.Rounds != 2 {
		t.Errorf("accepted = %d, rounds = %d", len(res.Accepted), res.Rounds)
	}
}
