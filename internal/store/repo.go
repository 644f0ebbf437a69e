package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID     string
	Pass          int
	Chapter       string
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	TimeMs        int64
	Surface       string // "tui" or "web"
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	AnswerEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// PassEventData captures the outcome of one finished pass.
type PassEventData struct {
	SessionID    string
	Pass         int
	Sampling     string
	Total        int
	Score        int
	Wrong        int
	DurationSecs int
	Surface      string
}

// PassEventRecord is a stored pass event.
type PassEventRecord struct {
	PassEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// Percent returns the pass score as a percentage.
func (r PassEventRecord) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score*100) / float64(r.Total)
}

// ChapterAccuracy aggregates answer events for one chapter.
type ChapterAccuracy struct {
	Chapter string
	Answers int
	Correct int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMUsageStats aggregates token usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the result log.
type EventRepo interface {
	// AppendAnswerEvent records a graded answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendPassEvent records a finished pass.
	AppendPassEvent(ctx context.Context, data PassEventData) error

	// QueryPassEvents returns finished passes, newest first.
	QueryPassEvents(ctx context.Context, opts QueryOpts) ([]PassEventRecord, error)

	// QueryAnswerEvents returns answers of one session, oldest first.
	QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error)

	// ChapterAccuracy aggregates all answers by chapter.
	ChapterAccuracy(ctx context.Context) ([]ChapterAccuracy, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates successful LLM usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
