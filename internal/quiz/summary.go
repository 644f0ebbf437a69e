package quiz

import (
	"time"

	"github.com/alta-drill/alta/internal/bank"
)

// Summary holds what the finished screen displays.
type Summary struct {
	SessionID string
	Pass      int
	Total     int
	Score     int
	Percent   float64
	Wrong     []bank.Question
	Duration  time.Duration
	CanRetry  bool
}

// Summary snapshots the results of the current pass.
func (s *Session) Summary() *Summary {
	return &Summary{
		SessionID: s.ID(),
		Pass:      s.Pass(),
		Total:     s.Len(),
		Score:     s.Score(),
		Percent:   s.Percent(),
		Wrong:     s.Wrong(),
		Duration:  s.Elapsed(),
		CanRetry:  s.CanRetry(),
	}
}
