package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/router"
	"github.com/alta-drill/alta/internal/screen"
	"github.com/alta-drill/alta/internal/ui/layout"
	"github.com/alta-drill/alta/internal/ui/theme"
)

// RetryMsg asks the quiz screen below to start a retry pass.
type RetryMsg struct{}

// RestartMsg asks the quiz screen below to draw a fresh quiz set.
type RestartMsg struct{}

// SummaryScreen displays the results of a finished pass.
type SummaryScreen struct {
	summary *quiz.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *quiz.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if s.summary != nil && s.summary.CanRetry {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry wrong"})
	}
	return append(hints,
		layout.KeyHint{Key: "N", Description: "New quiz"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
}

// Back returns to the home screen.
func (s *SummaryScreen) Back() tea.Cmd {
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "r", "R":
		if s.summary == nil || !s.summary.CanRetry {
			return s, nil
		}
		return s, tea.Sequence(router.Pop, func() tea.Msg { return RetryMsg{} })
	case "n", "N":
		return s, tea.Sequence(router.Pop, func() tea.Msg { return RestartMsg{} })
	case "enter", "esc":
		return s, s.Back()
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	title := "Quiz complete!"
	if sum.Pass > 1 {
		title = fmt.Sprintf("Retry pass %d complete!", sum.Pass-1)
	}
	b.WriteString(theme.Title.Width(width).Render(title))
	b.WriteString("\n\n")

	scoreStyle := theme.Correct
	if sum.Score < sum.Total {
		scoreStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}
	b.WriteString(layout.Center(scoreStyle.Render(
		fmt.Sprintf("Score: %d / %d (%.1f%%)", sum.Score, sum.Total, sum.Percent)), width))
	b.WriteString("\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	if len(sum.Wrong) == 0 {
		b.WriteString(layout.Center(theme.Correct.Render("No mistakes. Well done!"), width))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(layout.Center(theme.Dim.Render(fmt.Sprintf("Missed questions (%d)", len(sum.Wrong))), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(layout.Divider(cw), width))
	b.WriteString("\n")

	var list strings.Builder
	item := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)
	for i, q := range sum.Wrong {
		list.WriteString(item.Render(fmt.Sprintf("%d. [Ch %s] %s", i+1, q.Chapter, q.Text)))
		list.WriteString("\n")
		list.WriteString(theme.Correct.Render("   → " + q.Answer))
		list.WriteString("\n")
	}
	b.WriteString(layout.Center(list.String(), width))

	return b.String()
}
