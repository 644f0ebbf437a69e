package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alta-drill/alta/internal/router"
	"github.com/alta-drill/alta/internal/screen"
	"github.com/alta-drill/alta/internal/store"
	"github.com/alta-drill/alta/internal/ui/layout"
	"github.com/alta-drill/alta/internal/ui/theme"
)

// Limit caps how many passes the screen lists.
const Limit = 50

type historyLoadedMsg struct {
	Passes []store.PassEventRecord
	Err    error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerEventRecord
	Err       error
}

// HistoryScreen lists finished passes; Enter expands the missed questions
// of the selected pass.
type HistoryScreen struct {
	eventRepo store.EventRepo
	passes    []store.PassEventRecord
	answers   map[string][]store.AnswerEventRecord // sessionID → answers
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.AnswerEventRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		passes, err := repo.QueryPassEvents(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Passes: passes, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Missed questions"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.passes = msg.Passes
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.passes)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= len(s.passes) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.passes[s.selected].SessionID
			if _, ok := s.answers[id]; s.expanded[s.selected] && !ok {
				return s, s.loadAnswers(id)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QueryAnswerEvents(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return theme.Subtitle.Width(width).Render("\n\n  Loading history...")
	}
	if len(s.passes) == 0 {
		return theme.Subtitle.Width(width).Italic(true).
			Render("\n\n  No finished quizzes yet. Start one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, p := range s.passes {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		kind := p.Sampling
		if p.Pass > 1 {
			kind = fmt.Sprintf("%s retry %d", p.Sampling, p.Pass-1)
		}
		line := fmt.Sprintf("%s%s  %-18s %3d/%-3d %5.1f%%  %d:%02d  %s",
			prefix, p.Timestamp.Format("Jan 02 15:04"), kind,
			p.Score, p.Total, p.Percent(), p.DurationSecs/60, p.DurationSecs%60, p.Surface)

		style := theme.Unselected
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString(layout.Center(style.Render(line), width))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderMissed(p, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderMissed(p store.PassEventRecord, width int) string {
	answers, ok := s.answers[p.SessionID]
	if !ok {
		return layout.Center(theme.Hint.Render("    Loading..."), width) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		if a.Pass != p.Pass || a.Correct {
			continue
		}
		line := fmt.Sprintf("    [Ch %s] %s → %s (you: %s)", a.Chapter, a.QuestionText, a.CorrectAnswer, a.LearnerAnswer)
		b.WriteString(layout.Center(theme.Incorrect.UnsetBold().Render(line), width))
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return layout.Center(theme.Hint.Render("    No missed questions"), width) + "\n"
	}
	return b.String()
}
