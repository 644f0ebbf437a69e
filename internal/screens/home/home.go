package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/alta-drill/alta/internal/bank"
	qz "github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/results"
	"github.com/alta-drill/alta/internal/router"
	"github.com/alta-drill/alta/internal/screen"
	"github.com/alta-drill/alta/internal/screens/chapter"
	"github.com/alta-drill/alta/internal/screens/history"
	quizscreen "github.com/alta-drill/alta/internal/screens/quiz"
	"github.com/alta-drill/alta/internal/store"
	"github.com/alta-drill/alta/internal/ui/components"
	"github.com/alta-drill/alta/internal/ui/layout"
)

// Menu labels.
const (
	LabelBalanced = "Balanced quiz"
	LabelFull     = "Full quiz"
	LabelHistory  = "History"
	LabelExit     = "Exit"
)

type accuracyLoadedMsg struct {
	Rows []store.ChapterAccuracy
	Err  error
}

// HomeScreen shows the bank overview and the main menu.
type HomeScreen struct {
	bank     *bank.Bank
	recorder *results.Recorder
	menu     components.Menu
	accuracy map[string]store.ChapterAccuracy
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. rec may be nil, which hides the history.
func New(b *bank.Bank, cfg qz.Config, rec *results.Recorder) *HomeScreen {
	full := cfg
	full.Sampling = qz.SamplingFull

	items := []components.MenuItem{
		{Label: LabelBalanced, Action: func() tea.Cmd {
			return router.Push(chapter.New(b, cfg, rec))
		}},
		{Label: LabelFull, Action: func() tea.Cmd {
			return router.Push(quizscreen.New(b, full, rec))
		}},
		{Label: LabelHistory, Disabled: !rec.Enabled(), Action: func() tea.Cmd {
			return router.Push(history.New(rec.Repo()))
		}},
		{Label: LabelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		bank:     b,
		recorder: rec,
		menu:     components.NewMenu(items),
		accuracy: make(map[string]store.ChapterAccuracy),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if !h.recorder.Enabled() {
		return nil
	}
	repo := h.recorder.Repo()
	return func() tea.Msg {
		rows, err := repo.ChapterAccuracy(context.Background())
		return accuracyLoadedMsg{Rows: rows, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(accuracyLoadedMsg); ok {
		// Accuracy is decoration; a failed query leaves the column empty.
		if msg.Err == nil {
			for _, r := range msg.Rows {
				h.accuracy[r.Chapter] = r
			}
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(layout.ContentWidth(width), 60)

	sections := []string{
		renderTitle(cw, layout.IsCompactWidth(width)),
		renderBankCard(h.bank, h.accuracy, cw),
		renderMenu(h.menu, cw),
	}
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
