package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/results"
	"github.com/alta-drill/alta/internal/router"
	"github.com/alta-drill/alta/internal/screen"
	"github.com/alta-drill/alta/internal/screens/home"
	"github.com/alta-drill/alta/internal/screens/notice"
	"github.com/alta-drill/alta/internal/store"
	"github.com/alta-drill/alta/internal/ui/layout"
)

// Options holds the dependencies of the terminal UI.
type Options struct {
	// Bank is the loaded question bank. BankErr, when set, replaces the
	// whole UI with a blocking error.
	Bank    *bank.Bank
	BankErr error

	Config quiz.Config

	// EventRepo is the result log; nil disables recording and history.
	EventRepo store.EventRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates the root model with the home screen, or the error
// screen when the bank did not load.
func newAppModel(opts Options) AppModel {
	if opts.BankErr != nil {
		return AppModel{
			router: router.New(notice.New("Error", "Could not load the question bank",
				opts.BankErr.Error()+"\n\nCheck --questions or ALTA_QUESTIONS.")),
		}
	}

	var rec *results.Recorder
	if opts.EventRepo != nil {
		rec = results.NewRecorder(opts.EventRepo, results.SurfaceTUI)
	}
	return AppModel{
		router: router.New(home.New(opts.Bank, opts.Config, rec)),
		status: fmt.Sprintf("%d questions", opts.Bank.Len()),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.BackHandler); ok {
				return m, h.Back()
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
