package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alta-drill/alta/internal/screen"
	"github.com/alta-drill/alta/internal/ui/layout"
	"github.com/alta-drill/alta/internal/ui/theme"
)

// NoticeScreen blocks the app with a single message. Any key quits.
type NoticeScreen struct {
	title   string
	heading string
	body    string
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// New creates a NoticeScreen.
func New(title, heading, body string) *NoticeScreen {
	return &NoticeScreen{title: title, heading: heading, body: body}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return n, tea.Quit
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	box := theme.AlertCard.Width(cw).Render(
		theme.Incorrect.Render(n.heading) + "\n\n" +
			theme.Body.Width(cw-6).Render(n.body) + "\n\n" +
			theme.Hint.Render("Press any key to quit."))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

func (n *NoticeScreen) Title() string {
	return n.title
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "any key", Description: "Quit"}}
}
