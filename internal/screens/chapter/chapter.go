package chapter

import (
	"fmt"
	"strings"
	"unicode"

	tea "charm.land/bubbletea/v2"

	"github.com/alta-drill/alta/internal/bank"
	qz "github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/results"
	"github.com/alta-drill/alta/internal/router"
	"github.com/alta-drill/alta/internal/screen"
	quizscreen "github.com/alta-drill/alta/internal/screens/quiz"
	"github.com/alta-drill/alta/internal/ui/components"
	"github.com/alta-drill/alta/internal/ui/layout"
	"github.com/alta-drill/alta/internal/ui/theme"
)

// ChapterScreen asks for the focus chapter of a balanced quiz and then
// replaces itself with the quiz.
type ChapterScreen struct {
	bank     *bank.Bank
	config   qz.Config
	recorder *results.Recorder
	input    components.TextInput
	errMsg   string
}

var _ screen.Screen = (*ChapterScreen)(nil)
var _ screen.KeyHintProvider = (*ChapterScreen)(nil)

// New creates a ChapterScreen. An empty answer keeps cfg.FocusChapter.
func New(b *bank.Bank, cfg qz.Config, rec *results.Recorder) *ChapterScreen {
	in := components.NewTextInput(fmt.Sprintf("%s (default)", cfg.FocusChapter), 8)
	in.Accept = func(r rune) bool { return !unicode.IsSpace(r) }
	return &ChapterScreen{bank: b, config: cfg, recorder: rec, input: in}
}

func (c *ChapterScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChapterScreen) Title() string {
	return "Balanced quiz"
}

func (c *ChapterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ChapterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return c.submit()
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChapterScreen) submit() (screen.Screen, tea.Cmd) {
	ch := bank.Chapter(strings.TrimSpace(c.input.Value()))
	if ch == "" {
		ch = c.config.FocusChapter
	}
	if c.bank.CountChapter(ch) == 0 {
		c.errMsg = fmt.Sprintf("Chapter %s has no questions.", ch)
		return c, nil
	}

	cfg := c.config
	cfg.Sampling = qz.SamplingBalanced
	cfg.FocusChapter = ch
	return c, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: quizscreen.New(c.bank, cfg, c.recorder)}
	}
}

func (c *ChapterScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(cw).Render("Which chapter do you want to focus on?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(fmt.Sprintf(
		"Up to %d questions come from the focus chapter and up to %d from the others.",
		c.config.FocusCap, c.config.OtherCap)))
	b.WriteString("\n\n")

	var chapters []string
	for _, cc := range c.bank.Chapters() {
		chapters = append(chapters, fmt.Sprintf("%s (%d)", cc.Chapter, cc.Count))
	}
	b.WriteString(theme.Dim.Width(cw).Render("Chapters: " + strings.Join(chapters, ", ")))
	b.WriteString("\n\n")

	b.WriteString("Chapter: " + c.input.View())
	if c.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(c.errMsg))
	}

	return layout.Center(b.String(), width)
}
