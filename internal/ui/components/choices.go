package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alta-drill/alta/internal/ui/theme"
)

// ChoiceList renders the options of a multiple-choice question. Before
// grading it highlights the cursor; once Revealed it colors the answer
// green and a wrong pick red.
type ChoiceList struct {
	Options  []string
	Cursor   int
	Radio    bool // show (•)/( ) markers instead of a cursor arrow
	Revealed bool
	Answer   string
	Picked   string
	Width    int
}

// Label returns the key shown next to option i ("1", "2", ...).
func Label(i int) string {
	return fmt.Sprintf("%d", i+1)
}

// View renders one line per option.
func (c ChoiceList) View() string {
	wrap := lipgloss.NewStyle()
	if c.Width > 0 {
		wrap = wrap.Width(c.Width)
	}

	var b strings.Builder
	for i, opt := range c.Options {
		marker := "  "
		switch {
		case c.Radio && i == c.Cursor:
			marker = "(•) "
		case c.Radio:
			marker = "( ) "
		case i == c.Cursor && !c.Revealed:
			marker = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", marker, Label(i), opt)

		style := theme.Unselected
		switch {
		case c.Revealed && opt == c.Answer:
			style = theme.Correct
		case c.Revealed && opt == c.Picked:
			style = theme.Incorrect
		case c.Revealed:
			style = theme.Dim
		case i == c.Cursor:
			style = theme.Selected
		}
		b.WriteString(wrap.Inherit(style).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
