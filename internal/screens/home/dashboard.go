package home

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/store"
	"github.com/alta-drill/alta/internal/ui/components"
	"github.com/alta-drill/alta/internal/ui/theme"
)

const titleFull = `   _   _   _____ _
  /_\ | | |_   _/_\
 / _ \| |__ | |/ _ \
/_/ \_\____||_/_/ \_\`

const titleCompact = "A · L · T · A"

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Selected.Render(art) + "\n" + theme.Dim.Render("Advanced Level Test Analyst exam drill"))
}

// renderBankCard lists questions per chapter with the learner's accuracy
// so far, when the result log has any.
func renderBankCard(b *bank.Bank, acc map[string]store.ChapterAccuracy, cw int) string {
	var lines []string

	src := "in-memory bank"
	if b.Path() != "" {
		src = filepath.Base(b.Path())
	}
	lines = append(lines, theme.Body.Bold(true).Render(fmt.Sprintf("%d questions", b.Len()))+
		theme.Dim.Render("  from "+src))
	lines = append(lines, "")

	for _, cc := range b.Chapters() {
		row := fmt.Sprintf("Chapter %-4s %4d", cc.Chapter, cc.Count)
		a, ok := acc[cc.Chapter.String()]
		if ok && a.Answers > 0 {
			pct := float64(a.Correct) / float64(a.Answers)
			bar := components.NewProgressBar("", pct, true, 20).View()
			row = theme.Body.Render(row) + "  " + bar
		} else {
			row = theme.Body.Render(row) + "  " + theme.Hint.Render("not practiced")
		}
		lines = append(lines, row)
	}

	return theme.Card.Width(cw).Render(strings.Join(lines, "\n"))
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Render(m.View())
}

// renderFrame centers content vertically and horizontally.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
