package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/ui/components"
	"github.com/alta-drill/alta/internal/ui/layout"
	"github.com/alta-drill/alta/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	if s.session.GameOver() {
		return theme.Subtitle.Width(width).Render("\n\n\nPass finished. Press Enter for your results.")
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	sess := s.session
	q, ok := sess.Current()
	if !ok {
		return ""
	}
	cw := layout.ContentWidth(width)

	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Chapter %s | Question %d / %d", q.Chapter, sess.Index()+1, sess.Len()))
	score := theme.Dim.Render(fmt.Sprintf("Score %d", sess.Score()))
	gap := cw - lipgloss.Width(info) - lipgloss.Width(score)
	header := info
	if gap > 0 {
		header += strings.Repeat(" ", gap) + score
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", sess.Progress(), true, cw).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n\n")

	list := components.ChoiceList{
		Options: q.Options,
		Cursor:  sess.Selected(),
		Radio:   sess.Config().Flow == qz.FlowTwoStep,
		Width:   cw,
	}
	res, answered := sess.LastResult()
	if answered {
		list.Revealed = true
		list.Answer = res.Answer
		list.Picked = res.Selected
	}
	b.WriteString(list.View())
	b.WriteString("\n")

	if answered {
		if res.Correct {
			b.WriteString(theme.Correct.Render("✓ " + res.Message))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ " + res.Message))
		}
		b.WriteString("\n\n")
		if q.Explanation != "" {
			b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(q.Explanation))
			b.WriteString("\n\n")
		}
		next := "Press Enter for the next question"
		if sess.Index()+1 == sess.Len() {
			next = "Press Enter to see your results"
		}
		b.WriteString(theme.Hint.Render(next))
	} else if sess.Config().Flow == qz.FlowTwoStep {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Select with 1-%d or arrows, Enter to check", len(q.Options))))
	} else {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Answer with 1-%d, or arrows + Enter", len(q.Options))))
	}

	if s.warn != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Warn.Render(s.warn))
	}

	return layout.Center(b.String(), width)
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Body.Bold(true).Width(width).Align(lipgloss.Center).Render("End quiz early?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Answers so far are already recorded."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Success).
		Render("[Y] Yes, end quiz"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Primary).
		Render("[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
