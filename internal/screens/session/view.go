package session

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/pranav/snapquest/internal/challenge"
	"github.com/pranav/snapquest/internal/engine"
	"github.com/pranav/snapquest/internal/ui/components"
	"github.com/pranav/snapquest/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.sess == nil {
		return renderLoading(width, height)
	}
	if s.showingQuit {
		return renderQuitConfirm(width, height)
	}
	if s.feedback != nil {
		return s.renderFeedback(width, height)
	}
	return s.renderChallengeView(width, height)
}

// renderChallengeView renders the active challenge display.
func (s *SessionScreen) renderChallengeView(width, height int) string {
	c := s.sess.Current()
	if c == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Drawing the next challenge...")
	}

	var b strings.Builder

	// Info line: difficulty and points on the left, countdown on the right.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s  +%d pts", c.Difficulty.String(), c.Difficulty.Points()))

	infoLine := infoLeft
	if c.Deadline > 0 {
		bar := components.CountdownBar{
			Total:     c.Deadline,
			Remaining: s.sess.Remaining(),
			Width:     min(width/2, 36),
		}.View()
		rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(bar) - 4
		if rightPad > 0 {
			infoLine += strings.Repeat(" ", rightPad) + bar
		}
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	// Challenge title (centered).
	titleStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(titleStyle.Render(c.Title))
	b.WriteString("\n\n")

	if c.Kind == challenge.KindCollection {
		b.WriteString(s.renderUpload(width, c))
	} else {
		b.WriteString(s.renderPicker(width, c))
	}

	return b.String()
}

// renderPicker renders the judgment options or candidate grid.
func (s *SessionScreen) renderPicker(width int, c *challenge.Challenge) string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.grid.View()))

	hint := "Pick one and press Enter"
	if c.Difficulty == challenge.Hard {
		hint = "Toggle with Space, submit with Enter"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n" + hint))

	return b.String()
}

// renderUpload renders the collection prompt with the path input.
func (s *SessionScreen) renderUpload(width int, c *challenge.Challenge) string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, categoryArt(c.Category)))
	b.WriteString("\n\n")

	inputLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("File: " + s.input.View())
	b.WriteString(inputLine)

	if s.timeUp {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Bold(true).
			Render("Time's up — you can still finish this one."))
	}

	if s.inputErr != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.inputErr))
	}

	return b.String()
}

// renderFeedback renders the step outcome overlay.
func (s *SessionScreen) renderFeedback(width, height int) string {
	res := s.feedback

	var b strings.Builder
	b.WriteString("\n\n")

	head, style := feedbackHeadline(res)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(style).
		Bold(true).
		Render(head))

	if res.Points > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("+%d points", res.Points)))
	}

	if res.Outcome == engine.OutcomeDuplicate {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("You've submitted this exact content before."))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

func feedbackHeadline(res *engine.StepResult) (string, color.Color) {
	switch res.Outcome {
	case engine.OutcomeCorrect:
		return "Correct!", theme.Success
	case engine.OutcomeIncorrect:
		return "Not quite", theme.Error
	case engine.OutcomeSkipped:
		return "Skipped", theme.TextDim
	case engine.OutcomeDuplicate:
		return "Already seen", theme.Warning
	case engine.OutcomeExpired:
		return "Out of time", theme.Error
	}
	return string(res.Outcome), theme.Text
}

// renderQuitConfirm renders the abandon confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Abandon this run?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("An abandoned run doesn't count towards your stats."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, abandon"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Setting up your run...")
}

func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
