package components

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/pranav/snapquest/internal/ui/theme"
)

// CountdownBar renders the remaining share of a step deadline.
type CountdownBar struct {
	Total     time.Duration
	Remaining time.Duration
	Width     int
}

// View renders the bar with the remaining seconds on the right. The
// final quarter switches to the urgent style.
func (c CountdownBar) View() string {
	if c.Total <= 0 {
		return ""
	}

	frac := float64(c.Remaining) / float64(c.Total)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	secs := int(c.Remaining.Round(time.Second).Seconds())
	label := fmt.Sprintf(" %ds", secs)
	if c.Remaining >= time.Minute {
		label = fmt.Sprintf(" %d:%02d", secs/60, secs%60)
	}

	barWidth := c.Width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * frac)
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	fillStyle := theme.ProgressFilled
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if frac <= 0.25 {
		fillStyle = lipgloss.NewStyle().Background(theme.Error)
		labelStyle = theme.Incorrect
	}

	return fillStyle.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		labelStyle.Render(label)
}
