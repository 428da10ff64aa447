package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pranav/snapquest/internal/challenge"
	"github.com/pranav/snapquest/internal/engine"
	"github.com/pranav/snapquest/internal/router"
	"github.com/pranav/snapquest/internal/screen"
	"github.com/pranav/snapquest/internal/ui/layout"
	"github.com/pranav/snapquest/internal/ui/theme"
)

// SummaryScreen displays the final tally after a completed run.
type SummaryScreen struct {
	result *engine.SessionResult
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result *engine.SessionResult) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Run Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Run complete!"))
	b.WriteString("\n\n")

	// What was played.
	modeLine := fmt.Sprintf("%s · %s", kindLabel(res.Kind, res.Category), res.Difficulty)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(modeLine))
	b.WriteString("\n\n")

	// Score card.
	scoreStr := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("◆ %d points", res.Score))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(scoreStr)))
	b.WriteString("\n\n")

	accuracy := 0.0
	if res.TotalCount > 0 {
		accuracy = float64(res.CorrectCount) / float64(res.TotalCount)
	}
	statsLine := fmt.Sprintf("Challenges: %d        Correct: %d        Accuracy: %.0f%%",
		res.TotalCount, res.CorrectCount, accuracy*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	duration := res.EndTime.Sub(res.StartTime)
	mins := int(duration.Minutes())
	secs := int(duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n")

	return b.String()
}

// kindLabel names the played mode for display.
func kindLabel(kind, cat string) string {
	if kind == string(challenge.KindQuickJudgment) {
		return "Quick Judgment"
	}
	if cat == "" {
		return "Collection"
	}
	return challenge.Category(cat).DisplayName() + " Collection"
}
