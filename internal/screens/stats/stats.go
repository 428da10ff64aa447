package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pranav/snapquest/internal/challenge"
	"github.com/pranav/snapquest/internal/router"
	"github.com/pranav/snapquest/internal/screen"
	"github.com/pranav/snapquest/internal/store"
	"github.com/pranav/snapquest/internal/ui/layout"
	"github.com/pranav/snapquest/internal/ui/theme"
)

type statsLoadedMsg struct {
	Lifetime *store.LifetimeStats
	Sessions []store.SessionSummary
	Err      error
}

// StatsScreen displays lifetime totals and recent runs.
type StatsScreen struct {
	eventRepo store.EventRepo
	lifetime  *store.LifetimeStats
	sessions  []store.SessionSummary
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(eventRepo store.EventRepo) *StatsScreen {
	return &StatsScreen{eventRepo: eventRepo}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		lifetime, err := s.eventRepo.Lifetime(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		sessions, err := s.eventRepo.RecentSessions(ctx, 20)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Lifetime: lifetime, Sessions: sessions}
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.lifetime = msg.Lifetime
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading stats...")
	}
	if s.lifetime == nil || s.lifetime.SessionsCompleted == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No runs yet. Go hunt something!")
	}

	var b strings.Builder
	b.WriteString("\n")

	lt := s.lifetime
	totalsLine := fmt.Sprintf("◆ %d points   %d runs   %d/%d correct (%.0f%%)",
		lt.TotalScore, lt.SessionsCompleted, lt.TotalCorrect, lt.TotalSteps, lt.Accuracy()*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).
		Render(totalsLine))
	b.WriteString("\n")

	if lt.DuplicateRejects > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d duplicate submissions rejected", lt.DuplicateRejects)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 64)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent runs")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, sess := range s.sessions {
		dateStr := sess.EndedAt.Format("Jan 02, 2006")
		mins := sess.DurationSecs / 60
		secs := sess.DurationSecs % 60

		var accuracy float64
		if sess.Total > 0 {
			accuracy = float64(sess.Correct) / float64(sess.Total) * 100
		}

		line := fmt.Sprintf("  %s  %s %s  %d:%02d  %d pts  %.0f%%",
			dateStr, modeLabel(sess.Kind, sess.Category), sess.Difficulty,
			mins, secs, sess.Score, accuracy)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func modeLabel(kind, cat string) string {
	if kind == string(challenge.KindQuickJudgment) {
		return "judgment"
	}
	if cat == "" {
		return "collection"
	}
	return cat
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
