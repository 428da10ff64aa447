package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pranav/snapquest/internal/challenge"
	"github.com/pranav/snapquest/internal/router"
	"github.com/pranav/snapquest/internal/screen"
	sessionscreen "github.com/pranav/snapquest/internal/screens/session"
	"github.com/pranav/snapquest/internal/screens/stats"
	"github.com/pranav/snapquest/internal/ui/components"
	"github.com/pranav/snapquest/internal/ui/layout"
	"github.com/pranav/snapquest/internal/ui/theme"
)

// stage tracks how far into the mode picker the player is.
type stage int

const (
	stageMode stage = iota
	stageDifficulty
	stageCategory
)

// modeChosenMsg carries the picked mode into the next stage.
type modeChosenMsg struct {
	kind     challenge.TaskKind
	category challenge.Category
	needsCat bool
}

type difficultyChosenMsg struct {
	difficulty challenge.Difficulty
}

type categoryChosenMsg struct {
	category challenge.Category
}

// HomeScreen is the mode picker and entry point of the app.
type HomeScreen struct {
	deps sessionscreen.Deps

	stage      stage
	menu       components.Menu
	kind       challenge.TaskKind
	category   challenge.Category
	needsCat   bool
	difficulty challenge.Difficulty

	lifetimePoints int
	lifetimeRuns   int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps sessionscreen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	if deps.Events != nil {
		if lt, err := deps.Events.Lifetime(context.Background()); err == nil && lt != nil {
			h.lifetimePoints = lt.TotalScore
			h.lifetimeRuns = lt.SessionsCompleted
		}
	}

	h.menu = components.NewMenu(h.modeItems())
	return h
}

func (h *HomeScreen) modeItems() []components.MenuItem {
	choose := func(kind challenge.TaskKind, cat challenge.Category, needsCat bool) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return modeChosenMsg{kind: kind, category: cat, needsCat: needsCat}
			}
		}
	}

	return []components.MenuItem{
		{Label: "QUICK JUDGMENT", Action: choose(challenge.KindQuickJudgment, challenge.CategoryNone, false)},
		{Label: "PHOTO COLLECTION", Action: choose(challenge.KindCollection, challenge.CategoryNone, true)},
		{Label: "AUDIO COLLECTION", Action: choose(challenge.KindCollection, challenge.CategoryAudio, false)},
		{Label: "VIDEO COLLECTION", Action: choose(challenge.KindCollection, challenge.CategoryVideo, false)},
		{Label: "STATS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(h.deps.Events)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) difficultyItems() []components.MenuItem {
	choose := func(d challenge.Difficulty) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return difficultyChosenMsg{difficulty: d} }
		}
	}

	items := make([]components.MenuItem, 0, 3)
	for _, d := range []challenge.Difficulty{challenge.Easy, challenge.Medium, challenge.Hard} {
		label := fmt.Sprintf("%-8s +%d pts per hit", strings.ToUpper(d.String()), d.Points())
		if deadline := challenge.Deadline(h.kind, d); deadline > 0 {
			label += fmt.Sprintf("  (%s limit)", deadline)
		}
		items = append(items, components.MenuItem{Label: label, Action: choose(d)})
	}
	return items
}

func (h *HomeScreen) categoryItems() []components.MenuItem {
	choose := func(cat challenge.Category) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return categoryChosenMsg{category: cat} }
		}
	}

	cats := challenge.PhotoCategories()
	items := make([]components.MenuItem, 0, len(cats))
	for _, cat := range cats {
		items = append(items, components.MenuItem{Label: strings.ToUpper(cat.DisplayName()), Action: choose(cat)})
	}
	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if h.stage != stageMode {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return hints
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case modeChosenMsg:
		h.kind = msg.kind
		h.category = msg.category
		h.needsCat = msg.needsCat
		h.stage = stageDifficulty
		h.menu = components.NewMenu(h.difficultyItems())
		return h, nil

	case difficultyChosenMsg:
		h.difficulty = msg.difficulty
		if h.needsCat {
			h.stage = stageCategory
			h.menu = components.NewMenu(h.categoryItems())
			return h, nil
		}
		return h.launch(h.category)

	case categoryChosenMsg:
		return h.launch(msg.category)

	case tea.KeyMsg:
		if msg.String() == "esc" && h.stage != stageMode {
			h.reset()
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// launch pushes a session screen for the fully resolved mode and
// resets the picker so it is back at the top after the run.
func (h *HomeScreen) launch(cat challenge.Category) (screen.Screen, tea.Cmd) {
	deps, kind, d := h.deps, h.kind, h.difficulty
	h.reset()
	return h, func() tea.Msg {
		return router.PushScreenMsg{Screen: sessionscreen.New(deps, kind, d, cat)}
	}
}

func (h *HomeScreen) reset() {
	h.stage = stageMode
	h.menu = components.NewMenu(h.modeItems())
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderLogo()))
	b.WriteString("\n\n")

	if h.lifetimeRuns > 0 {
		statsLine := fmt.Sprintf("◆ %d lifetime points · %d runs", h.lifetimePoints, h.lifetimeRuns)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(statsLine))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render(h.prompt()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) prompt() string {
	switch h.stage {
	case stageDifficulty:
		return "Pick a difficulty"
	case stageCategory:
		return "Pick a category"
	default:
		return "What are we hunting today?"
	}
}
