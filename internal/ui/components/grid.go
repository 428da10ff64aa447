package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pranav/snapquest/internal/ui/theme"
)

// Grid is the challenge item selector. In single mode the cursor pick
// is the answer; in multi mode space toggles items and the toggled set
// is the answer.
type Grid struct {
	Labels  []string
	Multi   bool
	Cursor  int
	Toggled map[int]bool

	// OnToggle fires after every multi-mode toggle so the caller can
	// mirror the in-progress selection (deadline auto-evaluation).
	OnToggle func(picks []int)
}

// NewGrid creates a grid over the given item labels.
func NewGrid(labels []string, multi bool) Grid {
	return Grid{
		Labels:  labels,
		Multi:   multi,
		Toggled: make(map[int]bool),
	}
}

// Update handles keyboard navigation and toggling.
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if g.Cursor > 0 {
			g.Cursor--
		}
	case "down", "j":
		if g.Cursor < len(g.Labels)-1 {
			g.Cursor++
		}
	case "space", " ":
		if g.Multi {
			g.Toggled[g.Cursor] = !g.Toggled[g.Cursor]
			if g.OnToggle != nil {
				g.OnToggle(g.Picks())
			}
		}
	}

	return g, nil
}

// Picks returns the toggled indexes in ascending order.
func (g Grid) Picks() []int {
	var picks []int
	for i := range g.Labels {
		if g.Toggled[i] {
			picks = append(picks, i)
		}
	}
	return picks
}

// View renders the grid.
func (g Grid) View() string {
	var s string
	for i, label := range g.Labels {
		prefix := "  "
		if i == g.Cursor {
			prefix = "▸ "
		}

		marker := ""
		if g.Multi {
			if g.Toggled[i] {
				marker = "[x] "
			} else {
				marker = "[ ] "
			}
		}

		line := fmt.Sprintf("%s%s%s", prefix, marker, label)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == g.Cursor {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		} else if g.Toggled[i] {
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		s += style.Render(line) + "\n"
	}
	return s
}
