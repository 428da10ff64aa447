package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/pranav/snapquest/internal/challenge"
	"github.com/pranav/snapquest/internal/fingerprint"
	"github.com/pranav/snapquest/internal/router"
	"github.com/pranav/snapquest/internal/screen"
	"github.com/pranav/snapquest/internal/screens/home"
	sessionscreen "github.com/pranav/snapquest/internal/screens/session"
	"github.com/pranav/snapquest/internal/store"
	"github.com/pranav/snapquest/internal/ui/layout"
)

// Options carries the wired collaborators into the TUI.
type Options struct {
	Catalog challenge.Catalog
	Ledger  fingerprint.Ledger
	Events  store.EventRepo
	Logger  *zap.Logger
}

// scoreProvider lets the active screen feed the header score display.
type scoreProvider interface {
	Score() int
}

// stepProvider lets the active screen feed the header step counter.
type stepProvider interface {
	Step() (step, total int)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	deps := sessionscreen.Deps{
		Catalog: opts.Catalog,
		Ledger:  opts.Ledger,
		Events:  opts.Events,
		Logger:  opts.Logger,
	}
	return AppModel{
		router: router.New(home.New(deps)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()

	title := ""
	if active != nil {
		title = active.Title()
	}

	var score, step, total int
	if sp, ok := active.(scoreProvider); ok {
		score = sp.Score()
	}
	if stp, ok := active.(stepProvider); ok {
		step, total = stp.Step()
	}

	header := layout.RenderHeader(title, score, step, total, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
