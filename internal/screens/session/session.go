package session

import (
	"context"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/pranav/snapquest/internal/challenge"
	"github.com/pranav/snapquest/internal/engine"
	"github.com/pranav/snapquest/internal/fingerprint"
	"github.com/pranav/snapquest/internal/router"
	"github.com/pranav/snapquest/internal/screen"
	"github.com/pranav/snapquest/internal/screens/summary"
	"github.com/pranav/snapquest/internal/store"
	"github.com/pranav/snapquest/internal/ui/components"
	"github.com/pranav/snapquest/internal/ui/layout"
)

// Deps carries the engine collaborators shared by all screens.
type Deps struct {
	Catalog challenge.Catalog
	Ledger  fingerprint.Ledger
	Events  store.EventRepo
	Logger  *zap.Logger
}

// SessionScreen runs one live session against the engine.
type SessionScreen struct {
	deps       Deps
	kind       challenge.TaskKind
	difficulty challenge.Difficulty
	category   challenge.Category

	sess *engine.Session

	grid  components.Grid
	input components.TextInput

	feedback    *engine.StepResult
	showingQuit bool
	timeUp      bool
	inputErr    string
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a session screen for the chosen kind, difficulty, and
// resolved category.
func New(deps Deps, kind challenge.TaskKind, d challenge.Difficulty, cat challenge.Category) *SessionScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &SessionScreen{
		deps:       deps,
		kind:       kind,
		difficulty: d,
		category:   cat,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.startSession()
}

func (s *SessionScreen) Title() string {
	return "Challenge"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon run"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.feedback != nil {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	if s.kind == challenge.KindCollection {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Upload"},
			{Key: "Ctrl+S", Description: "Skip"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	if s.difficulty == challenge.Hard {
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

// Score and Step feed the header while a session is live.
func (s *SessionScreen) Score() int {
	if s.sess == nil {
		return 0
	}
	return s.sess.Score()
}

func (s *SessionScreen) Step() (step, total int) {
	if s.sess == nil {
		return 0, 0
	}
	step = s.sess.Step()
	if step > s.sess.TotalSteps() {
		step = s.sess.TotalSteps()
	}
	return step, s.sess.TotalSteps()
}

// startSession creates the engine session off the UI loop and records
// the start event.
func (s *SessionScreen) startSession() tea.Cmd {
	return func() tea.Msg {
		sess, err := engine.Start(engine.Config{
			Catalog: s.deps.Catalog,
			Ledger:  s.deps.Ledger,
			Logger:  s.deps.Logger,
		}, s.kind, s.difficulty, s.category)
		if err != nil {
			return sessionStartedMsg{Err: err}
		}

		if s.deps.Events != nil {
			_ = s.deps.Events.AppendSessionStart(context.Background(), store.SessionStartData{
				SessionID:  sess.ID(),
				Kind:       string(s.kind),
				Difficulty: s.difficulty.String(),
				Category:   string(s.category),
			})
		}
		return sessionStartedMsg{Session: sess}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.sess = msg.Session
		s.prepareChallenge()
		return s, tickCmd()

	case tickMsg:
		return s.handleTick()

	case stepResolvedMsg:
		return s.handleResolved(msg.Result)

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.sess != nil && s.kind == challenge.KindCollection && s.feedback == nil && !s.showingQuit {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// prepareChallenge rebuilds the input components for the pending
// challenge.
func (s *SessionScreen) prepareChallenge() {
	s.timeUp = false
	s.inputErr = ""

	c := s.sess.Current()
	if c == nil {
		return
	}

	switch {
	case c.Kind == challenge.KindCollection:
		s.input = components.NewTextInput("Path to your file...", 200)

	case c.Difficulty == challenge.Easy:
		s.grid = components.NewGrid(c.Options, false)

	default:
		labels := make([]string, len(c.Candidates))
		for i, cand := range c.Candidates {
			labels[i] = cand.Label
		}
		s.grid = components.NewGrid(labels, c.Difficulty == challenge.Hard)
		if c.Difficulty == challenge.Hard {
			sess := s.sess
			s.grid.OnToggle = func(picks []int) {
				sess.SetSelection(picks)
			}
		}
	}
}

// handleTick refreshes the countdown and forces expiry once a timed
// judgment step hits zero. The engine resolves exactly once; losing
// the race to a just-landed submission surfaces as a stale error we
// ignore.
func (s *SessionScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.sess == nil || s.errMsg != "" {
		return s, nil
	}
	if s.sess.State() == engine.StateCompleted || s.sess.State() == engine.StateAborted {
		return s, nil
	}

	c := s.sess.Current()
	if c != nil && c.Deadline > 0 && s.feedback == nil && s.sess.Remaining() == 0 {
		res, err := s.sess.Expire()
		if err == nil && res != nil {
			return s, tea.Batch(
				func() tea.Msg { return stepResolvedMsg{Result: res} },
				tickCmd(),
			)
		}
		if err == nil && res == nil {
			// Collection deadline: visible timer only, step stays open.
			s.timeUp = true
		}
	}

	return s, tickCmd()
}

func (s *SessionScreen) handleResolved(res *engine.StepResult) (screen.Screen, tea.Cmd) {
	s.feedback = res
	s.persistStep(res)
	return s, nil
}

func (s *SessionScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	res := s.feedback
	s.feedback = nil

	if s.sess.State() == engine.StateCompleted {
		return s.finish()
	}

	if res != nil && res.Outcome == engine.OutcomeDuplicate {
		// Same step, new upload.
		s.input.Reset()
		s.inputErr = "That content was already submitted before. Try something new."
		return s, nil
	}

	s.prepareChallenge()
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.sess == nil {
		return s, nil
	}

	if s.showingQuit {
		switch key {
		case "y", "Y":
			_ = s.sess.Abort()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuit = false
		}
		return s, nil
	}

	if s.feedback != nil {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	switch key {
	case "esc":
		s.showingQuit = true
		return s, nil
	case "enter":
		return s.submit(false)
	case "ctrl+s":
		if s.kind == challenge.KindCollection {
			return s.submit(true)
		}
	}

	if s.kind == challenge.KindCollection {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.grid, cmd = s.grid.Update(msg)
	return s, cmd
}

// submit builds the engine answer from the active component and hands
// it over. Stale results (the deadline won the race) are dropped; the
// tick path already delivered the resolution.
func (s *SessionScreen) submit(skip bool) (screen.Screen, tea.Cmd) {
	c := s.sess.Current()
	if c == nil {
		return s, nil
	}

	ans := engine.Answer{Step: s.sess.Step(), Skip: skip}

	if !skip {
		switch {
		case s.kind == challenge.KindCollection:
			path := s.input.Value()
			if path == "" {
				return s, nil
			}
			content, err := os.ReadFile(path)
			if err != nil {
				s.inputErr = "Cannot read file: " + err.Error()
				s.input.Submit(false)
				return s, nil
			}
			ans.Content = content

		case c.Difficulty == challenge.Hard:
			ans.Picks = s.grid.Picks()
			if len(ans.Picks) == 0 {
				return s, nil
			}

		default:
			ans.Pick = s.grid.Cursor
		}
	}

	res, err := s.sess.Submit(ans)
	if err != nil {
		if err == engine.ErrStaleSubmission {
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}

	return s, func() tea.Msg { return stepResolvedMsg{Result: res} }
}

// persistStep appends the step event; duplicates are recorded too so
// the stats screen can count rejections.
func (s *SessionScreen) persistStep(res *engine.StepResult) {
	if s.deps.Events == nil {
		return
	}
	_ = s.deps.Events.AppendStep(context.Background(), store.StepEventData{
		SessionID: s.sess.ID(),
		Step:      res.StepIndex,
		Outcome:   string(res.Outcome),
		Points:    res.Points,
		Title:     res.ChallengeTitle,
	})
}

// finish records the end event and swaps in the summary screen.
func (s *SessionScreen) finish() (screen.Screen, tea.Cmd) {
	result, err := s.sess.Result()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	if s.deps.Events != nil {
		_ = s.deps.Events.AppendSessionEnd(context.Background(), store.SessionEndData{
			SessionID:    result.SessionID,
			Score:        result.Score,
			Correct:      result.CorrectCount,
			Total:        result.TotalCount,
			DurationSecs: int(result.EndTime.Sub(result.StartTime).Seconds()),
		})
	}

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
