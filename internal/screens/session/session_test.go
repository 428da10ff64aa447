package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/pranav/snapquest/internal/challenge"
	"github.com/pranav/snapquest/internal/engine"
	"github.com/pranav/snapquest/internal/fingerprint"
	"github.com/pranav/snapquest/internal/screen"
	"github.com/pranav/snapquest/internal/store"
)

// fakeCatalog serves one fixed pool regardless of category.
type fakeCatalog struct {
	pool []string
}

func (f *fakeCatalog) Templates(kind challenge.TaskKind, d challenge.Difficulty, cat challenge.Category) []string {
	return f.pool
}

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	starts []store.SessionStartData
	ends   []store.SessionEndData
	steps  []store.StepEventData
}

func (m *mockEventRepo) AppendSessionStart(_ context.Context, data store.SessionStartData) error {
	m.starts = append(m.starts, data)
	return nil
}
func (m *mockEventRepo) AppendSessionEnd(_ context.Context, data store.SessionEndData) error {
	m.ends = append(m.ends, data)
	return nil
}
func (m *mockEventRepo) AppendStep(_ context.Context, data store.StepEventData) error {
	m.steps = append(m.steps, data)
	return nil
}
func (m *mockEventRepo) RecentSessions(_ context.Context, _ int) ([]store.SessionSummary, error) {
	return nil, nil
}
func (m *mockEventRepo) Lifetime(_ context.Context) (*store.LifetimeStats, error) {
	return &store.LifetimeStats{}, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testDeps() (Deps, *mockEventRepo) {
	events := &mockEventRepo{}
	deps := Deps{
		Catalog: &fakeCatalog{pool: []string{
			"dog", "cat", "bird", "fish", "rabbit",
			"apple", "banana", "car", "tree", "house",
			"bench", "cup",
		}},
		Ledger: fingerprint.NewMemoryLedger(),
		Events: events,
	}
	return deps, events
}

// activeScreen builds a screen with a live engine session attached, the
// state the startSession command normally produces.
func activeScreen(t *testing.T, kind challenge.TaskKind, d challenge.Difficulty, cat challenge.Category) (*SessionScreen, *mockEventRepo) {
	t.Helper()
	deps, events := testDeps()
	s := New(deps, kind, d, cat)

	sess, err := engine.Start(engine.Config{
		Catalog: deps.Catalog,
		Ledger:  deps.Ledger,
	}, kind, d, cat)
	if err != nil {
		t.Fatalf("engine.Start: %v", err)
	}

	scr, _ := s.Update(sessionStartedMsg{Session: sess})
	return scr.(*SessionScreen), events
}

func TestSessionScreen_Title(t *testing.T) {
	deps, _ := testDeps()
	s := New(deps, challenge.KindQuickJudgment, challenge.Easy, challenge.CategoryNone)
	if s.Title() != "Challenge" {
		t.Errorf("Title = %q, want %q", s.Title(), "Challenge")
	}
}

func TestSessionScreen_View_Loading(t *testing.T) {
	deps, _ := testDeps()
	s := New(deps, challenge.KindQuickJudgment, challenge.Easy, challenge.CategoryNone)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view for loading state")
	}
}

func TestSessionScreen_View_Error(t *testing.T) {
	deps, _ := testDeps()
	s := New(deps, challenge.KindQuickJudgment, challenge.Easy, challenge.CategoryNone)
	s.errMsg = "test error"
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view for error state")
	}
}

func TestSessionScreen_View_Active(t *testing.T) {
	s, _ := activeScreen(t, challenge.KindQuickJudgment, challenge.Easy, challenge.CategoryNone)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view for active challenge")
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	s, _ := activeScreen(t, challenge.KindQuickJudgment, challenge.Easy, challenge.CategoryNone)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ss := scr.(*SessionScreen)
	if !ss.showingQuit {
		t.Fatal("expected quit confirmation dialog")
	}

	scr, _ = ss.Update(keyPress('n'))
	ss = scr.(*SessionScreen)
	if ss.showingQuit {
		t.Error("expected quit confirmation to be dismissed")
	}
}

func TestSessionScreen_QuitConfirm_Yes(t *testing.T) {
	s, _ := activeScreen(t, challenge.KindQuickJudgment, challenge.Easy, challenge.CategoryNone)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ss := scr.(*SessionScreen)
	_, cmd := ss.Update(keyPress('y'))

	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if ss.sess.State() != engine.StateAborted {
		t.Errorf("State = %v, want Aborted", ss.sess.State())
	}
}

func TestSessionScreen_SubmitJudgment(t *testing.T) {
	s, events := activeScreen(t, challenge.KindQuickJudgment, challenge.Easy, challenge.CategoryNone)

	c := s.sess.Current()
	title := c.Title
	for i, o := range c.Options {
		if o == c.Target {
			s.grid.Cursor = i
			break
		}
	}

	var scr screen.Screen = s
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a resolution command after submit")
	}

	// Deliver the resolution message the command would produce.
	msg := cmd()
	resolved, ok := msg.(stepResolvedMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want stepResolvedMsg", msg)
	}
	if resolved.Result.Outcome != engine.OutcomeCorrect {
		t.Errorf("outcome = %v, want correct", resolved.Result.Outcome)
	}

	scr, _ = scr.Update(msg)
	ss := scr.(*SessionScreen)
	if ss.feedback == nil {
		t.Error("expected feedback overlay after resolution")
	}

	if len(events.steps) != 1 {
		t.Fatalf("step events = %d, want 1", len(events.steps))
	}
	if events.steps[0].Title != title {
		t.Errorf("persisted title %q, want the resolved step's title %q", events.steps[0].Title, title)
	}
	if events.steps[0].Step != 1 {
		t.Errorf("persisted step %d, want 1", events.steps[0].Step)
	}
}

func TestSessionScreen_FeedbackDismissAdvances(t *testing.T) {
	s, _ := activeScreen(t, challenge.KindQuickJudgment, challenge.Easy, challenge.CategoryNone)
	s.feedback = &engine.StepResult{Outcome: engine.OutcomeSkipped, StepIndex: 1}

	var scr screen.Screen = s
	scr, cmd := scr.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("expected feedbackDoneMsg command")
	}
	scr, _ = scr.Update(cmd())
	ss := scr.(*SessionScreen)
	if ss.feedback != nil {
		t.Error("expected feedback to be cleared")
	}
}

func TestSessionScreen_CollectionDuplicateRetry(t *testing.T) {
	s, _ := activeScreen(t, challenge.KindCollection, challenge.Easy, challenge.CategoryAnimal)

	dir := t.TempDir()
	photo := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(photo, []byte("same-bytes"), 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}

	// First upload resolves the step.
	s.input.Model.SetValue(photo)
	var scr screen.Screen = s
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a resolution command")
	}
	scr, _ = scr.Update(cmd())
	ss := scr.(*SessionScreen)
	scr, cmd = ss.Update(keyPress(' ')) // dismiss feedback
	scr, _ = scr.Update(cmd())
	ss = scr.(*SessionScreen)

	// Second upload of identical bytes is rejected as a duplicate; the
	// step index does not move.
	stepBefore := ss.sess.Step()
	ss.input.Model.SetValue(photo)
	scr, cmd = ss.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a resolution command for the duplicate")
	}
	msg := cmd()
	resolved := msg.(stepResolvedMsg)
	if resolved.Result.Outcome != engine.OutcomeDuplicate {
		t.Fatalf("outcome = %v, want duplicate", resolved.Result.Outcome)
	}

	scr, _ = scr.Update(msg)
	ss = scr.(*SessionScreen)
	scr, cmd = ss.Update(keyPress(' ')) // dismiss duplicate feedback
	scr, _ = scr.Update(cmd())
	ss = scr.(*SessionScreen)

	if ss.sess.Step() != stepBefore {
		t.Errorf("Step moved from %d to %d on duplicate", stepBefore, ss.sess.Step())
	}
	if ss.inputErr == "" {
		t.Error("expected a retry message after duplicate rejection")
	}
}

func TestSessionScreen_CollectionSkip(t *testing.T) {
	s, _ := activeScreen(t, challenge.KindCollection, challenge.Easy, challenge.CategoryPlant)

	var scr screen.Screen = s
	scr, cmd := scr.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a resolution command for skip")
	}
	msg := cmd()
	resolved, ok := msg.(stepResolvedMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want stepResolvedMsg", msg)
	}
	if resolved.Result.Outcome != engine.OutcomeSkipped {
		t.Errorf("outcome = %v, want skipped", resolved.Result.Outcome)
	}
}

func TestSessionScreen_MissingFile(t *testing.T) {
	s, _ := activeScreen(t, challenge.KindCollection, challenge.Easy, challenge.CategoryLife)

	s.input.Model.SetValue(filepath.Join(t.TempDir(), "nope.jpg"))
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*SessionScreen)

	if ss.inputErr == "" {
		t.Error("expected an error message for an unreadable file")
	}
	if ss.sess.Step() != 1 {
		t.Errorf("Step = %d, bad path must not consume the step", ss.sess.Step())
	}
}

func TestSessionScreen_HeaderFeed(t *testing.T) {
	s, _ := activeScreen(t, challenge.KindQuickJudgment, challenge.Easy, challenge.CategoryNone)

	if s.Score() != 0 {
		t.Errorf("Score = %d, want 0", s.Score())
	}
	step, total := s.Step()
	if step != 1 || total != engine.DefaultTotalSteps {
		t.Errorf("Step = %d/%d, want 1/%d", step, total, engine.DefaultTotalSteps)
	}
}
