package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/pranav/snapquest/internal/router"
	"github.com/pranav/snapquest/internal/screen"
	sessionscreen "github.com/pranav/snapquest/internal/screens/session"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// drive feeds a message and any message produced by the returned
// command back into the screen, mirroring one step of the event loop.
func drive(t *testing.T, scr screen.Screen, msg tea.Msg) (screen.Screen, tea.Cmd) {
	t.Helper()
	scr, cmd := scr.Update(msg)
	if cmd == nil {
		return scr, nil
	}
	out := cmd()
	if out == nil {
		return scr, nil
	}
	switch out.(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, tea.QuitMsg:
		return scr, func() tea.Msg { return out }
	}
	return scr.Update(out)
}

func TestHomeScreen_Title(t *testing.T) {
	h := New(sessionscreen.Deps{})
	if h.Title() != "Home" {
		t.Errorf("Title = %q, want %q", h.Title(), "Home")
	}
}

func TestHomeScreen_View(t *testing.T) {
	view := New(sessionscreen.Deps{}).View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	if !strings.Contains(view, "What are we hunting today?") {
		t.Error("expected the mode prompt on the first stage")
	}
}

func TestHomeScreen_JudgmentFlow(t *testing.T) {
	h := New(sessionscreen.Deps{})

	// Enter on QUICK JUDGMENT moves to the difficulty stage.
	scr, _ := drive(t, h, specialKey(tea.KeyEnter))
	hs := scr.(*HomeScreen)
	if hs.stage != stageDifficulty {
		t.Fatalf("stage = %v, want difficulty", hs.stage)
	}
	if !strings.Contains(hs.View(80, 24), "Pick a difficulty") {
		t.Error("expected the difficulty prompt")
	}

	// Enter on EASY launches the run straight away.
	scr, cmd := drive(t, hs, specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a push command after picking a difficulty")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*sessionscreen.SessionScreen); !ok {
		t.Errorf("pushed %T, want a session screen", push.Screen)
	}

	// The picker resets for the next visit.
	hs = scr.(*HomeScreen)
	if hs.stage != stageMode {
		t.Errorf("stage = %v, want mode after launch", hs.stage)
	}
}

func TestHomeScreen_PhotoCollectionAsksForCategory(t *testing.T) {
	h := New(sessionscreen.Deps{})

	var scr screen.Screen = h
	scr, _ = scr.Update(specialKey(tea.KeyDown)) // PHOTO COLLECTION
	scr, _ = drive(t, scr, specialKey(tea.KeyEnter))
	scr, _ = drive(t, scr, specialKey(tea.KeyEnter)) // EASY

	hs := scr.(*HomeScreen)
	if hs.stage != stageCategory {
		t.Fatalf("stage = %v, want category", hs.stage)
	}

	_, cmd := drive(t, hs, specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a push command after picking a category")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Errorf("expected PushScreenMsg, got %T", cmd())
	}
}

func TestHomeScreen_EscStepsBack(t *testing.T) {
	h := New(sessionscreen.Deps{})

	scr, _ := drive(t, h, specialKey(tea.KeyEnter))
	hs := scr.(*HomeScreen)
	if hs.stage != stageDifficulty {
		t.Fatalf("stage = %v, want difficulty", hs.stage)
	}

	scr, _ = hs.Update(specialKey(tea.KeyEscape))
	hs = scr.(*HomeScreen)
	if hs.stage != stageMode {
		t.Errorf("stage = %v, want mode after esc", hs.stage)
	}
}
