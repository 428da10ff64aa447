package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/pranav/snapquest/internal/engine"
	"github.com/pranav/snapquest/internal/router"
)

func testResult() *engine.SessionResult {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return &engine.SessionResult{
		SessionID:    "abc-123",
		Kind:         "quick_judgment",
		Difficulty:   "medium",
		Score:        21,
		CorrectCount: 7,
		TotalCount:   10,
		StartTime:    start,
		EndTime:      start.Add(95 * time.Second),
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Run Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Run Summary")
	}
}

func TestSummaryScreen_View(t *testing.T) {
	view := New(testResult()).View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	for _, want := range []string{"Run complete!", "21 points", "Quick Judgment", "70%", "1:35"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_View_NilResult(t *testing.T) {
	s := New(nil)
	if s.View(80, 24) != "" {
		t.Error("expected empty view without a result")
	}
}

func TestSummaryScreen_EnterPops(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestKindLabel(t *testing.T) {
	tests := []struct {
		kind, cat, want string
	}{
		{"quick_judgment", "", "Quick Judgment"},
		{"collection", "", "Collection"},
		{"collection", "animal", "Animal Collection"},
	}
	for _, tt := range tests {
		if got := kindLabel(tt.kind, tt.cat); got != tt.want {
			t.Errorf("kindLabel(%q, %q) = %q, want %q", tt.kind, tt.cat, got, tt.want)
		}
	}
}
