package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen_CreatesSchema(t *testing.T) {
	st := openTestStore(t)

	for _, table := range []string{"fingerprints", "session_events", "step_events"} {
		var name string
		err := st.DB().QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSQLiteLedger_RecordOnce(t *testing.T) {
	l := openTestStore(t).Ledger()

	ok, err := l.Contains("fp-a")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if ok {
		t.Error("fresh ledger should not contain fp-a")
	}

	inserted, err := l.Record("fp-a")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !inserted {
		t.Error("first Record should insert")
	}

	inserted, err = l.Record("fp-a")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if inserted {
		t.Error("second Record should report duplicate")
	}

	if ok, _ := l.Contains("fp-a"); !ok {
		t.Error("ledger should contain fp-a")
	}
}

func TestSQLiteLedger_ConcurrentRecord(t *testing.T) {
	l := openTestStore(t).Ledger()

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := l.Record("contested-fp")
			if err != nil {
				t.Errorf("Record: %v", err)
				return
			}
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("%d Records won, want exactly 1", wins)
	}
}

func TestEventRepo_SessionRoundTrip(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	err := repo.AppendSessionStart(ctx, SessionStartData{
		SessionID:  "sess-1",
		Kind:       "collection",
		Difficulty: "hard",
		Category:   "animal",
	})
	if err != nil {
		t.Fatalf("AppendSessionStart: %v", err)
	}
	err = repo.AppendSessionEnd(ctx, SessionEndData{
		SessionID:    "sess-1",
		Score:        18,
		Correct:      3,
		Total:        10,
		DurationSecs: 340,
	})
	if err != nil {
		t.Fatalf("AppendSessionEnd: %v", err)
	}

	sessions, err := repo.RecentSessions(ctx, 5)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}

	s := sessions[0]
	if s.SessionID != "sess-1" || s.Kind != "collection" || s.Difficulty != "hard" || s.Category != "animal" {
		t.Errorf("mode fields not joined from the start event: %+v", s)
	}
	if s.Score != 18 || s.Correct != 3 || s.Total != 10 || s.DurationSecs != 340 {
		t.Errorf("tally fields wrong: %+v", s)
	}
}

func TestEventRepo_RecentSessionsOrderAndLimit(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	for i, id := range []string{"s-old", "s-mid", "s-new"} {
		if err := repo.AppendSessionStart(ctx, SessionStartData{SessionID: id, Kind: "quick_judgment", Difficulty: "easy"}); err != nil {
			t.Fatalf("AppendSessionStart: %v", err)
		}
		if err := repo.AppendSessionEnd(ctx, SessionEndData{SessionID: id, Score: i}); err != nil {
			t.Fatalf("AppendSessionEnd: %v", err)
		}
	}

	sessions, err := repo.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].SessionID != "s-new" || sessions[1].SessionID != "s-mid" {
		t.Errorf("wrong order: %q, %q", sessions[0].SessionID, sessions[1].SessionID)
	}
}

func TestEventRepo_IncompleteSessionExcluded(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	// Abandoned run: start without end.
	if err := repo.AppendSessionStart(ctx, SessionStartData{SessionID: "abandoned", Kind: "collection", Difficulty: "easy", Category: "plant"}); err != nil {
		t.Fatalf("AppendSessionStart: %v", err)
	}

	sessions, err := repo.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("abandoned run appeared in history: %+v", sessions)
	}
}

func TestEventRepo_Lifetime(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionStart(ctx, SessionStartData{SessionID: "s1", Kind: "collection", Difficulty: "medium", Category: "life"}); err != nil {
		t.Fatalf("AppendSessionStart: %v", err)
	}
	if err := repo.AppendSessionEnd(ctx, SessionEndData{SessionID: "s1", Score: 9, Correct: 3, Total: 10}); err != nil {
		t.Fatalf("AppendSessionEnd: %v", err)
	}

	steps := []StepEventData{
		{SessionID: "s1", Step: 1, Outcome: "correct", Points: 3, Title: "a"},
		{SessionID: "s1", Step: 2, Outcome: "duplicate", Points: 0, Title: "b"},
		{SessionID: "s1", Step: 2, Outcome: "correct", Points: 3, Title: "b"},
		{SessionID: "s1", Step: 3, Outcome: "skipped", Points: 0, Title: "c"},
		{SessionID: "s1", Step: 4, Outcome: "correct", Points: 3, Title: "d"},
	}
	for _, se := range steps {
		if err := repo.AppendStep(ctx, se); err != nil {
			t.Fatalf("AppendStep: %v", err)
		}
	}

	stats, err := repo.Lifetime(ctx)
	if err != nil {
		t.Fatalf("Lifetime: %v", err)
	}

	if stats.SessionsCompleted != 1 {
		t.Errorf("SessionsCompleted = %d, want 1", stats.SessionsCompleted)
	}
	if stats.TotalScore != 9 {
		t.Errorf("TotalScore = %d, want 9", stats.TotalScore)
	}
	// Duplicates are rejections, not steps.
	if stats.TotalSteps != 4 {
		t.Errorf("TotalSteps = %d, want 4", stats.TotalSteps)
	}
	if stats.TotalCorrect != 3 {
		t.Errorf("TotalCorrect = %d, want 3", stats.TotalCorrect)
	}
	if stats.DuplicateRejects != 1 {
		t.Errorf("DuplicateRejects = %d, want 1", stats.DuplicateRejects)
	}

	want := float64(3) / float64(4)
	if got := stats.Accuracy(); got != want {
		t.Errorf("Accuracy = %v, want %v", got, want)
	}
}

func TestLifetimeStats_AccuracyEmpty(t *testing.T) {
	stats := &LifetimeStats{}
	if got := stats.Accuracy(); got != 0 {
		t.Errorf("Accuracy on empty stats = %v, want 0", got)
	}
}
