package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionStartData records the configuration of a session at launch.
type SessionStartData struct {
	SessionID  string
	Kind       string
	Difficulty string
	Category   string
}

// SessionEndData records the final tally of a completed session.
type SessionEndData struct {
	SessionID    string
	Score        int
	Correct      int
	Total        int
	DurationSecs int
}

// StepEventData records one resolved (or duplicate-rejected) step.
type StepEventData struct {
	SessionID string
	Step      int
	Outcome   string
	Points    int
	Title     string
}

// SessionSummary is one completed session as read back for display.
type SessionSummary struct {
	SessionID    string
	Kind         string
	Difficulty   string
	Category     string
	Score        int
	Correct      int
	Total        int
	DurationSecs int
	EndedAt      time.Time
}

// LifetimeStats aggregates the whole event log for the stats screen.
type LifetimeStats struct {
	SessionsCompleted int
	TotalScore        int
	TotalSteps        int
	TotalCorrect      int
	DuplicateRejects  int
}

// Accuracy returns the lifetime correct ratio, 0 when nothing has been
// answered.
func (s *LifetimeStats) Accuracy() float64 {
	if s.TotalSteps == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalSteps)
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	AppendSessionStart(ctx context.Context, data SessionStartData) error
	AppendSessionEnd(ctx context.Context, data SessionEndData) error
	AppendStep(ctx context.Context, data StepEventData) error

	// RecentSessions returns up to limit completed sessions, newest
	// first.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)

	// Lifetime aggregates every completed session and resolved step.
	Lifetime(ctx context.Context) (*LifetimeStats, error)
}

type eventRepo struct {
	db *sql.DB
}

var _ EventRepo = (*eventRepo)(nil)

func (r *eventRepo) AppendSessionStart(ctx context.Context, data SessionStartData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_events (session_id, action, kind, difficulty, category)
		 VALUES (?, 'start', ?, ?, ?)`,
		data.SessionID, data.Kind, data.Difficulty, data.Category,
	)
	if err != nil {
		return fmt.Errorf("save session start: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEnd(ctx context.Context, data SessionEndData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_events (session_id, action, score, correct, total, duration_secs)
		 VALUES (?, 'end', ?, ?, ?, ?)`,
		data.SessionID, data.Score, data.Correct, data.Total, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session end: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendStep(ctx context.Context, data StepEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO step_events (session_id, step, outcome, points, title)
		 VALUES (?, ?, ?, ?, ?)`,
		data.SessionID, data.Step, data.Outcome, data.Points, data.Title,
	)
	if err != nil {
		return fmt.Errorf("save step event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.session_id, s.kind, s.difficulty, s.category,
		        e.score, e.correct, e.total, e.duration_secs, e.created_at
		 FROM session_events e
		 JOIN session_events s ON s.session_id = e.session_id AND s.action = 'start'
		 WHERE e.action = 'end'
		 ORDER BY e.id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.SessionID, &s.Kind, &s.Difficulty, &s.Category,
			&s.Score, &s.Correct, &s.Total, &s.DurationSecs, &s.EndedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) Lifetime(ctx context.Context) (*LifetimeStats, error) {
	stats := &LifetimeStats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(score), 0)
		 FROM session_events WHERE action = 'end'`,
	).Scan(&stats.SessionsCompleted, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("aggregate sessions: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT
		    COALESCE(SUM(CASE WHEN outcome != 'duplicate' THEN 1 ELSE 0 END), 0),
		    COALESCE(SUM(CASE WHEN outcome = 'correct' THEN 1 ELSE 0 END), 0),
		    COALESCE(SUM(CASE WHEN outcome = 'duplicate' THEN 1 ELSE 0 END), 0)
		 FROM step_events`,
	).Scan(&stats.TotalSteps, &stats.TotalCorrect, &stats.DuplicateRejects)
	if err != nil {
		return nil, fmt.Errorf("aggregate steps: %w", err)
	}

	return stats, nil
}
