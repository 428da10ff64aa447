package engine

import "time"

// Outcome is the terminal disposition of one step.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeSkipped   Outcome = "skipped"

	// OutcomeDuplicate means the submitted content fingerprint was
	// already in the ledger. The step is NOT consumed; the player
	// retries the same step with different content.
	OutcomeDuplicate Outcome = "duplicate"

	// OutcomeExpired means the deadline passed and the held selection
	// (possibly empty) did not evaluate as correct.
	OutcomeExpired Outcome = "expired"
)

// Advances reports whether this outcome consumes the step.
func (o Outcome) Advances() bool {
	return o != OutcomeDuplicate
}

// StepResult reports how one step resolved.
type StepResult struct {
	Outcome        Outcome
	Points         int
	StepIndex      int
	RemainingSteps int

	// ChallengeTitle names the challenge the result belongs to; the
	// session has usually issued the next one by the time a caller
	// reads the result.
	ChallengeTitle string
}

// SessionResult is the final tally emitted when the session completes.
type SessionResult struct {
	SessionID    string
	Kind         string
	Difficulty   string
	Category     string
	Score        int
	CorrectCount int
	TotalCount   int
	StartTime    time.Time
	EndTime      time.Time
}
