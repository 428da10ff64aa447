// Package engine runs challenge sessions: it issues non-repeating
// challenges, enforces deadlines and scoring, and guards collection
// submissions against lifetime duplicates.
package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pranav/snapquest/internal/challenge"
	"github.com/pranav/snapquest/internal/countdown"
	"github.com/pranav/snapquest/internal/fingerprint"
)

// DefaultTotalSteps is the fixed session length.
const DefaultTotalSteps = 10

// State is the session lifecycle state.
type State int

const (
	StateAwaitingAnswer State = iota
	StateEvaluating
	StateCompleted
	StateAborted
)

// Config carries the session's injected collaborators.
type Config struct {
	// Catalog supplies template pools. Required.
	Catalog challenge.Catalog

	// Ledger is the lifetime fingerprint set. Required for collection
	// sessions.
	Ledger fingerprint.Ledger

	// Digest fingerprints raw submission content. Defaults to
	// fingerprint.SHA256Hex.
	Digest fingerprint.Digest

	// Rand seeds challenge generation. Nil uses a time-seeded source.
	Rand rand.Source

	// TotalSteps overrides the session length. Defaults to
	// DefaultTotalSteps.
	TotalSteps int

	// Clock overrides time.Now for tests.
	Clock func() time.Time

	// ArmTimers controls whether the engine runs its own countdown
	// goroutine for timed steps. Callers that drive expiry themselves
	// (tests, tick-based UIs) may disable it and call Expire.
	ArmTimers bool

	// OnExpire, if set, is invoked from the countdown goroutine after a
	// deadline fires. res is the forced resolution, or nil when the
	// deadline has no auto-action (collection steps).
	OnExpire func(res *StepResult)

	// Logger records step resolutions at debug level. Defaults to a
	// no-op logger.
	Logger *zap.Logger
}

// Answer is one submission against the current step. Exactly one of
// the shape fields applies: Skip, Pick (easy/medium), Picks (hard
// multi-select), or Content/Fingerprint (collection).
type Answer struct {
	// Step is the 1-based step index this answer targets. A mismatch
	// with the pending step fails with ErrStaleSubmission.
	Step int

	Skip        bool
	Pick        int
	Picks       []int
	Content     []byte
	Fingerprint string
}

// Session is a live 10-step run. All mutation goes through Submit,
// Expire, and Abort, serialized by an internal mutex so the
// submit-versus-deadline race resolves exactly once.
type Session struct {
	id         string
	kind       challenge.TaskKind
	difficulty challenge.Difficulty
	category   challenge.Category

	gen       *challenge.Generator
	ledger    fingerprint.Ledger
	digest    fingerprint.Digest
	clock     func() time.Time
	armTimers bool
	onExpire  func(*StepResult)
	log       *zap.Logger

	mu           sync.Mutex
	state        State
	step         int
	totalSteps   int
	score        int
	correct      int
	startTime    time.Time
	used         map[string]bool
	current      *challenge.Challenge
	pendingPicks []int
	deadlineAt   time.Time
	timer        *countdown.Timer
	epoch        int
	lastResult   *StepResult
	result       *SessionResult
}

// Start validates the kind/category combination, creates the session,
// and issues the first challenge.
func Start(cfg Config, kind challenge.TaskKind, d challenge.Difficulty, cat challenge.Category) (*Session, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("engine: catalog is required")
	}
	switch kind {
	case challenge.KindCollection:
		if cat == challenge.CategoryNone {
			return nil, fmt.Errorf("engine: collection session requires a category")
		}
		if cfg.Ledger == nil {
			return nil, fmt.Errorf("engine: collection session requires a ledger")
		}
	case challenge.KindQuickJudgment:
		if cat != challenge.CategoryNone {
			return nil, fmt.Errorf("engine: category %q is not valid for quick judgment", cat)
		}
	default:
		return nil, fmt.Errorf("engine: unknown task kind %q", kind)
	}

	if cfg.Digest == nil {
		cfg.Digest = fingerprint.SHA256Hex
	}
	if cfg.TotalSteps <= 0 {
		cfg.TotalSteps = DefaultTotalSteps
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Session{
		id:         uuid.New().String(),
		kind:       kind,
		difficulty: d,
		category:   cat,
		gen:        challenge.NewGenerator(cfg.Catalog, cfg.Rand),
		ledger:     cfg.Ledger,
		digest:     cfg.Digest,
		clock:      cfg.Clock,
		armTimers:  cfg.ArmTimers,
		onExpire:   cfg.OnExpire,
		log:        cfg.Logger,
		state:      StateAwaitingAnswer,
		step:       1,
		totalSteps: cfg.TotalSteps,
		used:       make(map[string]bool),
	}
	s.startTime = s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.issueLocked(); err != nil {
		return nil, err
	}

	s.log.Debug("session started",
		zap.String("session_id", s.id),
		zap.String("kind", string(kind)),
		zap.String("difficulty", d.String()),
		zap.String("category", string(cat)),
	)
	return s, nil
}

// issueLocked generates the challenge for the current step and arms
// its deadline. Caller holds s.mu.
func (s *Session) issueLocked() error {
	c, err := s.gen.Next(s.kind, s.difficulty, s.category, s.used)
	if err != nil {
		return fmt.Errorf("generate challenge: %w", err)
	}
	s.used[c.TemplateID] = true
	s.current = c
	s.pendingPicks = nil
	s.epoch++

	if c.Deadline > 0 {
		s.deadlineAt = s.clock().Add(c.Deadline)
	} else {
		s.deadlineAt = time.Time{}
	}

	if c.Deadline > 0 && s.armTimers {
		epoch := s.epoch
		s.timer = countdown.Start(c.Deadline, nil, func() {
			res, _ := s.expire(epoch)
			if s.onExpire != nil {
				s.onExpire(res)
			}
		})
	} else {
		s.timer = nil
	}
	return nil
}

// Submit evaluates one answer against the pending step. Recoverable
// rejections (duplicate content) come back as a StepResult outcome;
// stale, closed, and malformed calls come back as typed errors with
// session state untouched.
func (s *Session) Submit(ans Answer) (*StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSubmittableLocked(ans.Step); err != nil {
		return nil, err
	}

	if ans.Skip {
		return s.resolveLocked(OutcomeSkipped), nil
	}

	if s.kind == challenge.KindCollection {
		return s.submitCollectionLocked(ans)
	}

	var correct bool
	if s.difficulty == challenge.Hard {
		correct = s.current.CheckPicks(ans.Picks)
	} else {
		correct = s.current.CheckPick(ans.Pick)
	}
	if correct {
		return s.resolveLocked(OutcomeCorrect), nil
	}
	return s.resolveLocked(OutcomeIncorrect), nil
}

// submitCollectionLocked runs the fingerprint ledger check. The
// check-and-insert is a single atomic Record call so two concurrent
// uploads of identical content cannot both be accepted.
func (s *Session) submitCollectionLocked(ans Answer) (*StepResult, error) {
	fp := ans.Fingerprint
	if fp == "" && len(ans.Content) > 0 {
		fp = s.digest(ans.Content)
	}
	if fp == "" {
		return nil, fmt.Errorf("%w: collection submission requires content", ErrInvalidAnswer)
	}

	inserted, err := s.ledger.Record(fp)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	if !inserted {
		// Duplicate: the step stays open for a retry, but its countdown
		// is cancelled along with every other resolution path.
		if s.timer != nil {
			s.timer.Cancel()
			s.timer = nil
		}
		s.deadlineAt = time.Time{}
		res := &StepResult{
			Outcome:        OutcomeDuplicate,
			StepIndex:      s.step,
			RemainingSteps: s.totalSteps - s.step,
			ChallengeTitle: s.current.Title,
		}
		s.lastResult = res
		s.log.Debug("duplicate submission rejected",
			zap.String("session_id", s.id),
			zap.Int("step", s.step),
			zap.String("fingerprint", fp),
		)
		return res, nil
	}

	return s.resolveLocked(OutcomeCorrect), nil
}

// checkSubmittableLocked validates that the session accepts an answer
// for the given step right now.
func (s *Session) checkSubmittableLocked(step int) error {
	switch s.state {
	case StateCompleted, StateAborted:
		return ErrSessionClosed
	case StateEvaluating:
		return ErrStaleSubmission
	}
	if step != 0 && step != s.step {
		return ErrStaleSubmission
	}
	return nil
}

// resolveLocked closes out the current step: cancel its countdown,
// apply scoring, advance or complete. Caller holds s.mu.
func (s *Session) resolveLocked(outcome Outcome) *StepResult {
	s.state = StateEvaluating
	if s.timer != nil {
		s.timer.Cancel()
		s.timer = nil
	}

	points := 0
	if outcome == OutcomeCorrect {
		points = s.difficulty.Points()
		s.score += points
		s.correct++
	}

	res := &StepResult{
		Outcome:        outcome,
		Points:         points,
		StepIndex:      s.step,
		RemainingSteps: s.totalSteps - s.step,
	}
	if s.current != nil {
		res.ChallengeTitle = s.current.Title
	}
	s.lastResult = res

	s.log.Debug("step resolved",
		zap.String("session_id", s.id),
		zap.Int("step", s.step),
		zap.String("outcome", string(outcome)),
		zap.Int("points", points),
	)

	s.step++
	if s.step > s.totalSteps {
		s.completeLocked()
		return res
	}

	if err := s.issueLocked(); err != nil {
		// A mid-session generation failure cannot be retried by the
		// player; end the run with the tally so far.
		s.log.Warn("challenge generation failed mid-session, ending early",
			zap.String("session_id", s.id),
			zap.Error(err),
		)
		s.completeLocked()
		return res
	}
	s.state = StateAwaitingAnswer
	return res
}

// completeLocked transitions to Completed and freezes the tally. The
// step counter sits one past the last resolved step, so the resolved
// count is what the tally reports; an early completion (mid-session
// generation failure) ends with fewer than the configured steps.
func (s *Session) completeLocked() {
	s.state = StateCompleted
	s.current = nil
	s.result = &SessionResult{
		SessionID:    s.id,
		Kind:         string(s.kind),
		Difficulty:   s.difficulty.String(),
		Category:     string(s.category),
		Score:        s.score,
		CorrectCount: s.correct,
		TotalCount:   s.step - 1,
		StartTime:    s.startTime,
		EndTime:      s.clock(),
	}
	s.log.Info("session completed",
		zap.String("session_id", s.id),
		zap.Int("score", s.score),
		zap.Int("correct", s.correct),
	)
}

// SetSelection records the in-progress multi-selection for the current
// step so a deadline expiry can auto-evaluate it.
func (s *Session) SetSelection(picks []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingAnswer {
		return
	}
	s.pendingPicks = append([]int(nil), picks...)
}

// Expire forces the deadline path for the current step. Judgment steps
// auto-evaluate the held selection; collection deadlines have no
// forced resolution and return nil. Safe to call from tick-driven
// callers; a resolved step reports ErrStaleSubmission.
func (s *Session) Expire() (*StepResult, error) {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()
	return s.expire(epoch)
}

func (s *Session) expire(epoch int) (*StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateCompleted, StateAborted:
		return nil, ErrSessionClosed
	}
	if epoch != s.epoch || s.state != StateAwaitingAnswer {
		return nil, ErrStaleSubmission
	}

	if s.kind == challenge.KindCollection {
		// Deliberately no forced skip or failure here: what a
		// collection step should do at zero is an open product
		// decision. The step stays open; only the display changes.
		if s.timer != nil {
			s.timer = nil
		}
		return nil, nil
	}

	if s.current.CheckPicks(s.pendingPicks) {
		return s.resolveLocked(OutcomeCorrect), nil
	}
	return s.resolveLocked(OutcomeExpired), nil
}

// Abort discards the session before completion. Nothing is scored and
// no ledger mutation is emitted for an unresolved submission.
func (s *Session) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCompleted || s.state == StateAborted {
		return ErrSessionClosed
	}
	if s.timer != nil {
		s.timer.Cancel()
		s.timer = nil
	}
	s.state = StateAborted
	s.current = nil
	s.log.Debug("session aborted", zap.String("session_id", s.id))
	return nil
}

// Result returns the final tally of a completed session.
func (s *Session) Result() (*SessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCompleted {
		return nil, ErrInvalidTransition
	}
	return s.result, nil
}

// ID returns the session UUID.
func (s *Session) ID() string { return s.id }

// Kind returns the session task kind.
func (s *Session) Kind() challenge.TaskKind { return s.kind }

// Difficulty returns the session difficulty.
func (s *Session) Difficulty() challenge.Difficulty { return s.difficulty }

// Category returns the resolved category (CategoryNone for quick
// judgment).
func (s *Session) Category() challenge.Category { return s.category }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Step returns the 1-based index of the pending step.
func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// TotalSteps returns the fixed session length.
func (s *Session) TotalSteps() int { return s.totalSteps }

// Score returns the accumulated score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// CorrectCount returns the accumulated correct answers.
func (s *Session) CorrectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct
}

// StartTime returns when the session began.
func (s *Session) StartTime() time.Time { return s.startTime }

// Current returns the pending challenge, nil once the session is
// closed.
func (s *Session) Current() *challenge.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Remaining returns the time left on the pending step's deadline, or 0
// when the step is untimed.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deadlineAt.IsZero() {
		return 0
	}
	d := s.deadlineAt.Sub(s.clock())
	if d < 0 {
		return 0
	}
	return d
}

// LastResult returns the most recent step resolution, nil before the
// first one. Tick-driven callers use it to observe deadline-forced
// resolutions.
func (s *Session) LastResult() *StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}
