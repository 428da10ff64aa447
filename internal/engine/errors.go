package engine

import "errors"

var (
	// ErrInvalidTransition is returned when an operation is issued
	// outside its valid state. Caller bug; not retryable.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrStaleSubmission is returned when an answer arrives for a step
	// that has already resolved (including losing the race against the
	// deadline). The caller should refresh and continue.
	ErrStaleSubmission = errors.New("stale submission")

	// ErrSessionClosed is returned for any call against a completed or
	// aborted session.
	ErrSessionClosed = errors.New("session closed")

	// ErrInvalidAnswer is returned when an answer is malformed for the
	// current challenge shape (for example a collection submission with
	// no content). The session state is unchanged.
	ErrInvalidAnswer = errors.New("invalid answer")
)
