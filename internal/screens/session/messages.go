package session

import (
	"time"

	"github.com/pranav/snapquest/internal/engine"
)

// sessionStartedMsg is sent when the engine session has been created.
type sessionStartedMsg struct {
	Session *engine.Session
	Err     error
}

// tickMsg is sent every second to refresh the countdown and observe
// deadline expiry.
type tickMsg time.Time

// stepResolvedMsg is sent after a submission (or forced expiry)
// resolves, carrying the step outcome for the feedback overlay.
type stepResolvedMsg struct {
	Result *engine.StepResult
}

// feedbackDoneMsg is sent when the player dismisses the feedback
// overlay.
type feedbackDoneMsg struct{}
