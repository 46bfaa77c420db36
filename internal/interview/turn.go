// Package interview runs the live interview coach: each submitted question
// becomes a turn whose suggested answer is streamed in from the model.
package interview

import (
	"errors"
	"fmt"
	"time"

	"github.com/arin/career-copilot/internal/resume"
	"github.com/arin/career-copilot/internal/suggest"
)

// ErrRejected is wrapped by every error returned for a request that was
// refused before any I/O. No state changes when it is returned.
var ErrRejected = errors.New("interview: request rejected")

var (
	ErrEmptyQuestion = fmt.Errorf("%w: question is empty", ErrRejected)
	ErrBusy          = fmt.Errorf("%w: an answer is still streaming", ErrRejected)
	ErrNoTurns       = fmt.Errorf("%w: no question to regenerate", ErrRejected)
)

// Turn is one question and its suggested answer.
type Turn struct {
	ID         string                  `json:"id"`
	Question   string                  `json:"question"`
	Suggestion suggest.SuggestedAnswer `json:"suggestion"`
	Timestamp  time.Time               `json:"timestamp"`
}

func (t Turn) clone() Turn {
	t.Suggestion = t.Suggestion.Clone()
	return t
}

// Session is the interview context every prompt is built from.
type Session struct {
	Resume         resume.Data
	JobRole        string
	JobDescription string
}

// Status is the controller's streaming state.
type Status int

const (
	Idle Status = iota
	Streaming
)

func (s Status) String() string {
	if s == Streaming {
		return "streaming"
	}
	return "idle"
}

// Update is published once per processed chunk and once more when the
// stream ends. Suggestion always carries the full current value; consumers
// replace, never append.
type Update struct {
	TurnID     string
	Suggestion suggest.SuggestedAnswer
	State      suggest.State
	// Err is the transport or decode failure that ended the stream, if any.
	Err error
}

// Final reports whether this is the last update for its turn.
func (u Update) Final() bool { return u.State.Terminal() }
