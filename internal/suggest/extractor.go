package suggest

import "strings"

// State is the extractor's lifecycle position.
type State int

const (
	Accumulating State = iota
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Accumulating:
		return "accumulating"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool { return s != Accumulating }

// Extractor accumulates fragments of one reply. It is owned by a single
// stream and is not safe for concurrent use.
type Extractor struct {
	buf     strings.Builder
	state   State
	current SuggestedAnswer
}

// NewExtractor returns an extractor in the Accumulating state.
func NewExtractor() *Extractor {
	return &Extractor{current: Empty()}
}

// Feed appends a fragment and returns the current best-effort suggestion.
// Only the answer moves while accumulating. Fragments after a terminal
// state are ignored.
func (e *Extractor) Feed(fragment string) SuggestedAnswer {
	if e.state.Terminal() {
		return e.current.Clone()
	}
	e.buf.WriteString(fragment)
	e.current.Answer = PartialAnswer(e.buf.String())
	return e.current.Clone()
}

// Finish parses the accumulated text and moves to Complete. Missing blocks
// are tolerated.
func (e *Extractor) Finish() SuggestedAnswer {
	if e.state.Terminal() {
		return e.current.Clone()
	}
	e.current = Parse(e.buf.String())
	e.state = Complete
	return e.current.Clone()
}

// Fail moves to Failed. The answer becomes ErrorAnswer; key points and pro
// tip keep their last known values.
func (e *Extractor) Fail() SuggestedAnswer {
	if e.state.Terminal() {
		return e.current.Clone()
	}
	e.current.Answer = ErrorAnswer
	e.state = Failed
	return e.current.Clone()
}

// State returns the current state.
func (e *Extractor) State() State { return e.state }

// Text returns everything fed so far.
func (e *Extractor) Text() string { return e.buf.String() }
