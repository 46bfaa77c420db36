package interview

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arin/career-copilot/internal/ai"
	"github.com/arin/career-copilot/internal/prompt"
	"github.com/arin/career-copilot/internal/suggest"
)

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers fn to receive every update. fn runs on the stream's
// goroutine, one call at a time, and must not call Reset or Close.
func WithObserver(fn func(Update)) Option {
	return func(c *Controller) { c.observer = fn }
}

// WithClock overrides time.Now for turn timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns the turn list and at most one in-flight stream.
// Submissions while a stream is in flight are rejected, never queued.
type Controller struct {
	transport ai.Transport
	prompts   *prompt.Builder
	session   Session
	observer  func(Update)
	now       func() time.Time

	// emitMu orders observer calls against Reset so a superseded stream can
	// never publish after the reset returns.
	emitMu sync.Mutex

	mu     sync.Mutex
	turns  []Turn
	status Status
	epoch  uint64
	active *stream

	wg sync.WaitGroup
}

// stream is the state bound to one in-flight turn.
type stream struct {
	epoch  uint64
	turnID string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewController returns an idle controller. The transport is chosen once by
// the caller and used for every turn.
func NewController(t ai.Transport, prompts *prompt.Builder, session Session, opts ...Option) *Controller {
	c := &Controller{
		transport: t,
		prompts:   prompts,
		session:   session,
		observer:  func(Update) {},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze submits a new question. A prior turn with the same question,
// compared case-insensitively, is replaced by the new turn at the head.
func (c *Controller) Analyze(ctx context.Context, question string) (Turn, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return Turn{}, ErrEmptyQuestion
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == Streaming {
		return Turn{}, ErrBusy
	}

	kept := make([]Turn, 0, len(c.turns)+1)
	for _, t := range c.turns {
		if !strings.EqualFold(t.Question, q) {
			kept = append(kept, t)
		}
	}
	turn := c.newTurn(q)
	c.startLocked(ctx, turn, kept)
	c.turns = append([]Turn{turn}, kept...)
	return turn.clone(), nil
}

// Regenerate replaces the latest turn with a fresh one for the same
// question and streams a new answer.
func (c *Controller) Regenerate(ctx context.Context) (Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == Streaming {
		return Turn{}, ErrBusy
	}
	if len(c.turns) == 0 {
		return Turn{}, ErrNoTurns
	}

	turn := c.newTurn(c.turns[0].Question)
	c.startLocked(ctx, turn, c.turns[1:])
	c.turns[0] = turn
	return turn.clone(), nil
}

// Reset abandons any in-flight stream and clears the turn list. Whatever the
// abandoned stream produces afterwards is discarded.
func (c *Controller) Reset() {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		c.active.cancel()
		c.active = nil
	}
	c.epoch++
	c.status = Idle
	c.turns = nil
}

// Wait blocks until the current stream, if any, has finished.
func (c *Controller) Wait() {
	c.mu.Lock()
	s := c.active
	c.mu.Unlock()
	if s != nil {
		<-s.done
	}
}

// Close resets the controller and waits for every stream goroutine,
// including superseded ones, to return.
func (c *Controller) Close() {
	c.Reset()
	c.wg.Wait()
}

// Turns returns a copy of the turn list, newest first.
func (c *Controller) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	for i, t := range c.turns {
		out[i] = t.clone()
	}
	return out
}

// Latest returns the head turn.
func (c *Controller) Latest() (Turn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.turns) == 0 {
		return Turn{}, false
	}
	return c.turns[0].clone(), true
}

// Status reports whether a stream is in flight.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Session returns the interview context.
func (c *Controller) Session() Session {
	return c.session
}

func (c *Controller) newTurn(question string) Turn {
	return Turn{
		ID:         uuid.NewString(),
		Question:   question,
		Suggestion: suggest.Empty(),
		Timestamp:  c.now(),
	}
}

// startLocked moves to Streaming and launches the stream for turn. history is
// the list of earlier turns, newest first. c.mu must be held.
func (c *Controller) startLocked(ctx context.Context, turn Turn, history []Turn) {
	exchanges := make([]prompt.Exchange, 0, prompt.MaxHistory)
	for _, t := range history {
		if len(exchanges) == prompt.MaxHistory {
			break
		}
		exchanges = append(exchanges, prompt.Exchange{Question: t.Question, Answer: t.Suggestion.Answer})
	}
	req := c.prompts.InterviewAnswer(prompt.InterviewInput{
		Resume:         c.session.Resume,
		JobRole:        c.session.JobRole,
		JobDescription: c.session.JobDescription,
		History:        exchanges,
		Question:       turn.Question,
	})

	sctx, cancel := context.WithCancel(ctx)
	c.epoch++
	s := &stream{epoch: c.epoch, turnID: turn.ID, cancel: cancel, done: make(chan struct{})}
	c.active = s
	c.status = Streaming

	c.wg.Add(1)
	go c.run(sctx, s, req)
}

// run drives one stream to Complete or Failed.
func (c *Controller) run(ctx context.Context, s *stream, req ai.Request) {
	defer c.wg.Done()
	defer close(s.done)
	defer s.cancel()

	ext := suggest.NewExtractor()
	ch, err := c.transport.Stream(ctx, req)
	if err != nil {
		c.finish(s, ext.Fail(), suggest.Failed, err)
		return
	}

	for delta := range ch {
		if delta.Err != nil {
			c.finish(s, ext.Fail(), suggest.Failed, delta.Err)
			return
		}
		c.progress(s, ext.Feed(delta.Text))
	}

	// A cancelled stream may close without an error delta; it must not
	// pass for a complete answer.
	if err := ctx.Err(); err != nil {
		c.finish(s, ext.Fail(), suggest.Failed, &ai.TransportError{Op: "stream", Err: err})
		return
	}
	c.finish(s, ext.Finish(), suggest.Complete, nil)
}

// progress replaces the live answer of the stream's turn.
func (c *Controller) progress(s *stream, current suggest.SuggestedAnswer) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	turn, ok := c.applyLocked(s, func(t *Turn) { t.Suggestion.Answer = current.Answer })
	c.mu.Unlock()
	if !ok {
		return
	}
	c.observer(Update{TurnID: turn.ID, Suggestion: turn.Suggestion, State: suggest.Accumulating})
}

// finish stores the final suggestion and returns the controller to Idle.
func (c *Controller) finish(s *stream, final suggest.SuggestedAnswer, state suggest.State, err error) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	current := c.active == s && s.epoch == c.epoch
	turn, ok := c.applyLocked(s, func(t *Turn) { t.Suggestion = final })
	if current {
		c.active = nil
		c.status = Idle
	}
	c.mu.Unlock()
	if !ok {
		return
	}
	c.observer(Update{TurnID: turn.ID, Suggestion: turn.Suggestion, State: state, Err: err})
}

// applyLocked mutates the stream's turn if the stream is still current.
// A superseded stream changes nothing. c.mu must be held.
func (c *Controller) applyLocked(s *stream, fn func(*Turn)) (Turn, bool) {
	if c.active != s || s.epoch != c.epoch {
		return Turn{}, false
	}
	for i := range c.turns {
		if c.turns[i].ID == s.turnID {
			fn(&c.turns[i])
			return c.turns[i].clone(), true
		}
	}
	return Turn{}, false
}
