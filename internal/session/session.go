// Package session orchestrates a single practice run: it draws questions,
// enforces the answer-before-advance rule, records attempts, and recomputes
// the user's level before every selection. The controller is UI-agnostic;
// the presentation layer translates its events into these calls.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tanmay-g/prepdrill/internal/level"
	"github.com/tanmay-g/prepdrill/internal/picker"
	"github.com/tanmay-g/prepdrill/internal/qset"
	"github.com/tanmay-g/prepdrill/internal/store"
)

// State is the controller's position in the session state machine.
type State int

const (
	// StateIdle is the constructed-but-not-started state.
	StateIdle State = iota

	// StateAwaitingAnswer means exactly one question is open.
	StateAwaitingAnswer

	// StateFinished is terminal; a new controller must be built to
	// practice again.
	StateFinished
)

// ErrAnswerRequired is returned by RequestNext when the open question has
// no submitted choice. The user stays on the current question.
var ErrAnswerRequired = errors.New("select an answer before advancing")

// ErrSessionFinished is returned for operations on a finished session.
var ErrSessionFinished = errors.New("session is finished")

// ErrNoOpenQuestion is returned by SubmitChoice outside AwaitingAnswer.
var ErrNoOpenQuestion = errors.New("no question is open")

// ErrInvalidChoice is returned for letters outside the option alphabet.
var ErrInvalidChoice = errors.New("invalid option letter")

// HistoryStore is the slice of the attempt store the controller needs.
type HistoryStore interface {
	Append(ctx context.Context, a *store.Attempt) error
	AllForUser(ctx context.Context, username string) ([]store.Attempt, error)
}

// Options configures a session controller.
type Options struct {
	Username string
	SetName  string
	Strategy picker.Strategy

	Ranges           level.Ranges
	AssessmentWindow int
	PassThreshold    int

	// QuestionTimeout is the per-question countdown. Expiry is cosmetic:
	// it never advances the session or force-saves an answer.
	QuestionTimeout time.Duration

	// OptionLetters is the allowed answer alphabet.
	OptionLetters []string

	// Now overrides the wall clock in tests.
	Now func() time.Time
}

// Draw is the outcome of Start or an accepted RequestNext.
type Draw struct {
	// Question is the newly opened question, nil when Finished.
	Question *qset.Question

	// Level is the proficiency level recomputed for this draw.
	Level int

	// Finished is true when the pool was exhausted and the session ended.
	Finished bool

	// SaveErr is set when the previous question's attempt could not be
	// persisted. The session continues; the attempt is simply missing
	// from future level calculations.
	SaveErr error

	// HistoryErr is set when history could not be read for leveling.
	// The draw proceeds with an empty history (level 1).
	HistoryErr error
}

// Controller runs the session state machine. It is not safe for
// concurrent use; a session lives on one control goroutine.
type Controller struct {
	opts    Options
	history HistoryStore
	pick    *picker.Picker

	state   State
	pool    []qset.Question
	current *qset.Question
	choice  *string
	shownAt time.Time
	lvl     int
	now     func() time.Time
}

// New creates a controller over the given question pool. The pool is
// copied; it only ever shrinks and a served question never re-enters it.
func New(opts Options, history HistoryStore, pick *picker.Picker, questions []qset.Question) *Controller {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	pool := make([]qset.Question, len(questions))
	copy(pool, questions)
	return &Controller{
		opts:    opts,
		history: history,
		pick:    pick,
		state:   StateIdle,
		pool:    pool,
		lvl:     1,
		now:     now,
	}
}

// State returns the current machine state.
func (c *Controller) State() State { return c.state }

// Level returns the most recently computed proficiency level.
func (c *Controller) Level() int { return c.lvl }

// CurrentQuestion returns the open question, or nil.
func (c *Controller) CurrentQuestion() *qset.Question { return c.current }

// PoolSize returns the number of questions not yet served.
func (c *Controller) PoolSize() int { return len(c.pool) }

// Choice returns the currently submitted (unsaved) option letter, or nil.
func (c *Controller) Choice() *string { return c.choice }

// Remaining returns the countdown left for the open question, clamped to
// zero, and whether the timer has expired. Purely informational.
func (c *Controller) Remaining() (time.Duration, bool) {
	if c.state != StateAwaitingAnswer {
		return 0, false
	}
	left := c.opts.QuestionTimeout - c.now().Sub(c.shownAt)
	if left <= 0 {
		return 0, true
	}
	return left, false
}

// Start opens the first question. Valid only once, from StateIdle.
func (c *Controller) Start(ctx context.Context) (*Draw, error) {
	if c.state != StateIdle {
		return nil, fmt.Errorf("start from state %d", c.state)
	}
	return c.advance(ctx, nil), nil
}

// SubmitChoice records the user's selection for the open question.
// Submitting again overwrites the previous unsaved choice; only the last
// selection before RequestNext counts.
func (c *Controller) SubmitChoice(letter string) error {
	if c.state != StateAwaitingAnswer {
		return ErrNoOpenQuestion
	}
	valid := false
	for _, l := range c.opts.OptionLetters {
		if l == letter {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q", ErrInvalidChoice, letter)
	}
	c.choice = &letter
	return nil
}

// RequestNext grades the open question and draws the next one. A request
// without a submitted choice is rejected and the state is unchanged.
func (c *Controller) RequestNext(ctx context.Context) (*Draw, error) {
	switch c.state {
	case StateFinished:
		return nil, ErrSessionFinished
	case StateIdle:
		return c.Start(ctx)
	}

	if c.choice == nil {
		return nil, ErrAnswerRequired
	}

	saveErr := c.record(ctx)
	return c.advance(ctx, saveErr), nil
}

// record appends the attempt for the open question. Elapsed wall-clock
// time is clamped to zero or more whole seconds.
func (c *Controller) record(ctx context.Context) error {
	q := c.current
	elapsed := int(c.now().Sub(c.shownAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	attempt := &store.Attempt{
		Username:       c.opts.Username,
		SetName:        c.opts.SetName,
		Year:           q.Year,
		QuestionNumber: q.Number,
		SetID:          q.SetID,
		Category:       q.Category,
		ImageFilename:  q.ImageFilename,
		Choice:         c.choice,
		Correct:        q.Correct,
		AnswerTimeSecs: elapsed,
	}
	if err := c.history.Append(ctx, attempt); err != nil {
		return fmt.Errorf("save attempt for %s: %w", q.ImageFilename, err)
	}
	return nil
}

// advance moves to the next question or finishes the session.
func (c *Controller) advance(ctx context.Context, saveErr error) *Draw {
	c.current = nil
	c.choice = nil

	if len(c.pool) == 0 {
		c.state = StateFinished
		return &Draw{Finished: true, Level: c.lvl, SaveErr: saveErr}
	}

	// Fresh level from the full current history on every draw; the level
	// is never cached across selections.
	var histErr error
	c.lvl, histErr = c.computeLevel(ctx)

	q := c.pick.Pick(c.pool, c.opts.Strategy, c.lvl, c.opts.Ranges)
	if q == nil {
		// Only possible with an empty pool, handled above.
		c.state = StateFinished
		return &Draw{Finished: true, Level: c.lvl, SaveErr: saveErr, HistoryErr: histErr}
	}

	c.removeFromPool(q.ImageFilename)
	c.current = q
	c.shownAt = c.now()
	c.state = StateAwaitingAnswer

	return &Draw{Question: q, Level: c.lvl, SaveErr: saveErr, HistoryErr: histErr}
}

// computeLevel reads the full history and derives the working level.
// A store read failure degrades to level 1 rather than ending the session.
func (c *Controller) computeLevel(ctx context.Context) (int, error) {
	records, err := c.history.AllForUser(ctx, c.opts.Username)
	if err != nil {
		return 1, fmt.Errorf("read history: %w", err)
	}
	return level.Calculate(toLevelAttempts(records), c.opts.Ranges,
		c.opts.AssessmentWindow, c.opts.PassThreshold), nil
}

func (c *Controller) removeFromPool(imageFilename string) {
	for i, q := range c.pool {
		if q.ImageFilename == imageFilename {
			c.pool = append(c.pool[:i], c.pool[i+1:]...)
			return
		}
	}
}

// toLevelAttempts projects store records onto the calculator's view.
func toLevelAttempts(records []store.Attempt) []level.Attempt {
	out := make([]level.Attempt, len(records))
	for i, r := range records {
		out[i] = level.Attempt{
			QuestionNumber: r.QuestionNumber,
			Choice:         r.Choice,
			Correct:        r.Correct,
		}
	}
	return out
}
