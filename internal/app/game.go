package app

import (
	"context"

	"kwiz-client/internal/domain"
)

// GameAPI is the slice of the remote service one play-through needs.
type GameAPI interface {
	StartGameSession(ctx context.Context, code string) (*domain.Question, error)
	SubmitAnswer(ctx context.Context, code string, answerID, questionID int64, remaining int) (domain.AnswerResult, error)
	NextQuestion(ctx context.Context, code string) (*domain.Question, error)
}

// State is the playback machine's current phase.
type State int

const (
	// StateLoading means no question has arrived yet.
	StateLoading State = iota
	// StateAwaitingAnswer shows a question with a running countdown.
	StateAwaitingAnswer
	// StateLocked means an answer (or timeout) has been recorded and the
	// result is on display; no further input is accepted.
	StateLocked
	// StateFailed means the start call did not produce a question; the
	// play-through can be retried via Begin.
	StateFailed
	// StateFinished means the server signalled completion.
	StateFinished
	// StateExited means the user abandoned the play-through.
	StateExited
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAwaitingAnswer:
		return "awaiting-answer"
	case StateLocked:
		return "locked"
	case StateFailed:
		return "failed"
	case StateFinished:
		return "finished"
	case StateExited:
		return "exited"
	}
	return "unknown"
}

// Game sequences one quiz play-through: question display, countdown,
// answer lock, result, advance. It is driven from a single goroutine —
// the runner's event loop — so transitions need no internal locking.
//
// The running score only ever grows by server-reported points; the
// locally-known correctness flag is styling, not scoring.
type Game struct {
	api          GameAPI
	session      domain.GameSession
	defaultLimit int

	state       State
	question    domain.Question
	index       int
	remaining   int
	score       int
	selected    int64
	hasSelected bool
	correct     bool
	lastAwarded int
}

// NewGame prepares a play-through for an already-created session handle.
func NewGame(api GameAPI, session domain.GameSession, defaultLimit int) *Game {
	if defaultLimit <= 0 {
		defaultLimit = 30
	}
	return &Game{
		api:          api,
		session:      session,
		defaultLimit: defaultLimit,
		state:        StateLoading,
	}
}

// Begin starts the play-through and loads the first question. Allowed
// from Loading and, as a retry, from Failed.
func (g *Game) Begin(ctx context.Context) error {
	if g.state != StateLoading && g.state != StateFailed {
		return nil
	}
	question, err := g.api.StartGameSession(ctx, g.session.Code)
	if err != nil {
		g.state = StateFailed
		return err
	}
	g.resetFor(*question)
	return nil
}

// Tick consumes one elapsed second of the countdown. Reaching zero locks
// the question with no selection; nothing is submitted on timeout.
func (g *Game) Tick() {
	if g.state != StateAwaitingAnswer {
		return
	}
	if g.remaining > 0 {
		g.remaining--
	}
	if g.remaining == 0 {
		g.state = StateLocked
		g.correct = false
	}
}

// Select locks in an option and submits it with the remaining seconds.
// The lock transition happens before the network call, so a second
// selection can never be recorded. The submission failing keeps the lock
// and awards nothing.
func (g *Game) Select(ctx context.Context, optionID int64) error {
	if g.state != StateAwaitingAnswer {
		return domain.ErrAnswerLocked
	}
	option, ok := g.question.Option(optionID)
	if !ok {
		return domain.ErrOptionNotFound
	}

	g.selected = optionID
	g.hasSelected = true
	g.correct = option.IsCorrect
	g.state = StateLocked

	result, err := g.api.SubmitAnswer(ctx, g.session.Code, optionID, g.question.ID, g.remaining)
	if err != nil {
		return err
	}
	g.score += result.Points
	g.lastAwarded = result.Points
	return nil
}

// Advance requests the next question. No further question, or a failed
// call, ends the play-through and discards the session handle.
func (g *Game) Advance(ctx context.Context) error {
	if g.state != StateLocked {
		return nil
	}
	question, err := g.api.NextQuestion(ctx, g.session.Code)
	if err != nil || question == nil {
		g.state = StateFinished
		return err
	}
	g.index++
	g.resetFor(*question)
	return nil
}

// Exit abandons the play-through without notifying the server.
func (g *Game) Exit() {
	g.state = StateExited
}

// resetFor replaces the current question and resets all per-question
// play state.
func (g *Game) resetFor(question domain.Question) {
	g.question = question
	g.remaining = question.TimeLimit
	if g.remaining <= 0 {
		g.remaining = g.defaultLimit
	}
	g.selected = 0
	g.hasSelected = false
	g.correct = false
	g.lastAwarded = 0
	g.state = StateAwaitingAnswer
}

// State returns the machine's current phase.
func (g *Game) State() State { return g.state }

// Question returns the current question; ok is false before the first
// one arrives.
func (g *Game) Question() (domain.Question, bool) {
	if g.state == StateLoading || g.state == StateFailed {
		return domain.Question{}, false
	}
	return g.question, true
}

// QuestionNumber is the 1-based index of the current question.
func (g *Game) QuestionNumber() int { return g.index + 1 }

// Remaining reports the countdown in seconds; it never goes negative.
func (g *Game) Remaining() int { return g.remaining }

// Score is the running sum of server-awarded points.
func (g *Game) Score() int { return g.score }

// Selected returns the locked-in option id, if any.
func (g *Game) Selected() (int64, bool) { return g.selected, g.hasSelected }

// Correct reports whether the locked selection was locally marked correct.
func (g *Game) Correct() bool { return g.correct }

// LastAwarded is the server's point grant for the locked question.
func (g *Game) LastAwarded() int { return g.lastAwarded }

// Session exposes the play-through handle.
func (g *Game) Session() domain.GameSession { return g.session }
