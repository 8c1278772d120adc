package game

import (
	"github.com/rs/zerolog"
)

// Reward values, always from the perspective of the mark that just moved.
// The trainer derives the opponent's view by negation; draws stay 0.5 for
// both sides because a draw is a shared neutral outcome, not zero-sum.
const (
	RewardWin         = 1.0
	RewardLoss        = -1.0
	RewardDraw        = 0.5
	RewardStep        = 0.0
	RewardInvalidMove = -10.0
)

// Environment owns the live board, legality checks and terminal/reward
// computation. It is not safe for concurrent use; the training loop and
// the replay driver each own one for the duration of a run.
type Environment struct {
	state    State
	terminal bool
	outcome  Outcome
	logger   zerolog.Logger
}

// NewEnvironment returns a reset environment.
func NewEnvironment(logger zerolog.Logger) *Environment {
	e := &Environment{
		logger: logger.With().Str("component", "environment").Logger(),
	}
	e.Reset()
	return e
}

// Reset clears the board and the terminal flag and returns the initial state.
func (e *Environment) Reset() State {
	e.state = EmptyState()
	e.terminal = false
	e.outcome = InProgress
	return e.state
}

// State returns the current board state.
func (e *Environment) State() State { return e.state }

// Outcome returns the outcome of the current position.
func (e *Environment) Outcome() Outcome { return e.outcome }

// IsTerminal reports whether the game has ended.
func (e *Environment) IsTerminal() bool { return e.terminal }

// AvailableActions returns the legal actions in the given state, ascending.
// It is empty exactly when the position is terminal: full, or already won.
func (e *Environment) AvailableActions(s State) []int {
	if Evaluate(s).IsTerminal() {
		return nil
	}
	return s.AvailableActions()
}

// Apply places mark on the given cell and advances the game.
//
// An illegal call (index out of range, occupied cell, or terminal game)
// leaves the environment untouched and returns the current state, the
// invalid-move penalty and a sentinel error. The trainer never triggers
// this path; interactive callers must pre-filter with AvailableActions and
// treat it as a guard.
//
// On success it returns the new state, the mover's reward and whether the
// game just ended.
func (e *Environment) Apply(action int, mark Mark) (State, float64, bool, error) {
	if mark != MarkX && mark != MarkO {
		return e.state, RewardInvalidMove, e.terminal, ErrInvalidMark
	}
	if e.terminal {
		return e.state, RewardInvalidMove, e.terminal, ErrGameOver
	}
	if action < 0 || action >= NumCells {
		return e.state, RewardInvalidMove, e.terminal, ErrInvalidAction
	}
	if e.state[action] != Empty {
		return e.state, RewardInvalidMove, e.terminal, ErrCellOccupied
	}

	next := e.state
	next[action] = mark
	e.state = next
	e.outcome = Evaluate(next)
	e.terminal = e.outcome.IsTerminal()

	reward := RewardStep
	switch {
	case e.outcome == Draw:
		reward = RewardDraw
	case e.outcome.Winner() == mark:
		reward = RewardWin
	case e.outcome.Winner() != Empty:
		reward = RewardLoss
	}

	if e.terminal {
		e.logger.Debug().
			Str("mark", mark.String()).
			Int("action", action).
			Str("outcome", e.outcome.String()).
			Float64("reward", reward).
			Msg("Game reached terminal state")
	}

	return next, reward, e.terminal, nil
}
