// Package training drives self-play between two tabular agents against a
// shared environment, and replays trained agents with exploration off.
package training

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/doribd/TicTacToe-AI-GUI/internal/agent"
	"github.com/doribd/TicTacToe-AI-GUI/internal/events"
	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
)

// Stats tallies episode outcomes across a training run.
type Stats struct {
	XWins int
	OWins int
	Draws int
}

// Total returns the number of completed episodes.
func (s Stats) Total() int { return s.XWins + s.OWins + s.Draws }

func (s *Stats) record(outcome game.Outcome) {
	switch outcome {
	case game.XWins:
		s.XWins++
	case game.OWins:
		s.OWins++
	case game.Draw:
		s.Draws++
	}
}

// move is the most recent (state, action) taken by one mark within the
// current episode, held for the deferred opponent update.
type move struct {
	state  game.State
	action int
}

// Trainer runs repeated self-play episodes between two agents sharing one
// environment. Single-threaded; deterministic apart from the agents'
// random sources.
type Trainer struct {
	env    *game.Environment
	agentX *agent.Agent
	agentO *agent.Agent

	bus            *events.Bus // optional
	reportInterval int         // episodes between progress logs, 0 disables
	runID          string
	logger         zerolog.Logger
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithEventBus publishes episode and move events on the given bus.
func WithEventBus(bus *events.Bus) TrainerOption {
	return func(t *Trainer) { t.bus = bus }
}

// WithReportInterval logs a progress line every n episodes.
func WithReportInterval(n int) TrainerOption {
	return func(t *Trainer) { t.reportInterval = n }
}

// NewTrainer wires two agents to one environment. agentX always moves
// first, matching the game's convention.
func NewTrainer(env *game.Environment, agentX, agentO *agent.Agent, logger zerolog.Logger, opts ...TrainerOption) *Trainer {
	t := &Trainer{
		env:    env,
		agentX: agentX,
		agentO: agentO,
		runID:  uuid.NewString(),
		logger: logger.With().Str("component", "trainer").Logger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With().Str("run_id", t.runID).Logger()
	return t
}

// RunID identifies this trainer's run in published events.
func (t *Trainer) RunID() string { return t.runID }

// Run trains for the given number of episodes and returns the outcome
// tally. Zero episodes is valid and leaves both tables untouched. The
// context is checked between episodes; cancellation returns the tally so
// far together with the context's error.
func (t *Trainer) Run(ctx context.Context, episodes int) (Stats, error) {
	start := time.Now()
	var stats Stats

	t.logger.Info().Int("episodes", episodes).Msg("Starting training")
	t.publish(events.NewTrainingStartedEvent(t.runID, episodes))

	for episode := 0; episode < episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("training cancelled after %d episodes: %w", episode, err)
		}

		t.publish(events.NewEpisodeStartedEvent(t.runID, episode))

		outcome, moves, err := t.runEpisode()
		if err != nil {
			return stats, fmt.Errorf("episode %d: %w", episode, err)
		}
		stats.record(outcome)

		// Exploration decays once per completed episode, never mid-episode.
		t.agentX.Decay()
		t.agentO.Decay()

		t.publish(events.NewEpisodeEndedEvent(t.runID, episode, outcome, moves,
			t.agentX.Epsilon(), t.agentO.Epsilon()))

		if t.reportInterval > 0 && (episode+1)%t.reportInterval == 0 {
			t.logger.Info().
				Int("episode", episode+1).
				Int("x_wins", stats.XWins).
				Int("o_wins", stats.OWins).
				Int("draws", stats.Draws).
				Float64("epsilon_x", t.agentX.Epsilon()).
				Msg("Training progress")
		}
	}

	t.logger.Info().
		Int("x_wins", stats.XWins).
		Int("o_wins", stats.OWins).
		Int("draws", stats.Draws).
		Dur("elapsed", time.Since(start)).
		Msg("Training finished")
	t.publish(events.NewTrainingEndedEvent(t.runID, stats.XWins, stats.OWins, stats.Draws, time.Since(start)))

	return stats, nil
}

// runEpisode plays one full self-play game, updating both tables as it
// goes, and returns the terminal outcome and the number of moves played.
//
// Credit assignment alternates: the mover's transition is updated
// immediately with its own reward, while the opponent's previous move is
// closed out one turn later, when the consequence of that move (the board
// the opponent handed over) is known. A draw is worth 0.5 to both sides;
// win/loss rewards are negated for the opponent.
func (t *Trainer) runEpisode() (game.Outcome, int, error) {
	state := t.env.Reset()
	current, other := t.agentX, t.agentO
	lastMove := make(map[game.Mark]move, 2)
	moves := 0

	for {
		available := t.env.AvailableActions(state)

		action, err := current.ChooseAction(state, available)
		if err != nil {
			// Available actions disagreed with termination detection;
			// nothing sane can continue from here.
			return game.InProgress, moves, fmt.Errorf("agent %s: %w", current.Mark().String(), err)
		}

		nextState, reward, terminal, err := t.env.Apply(action, current.Mark())
		if err != nil {
			return game.InProgress, moves, fmt.Errorf("agent %s move %d: %w", current.Mark().String(), action, err)
		}
		moves++

		nextAvailable := t.env.AvailableActions(nextState)

		// The mover's own transition, learned immediately.
		current.Update(state, action, reward, nextState, nextAvailable)

		// Deferred credit for the opponent's previous move. Its "next"
		// position is the board before the current move, since that is
		// what the opponent actually observed as the consequence of its
		// own last action.
		if prev, ok := lastMove[other.Mark()]; ok {
			other.Update(prev.state, prev.action, opponentReward(reward), state, available)
		}

		lastMove[current.Mark()] = move{state: state, action: action}

		t.publish(events.NewMoveAppliedEvent(t.runID, current.Mark(), action, nextState, t.env.Outcome()))

		if terminal {
			// Close out the episode with terminal-valued updates: the
			// mover's final transition once more with the same inputs
			// (see trainer tests, which pin this double application),
			// and the opponent's last move with the true final reward
			// and no bootstrapping.
			current.Update(state, action, reward, nextState, nextAvailable)
			if prev, ok := lastMove[other.Mark()]; ok {
				other.Update(prev.state, prev.action, opponentReward(reward), nextState, nil)
			}
			return t.env.Outcome(), moves, nil
		}

		state = nextState
		current, other = other, current
	}
}

// opponentReward converts the mover's reward into the opponent's: a draw
// is neutral and shared, everything else is zero-sum.
func opponentReward(reward float64) float64 {
	if reward == game.RewardDraw {
		return reward
	}
	return -reward
}

func (t *Trainer) publish(event events.Event) {
	if t.bus != nil {
		t.bus.Publish(event)
	}
}
