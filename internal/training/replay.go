package training

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/doribd/TicTacToe-AI-GUI/internal/agent"
	"github.com/doribd/TicTacToe-AI-GUI/internal/events"
	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
)

// ReplayMove is one move of an exploration-off game, emitted to whoever
// is rendering the replay. The final move of a game carries the terminal
// outcome.
type ReplayMove struct {
	Mark     game.Mark
	Action   int
	State    game.State
	Outcome  game.Outcome
	Terminal bool
}

// Replay runs one deterministic-policy game between two trained agents.
// Both agents' exploration rates are forced to zero for the duration and
// restored afterwards, so action selection is pure exploitation with
// random tie-breaking.
type Replay struct {
	env    *game.Environment
	agentX *agent.Agent
	agentO *agent.Agent
	bus    *events.Bus
	runID  string
	logger zerolog.Logger
}

// ReplayOption configures a Replay.
type ReplayOption func(*Replay)

// WithReplayEventBus publishes replay lifecycle events on the given bus.
func WithReplayEventBus(bus *events.Bus) ReplayOption {
	return func(r *Replay) { r.bus = bus }
}

// NewReplay wires a replay driver to an environment and two agents.
func NewReplay(env *game.Environment, agentX, agentO *agent.Agent, logger zerolog.Logger, opts ...ReplayOption) *Replay {
	r := &Replay{
		env:    env,
		agentX: agentX,
		agentO: agentO,
		runID:  uuid.NewString(),
		logger: logger.With().Str("component", "replay").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stream plays one game and sends each move on the returned channel. The
// channel is closed when the game ends, the context is cancelled, or the
// agents fail; cancellation is cooperative and checked between moves. The
// consumer owns pacing and rendering; the driver never reads its state.
func (r *Replay) Stream(ctx context.Context) <-chan ReplayMove {
	out := make(chan ReplayMove, game.NumCells)
	go func() {
		defer close(out)
		_, _, err := r.play(ctx, func(m ReplayMove) bool {
			select {
			case out <- m:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil {
			r.logger.Error().Err(err).Msg("Replay aborted")
		}
	}()
	return out
}

// Run plays one game synchronously and returns the full move sequence and
// the terminal outcome.
func (r *Replay) Run(ctx context.Context) ([]ReplayMove, game.Outcome, error) {
	var transcript []ReplayMove
	outcome, cancelled, err := r.play(ctx, func(m ReplayMove) bool {
		transcript = append(transcript, m)
		return true
	})
	if err != nil {
		return transcript, outcome, err
	}
	if cancelled {
		return transcript, outcome, ctx.Err()
	}
	return transcript, outcome, nil
}

// play drives the game, invoking emit for every move. emit returning
// false cancels the replay. Returns the final outcome and whether the
// game was cut short.
func (r *Replay) play(ctx context.Context, emit func(ReplayMove) bool) (game.Outcome, bool, error) {
	savedX, savedO := r.agentX.Epsilon(), r.agentO.Epsilon()
	r.agentX.SetEpsilon(0)
	r.agentO.SetEpsilon(0)
	defer func() {
		r.agentX.SetEpsilon(savedX)
		r.agentO.SetEpsilon(savedO)
	}()

	r.publish(events.NewReplayStartedEvent(r.runID))

	state := r.env.Reset()
	current := r.agentX
	moves := 0

	for {
		if err := ctx.Err(); err != nil {
			r.publish(events.NewReplayEndedEvent(r.runID, r.env.Outcome(), moves, true))
			return r.env.Outcome(), true, nil
		}

		available := r.env.AvailableActions(state)
		action, err := current.ChooseAction(state, available)
		if err != nil {
			r.publish(events.NewReplayEndedEvent(r.runID, r.env.Outcome(), moves, true))
			return r.env.Outcome(), true, fmt.Errorf("agent %s: %w", current.Mark().String(), err)
		}

		nextState, _, terminal, err := r.env.Apply(action, current.Mark())
		if err != nil {
			r.publish(events.NewReplayEndedEvent(r.runID, r.env.Outcome(), moves, true))
			return r.env.Outcome(), true, fmt.Errorf("agent %s move %d: %w", current.Mark().String(), action, err)
		}
		moves++

		m := ReplayMove{
			Mark:     current.Mark(),
			Action:   action,
			State:    nextState,
			Outcome:  r.env.Outcome(),
			Terminal: terminal,
		}
		r.publish(events.NewMoveAppliedEvent(r.runID, m.Mark, m.Action, m.State, m.Outcome))
		if !emit(m) {
			r.publish(events.NewReplayEndedEvent(r.runID, r.env.Outcome(), moves, true))
			return r.env.Outcome(), true, nil
		}

		if terminal {
			r.logger.Info().
				Str("outcome", m.Outcome.String()).
				Int("moves", moves).
				Msg("Replay finished")
			r.publish(events.NewReplayEndedEvent(r.runID, m.Outcome, moves, false))
			return m.Outcome, false, nil
		}

		state = nextState
		if current == r.agentX {
			current = r.agentO
		} else {
			current = r.agentX
		}
	}
}

func (r *Replay) publish(event events.Event) {
	if r.bus != nil {
		r.bus.Publish(event)
	}
}
