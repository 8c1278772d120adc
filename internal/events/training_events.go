package events

import (
	"time"

	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
)

// Event type constants
const (
	TypeTrainingStarted = "training.started"
	TypeTrainingEnded   = "training.ended"
	TypeEpisodeStarted  = "episode.started"
	TypeEpisodeEnded    = "episode.ended"
	TypeMoveApplied     = "move.applied"
	TypeReplayStarted   = "replay.started"
	TypeReplayEnded     = "replay.ended"
)

// TrainingStartedEvent is published once at the beginning of a training run.
type TrainingStartedEvent struct {
	BaseEvent
	Episodes int
}

func NewTrainingStartedEvent(runID string, episodes int) *TrainingStartedEvent {
	return &TrainingStartedEvent{
		BaseEvent: BaseEvent{EventType: TypeTrainingStarted, Time: time.Now(), Run: runID},
		Episodes:  episodes,
	}
}

// TrainingEndedEvent is published once when a training run finishes.
type TrainingEndedEvent struct {
	BaseEvent
	XWins    int
	OWins    int
	Draws    int
	Duration time.Duration
}

func NewTrainingEndedEvent(runID string, xWins, oWins, draws int, duration time.Duration) *TrainingEndedEvent {
	return &TrainingEndedEvent{
		BaseEvent: BaseEvent{EventType: TypeTrainingEnded, Time: time.Now(), Run: runID},
		XWins:     xWins,
		OWins:     oWins,
		Draws:     draws,
		Duration:  duration,
	}
}

// EpisodeStartedEvent is published at the start of each self-play episode.
type EpisodeStartedEvent struct {
	BaseEvent
	Episode int
}

func NewEpisodeStartedEvent(runID string, episode int) *EpisodeStartedEvent {
	return &EpisodeStartedEvent{
		BaseEvent: BaseEvent{EventType: TypeEpisodeStarted, Time: time.Now(), Run: runID},
		Episode:   episode,
	}
}

// EpisodeEndedEvent is published when an episode reaches a terminal state.
type EpisodeEndedEvent struct {
	BaseEvent
	Episode  int
	Outcome  game.Outcome
	Moves    int
	EpsilonX float64
	EpsilonO float64
}

func NewEpisodeEndedEvent(runID string, episode int, outcome game.Outcome, moves int, epsX, epsO float64) *EpisodeEndedEvent {
	return &EpisodeEndedEvent{
		BaseEvent: BaseEvent{EventType: TypeEpisodeEnded, Time: time.Now(), Run: runID},
		Episode:   episode,
		Outcome:   outcome,
		Moves:     moves,
		EpsilonX:  epsX,
		EpsilonO:  epsO,
	}
}

// MoveAppliedEvent is published after every successful move, during both
// training and replay.
type MoveAppliedEvent struct {
	BaseEvent
	Mark    game.Mark
	Action  int
	State   game.State
	Outcome game.Outcome
}

func NewMoveAppliedEvent(runID string, mark game.Mark, action int, state game.State, outcome game.Outcome) *MoveAppliedEvent {
	return &MoveAppliedEvent{
		BaseEvent: BaseEvent{EventType: TypeMoveApplied, Time: time.Now(), Run: runID},
		Mark:      mark,
		Action:    action,
		State:     state,
		Outcome:   outcome,
	}
}

// ReplayStartedEvent is published when an exploration-off replay begins.
type ReplayStartedEvent struct {
	BaseEvent
}

func NewReplayStartedEvent(runID string) *ReplayStartedEvent {
	return &ReplayStartedEvent{
		BaseEvent: BaseEvent{EventType: TypeReplayStarted, Time: time.Now(), Run: runID},
	}
}

// ReplayEndedEvent is published when a replay finishes or is cancelled.
type ReplayEndedEvent struct {
	BaseEvent
	Outcome   game.Outcome
	Moves     int
	Cancelled bool
}

func NewReplayEndedEvent(runID string, outcome game.Outcome, moves int, cancelled bool) *ReplayEndedEvent {
	return &ReplayEndedEvent{
		BaseEvent: BaseEvent{EventType: TypeReplayEnded, Time: time.Now(), Run: runID},
		Outcome:   outcome,
		Moves:     moves,
		Cancelled: cancelled,
	}
}
