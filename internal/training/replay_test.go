package training

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
	"github.com/doribd/TicTacToe-AI-GUI/internal/testutil"
)

func TestReplay_RunPlaysForcedGame(t *testing.T) {
	x, o, states := forcedGameSetup(t)
	x.SetEpsilon(0.7)
	o.SetEpsilon(0.4)
	env := game.NewEnvironment(testutil.NopLogger())

	replay := NewReplay(env, x, o, testutil.NopLogger())
	transcript, outcome, err := replay.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, game.XWins, outcome)
	require.Len(t, transcript, 5)

	expected := []struct {
		mark   game.Mark
		action int
	}{
		{game.MarkX, 0}, {game.MarkO, 3}, {game.MarkX, 1}, {game.MarkO, 4}, {game.MarkX, 2},
	}
	for i, want := range expected {
		assert.Equal(t, want.mark, transcript[i].Mark, "move %d", i)
		assert.Equal(t, want.action, transcript[i].Action, "move %d", i)
		assert.Equal(t, states[i+1], transcript[i].State, "move %d", i)
	}

	last := transcript[len(transcript)-1]
	assert.True(t, last.Terminal)
	assert.Equal(t, game.XWins, last.Outcome)
	for _, m := range transcript[:len(transcript)-1] {
		assert.False(t, m.Terminal)
	}
}

func TestReplay_RestoresExplorationRates(t *testing.T) {
	x, o, _ := forcedGameSetup(t)
	x.SetEpsilon(0.7)
	o.SetEpsilon(0.4)
	env := game.NewEnvironment(testutil.NopLogger())

	replay := NewReplay(env, x, o, testutil.NopLogger())
	_, _, err := replay.Run(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 0.7, x.Epsilon(), 1e-12)
	assert.InDelta(t, 0.4, o.Epsilon(), 1e-12)
}

func TestReplay_DoesNotLearn(t *testing.T) {
	x, o, states := forcedGameSetup(t)
	env := game.NewEnvironment(testutil.NopLogger())

	replay := NewReplay(env, x, o, testutil.NopLogger())
	_, _, err := replay.Run(context.Background())
	require.NoError(t, err)

	// Replay only observes; the seeded estimates must be untouched.
	assert.Equal(t, 5.0, x.Table().Get(states[0], 0))
	assert.Equal(t, 5.0, x.Table().Get(states[4], 2))
	assert.Equal(t, 5.0, o.Table().Get(states[3], 4))
}

func TestReplay_StreamDeliversAllMoves(t *testing.T) {
	x, o, _ := forcedGameSetup(t)
	env := game.NewEnvironment(testutil.NopLogger())

	replay := NewReplay(env, x, o, testutil.NopLogger())
	var moves []ReplayMove
	for m := range replay.Stream(context.Background()) {
		moves = append(moves, m)
	}

	require.Len(t, moves, 5)
	assert.True(t, moves[4].Terminal)
	assert.Equal(t, game.XWins, moves[4].Outcome)
}

func TestReplay_StreamCancellation(t *testing.T) {
	x, o, _ := forcedGameSetup(t)
	env := game.NewEnvironment(testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	replay := NewReplay(env, x, o, testutil.NopLogger())
	ch := replay.Stream(ctx)

	var moves int
	for range ch {
		moves++
	}
	assert.Zero(t, moves, "a cancelled replay must not emit moves")
}

func TestReplay_RunCancelledReturnsContextError(t *testing.T) {
	x, o, _ := forcedGameSetup(t)
	env := game.NewEnvironment(testutil.NopLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	replay := NewReplay(env, x, o, testutil.NopLogger())
	_, _, err := replay.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
