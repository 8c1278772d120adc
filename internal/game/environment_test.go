package game

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv() *Environment {
	return NewEnvironment(zerolog.Nop())
}

func TestEnvironment_Reset(t *testing.T) {
	env := newTestEnv()
	_, _, _, err := env.Apply(4, MarkX)
	require.NoError(t, err)

	s := env.Reset()
	assert.Equal(t, EmptyState(), s)
	assert.False(t, env.IsTerminal())
	assert.Equal(t, InProgress, env.Outcome())
	assert.Len(t, env.AvailableActions(s), NumCells)
}

func TestEnvironment_ApplyCenterOpeningMove(t *testing.T) {
	env := newTestEnv()

	next, reward, terminal, err := env.Apply(4, MarkX)
	require.NoError(t, err)

	assert.Equal(t, MarkX, next[4])
	assert.Equal(t, RewardStep, reward)
	assert.False(t, terminal)
	assert.Len(t, env.AvailableActions(next), 8)
}

func TestEnvironment_ApplyWinningMove(t *testing.T) {
	env := newTestEnv()
	moves := []struct {
		action int
		mark   Mark
	}{
		{0, MarkX}, {3, MarkO}, {1, MarkX}, {4, MarkO},
	}
	for _, m := range moves {
		_, _, _, err := env.Apply(m.action, m.mark)
		require.NoError(t, err)
	}

	next, reward, terminal, err := env.Apply(2, MarkX)
	require.NoError(t, err)

	assert.True(t, terminal)
	assert.Equal(t, XWins, env.Outcome())
	assert.Equal(t, RewardWin, reward)
	assert.Empty(t, env.AvailableActions(next))
	assert.NotContains(t, next.AvailableActions(), 0)
	assert.NotContains(t, next.AvailableActions(), 1)
	assert.NotContains(t, next.AvailableActions(), 2)
}

func TestEnvironment_ForcedDrawOnFullBoard(t *testing.T) {
	env := newTestEnv()
	// X O X / X O O / O X _ then X fills the last cell: no line anywhere.
	moves := []struct {
		action int
		mark   Mark
	}{
		{0, MarkX}, {1, MarkO}, {2, MarkX},
		{4, MarkO}, {3, MarkX}, {5, MarkO},
		{7, MarkX}, {6, MarkO},
	}
	for _, m := range moves {
		_, _, terminal, err := env.Apply(m.action, m.mark)
		require.NoError(t, err)
		require.False(t, terminal)
	}

	next, reward, terminal, err := env.Apply(8, MarkX)
	require.NoError(t, err)

	assert.True(t, terminal)
	assert.Equal(t, Draw, env.Outcome())
	assert.Equal(t, RewardDraw, reward)
	assert.True(t, next.IsFull())
}

func TestEnvironment_InvalidMoves(t *testing.T) {
	t.Run("occupied cell", func(t *testing.T) {
		env := newTestEnv()
		_, _, _, err := env.Apply(4, MarkX)
		require.NoError(t, err)
		before := env.State()

		s, reward, terminal, err := env.Apply(4, MarkO)
		assert.ErrorIs(t, err, ErrCellOccupied)
		assert.Equal(t, RewardInvalidMove, reward)
		assert.False(t, terminal)
		assert.Equal(t, before, s, "state must not change on an invalid move")
		assert.Equal(t, before, env.State())
	})

	t.Run("out of range", func(t *testing.T) {
		env := newTestEnv()
		_, reward, _, err := env.Apply(9, MarkX)
		assert.ErrorIs(t, err, ErrInvalidAction)
		assert.Equal(t, RewardInvalidMove, reward)

		_, _, _, err = env.Apply(-1, MarkX)
		assert.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("terminal environment", func(t *testing.T) {
		env := newTestEnv()
		for _, m := range []struct {
			action int
			mark   Mark
		}{{0, MarkX}, {3, MarkO}, {1, MarkX}, {4, MarkO}, {2, MarkX}} {
			_, _, _, err := env.Apply(m.action, m.mark)
			require.NoError(t, err)
		}
		require.True(t, env.IsTerminal())
		before := env.State()

		s, reward, terminal, err := env.Apply(5, MarkO)
		assert.ErrorIs(t, err, ErrGameOver)
		assert.Equal(t, RewardInvalidMove, reward)
		assert.True(t, terminal)
		assert.Equal(t, before, s)
		assert.Equal(t, XWins, env.Outcome(), "outcome must survive a rejected move")
	})

	t.Run("bad mark", func(t *testing.T) {
		env := newTestEnv()
		_, _, _, err := env.Apply(0, Empty)
		assert.ErrorIs(t, err, ErrInvalidMark)
	})
}

// AvailableActions must be empty exactly when the position is terminal,
// for any board handed to it, not just the environment's current one.
func TestEnvironment_AvailableActionsMatchesTermination(t *testing.T) {
	env := newTestEnv()
	tests := []struct {
		layout   string
		terminal bool
	}{
		{"         ", false},
		{"XO X     ", false},
		{"XXX      ", true},
		{"XXXOO    ", true},
		{"XOXXOOOXX", true},
		{"XOXXOOOX ", false},
	}

	for _, tt := range tests {
		s := mustState(t, tt.layout)
		actions := env.AvailableActions(s)
		if tt.terminal {
			assert.Empty(t, actions, "layout %q", tt.layout)
			assert.True(t, Evaluate(s).IsTerminal())
		} else {
			assert.NotEmpty(t, actions, "layout %q", tt.layout)
			assert.False(t, Evaluate(s).IsTerminal())
		}
	}
}
