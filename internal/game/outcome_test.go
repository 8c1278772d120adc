package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		expected Outcome
	}{
		{"empty board", "         ", InProgress},
		{"mid game", "XO X     ", InProgress},
		{"top row X", "XXX      ", XWins},
		{"middle row O", "   OOO   ", OWins},
		{"bottom row X", "      XXX", XWins},
		{"left column X", "X  X  X  ", XWins},
		{"middle column O", " O  O  O ", OWins},
		{"right column X", "  X  X  X", XWins},
		{"main diagonal X", "X   X   X", XWins},
		{"anti diagonal O", "  O O O  ", OWins},
		{"full board no line", "XOXXOOOXX", Draw},
		{"win on full board", "XXXOOXOXO", XWins},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(mustState(t, tt.layout)))
		})
	}
}

// Evaluate must be a pure function of the 9 cells: re-evaluating the same
// state always yields the same outcome, regardless of what was evaluated
// before.
func TestEvaluate_Deterministic(t *testing.T) {
	layouts := []string{"XXX      ", "XOXXOOOXX", "XO X     ", "         "}
	for _, layout := range layouts {
		s := mustState(t, layout)
		first := Evaluate(s)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Evaluate(s), "layout %q", layout)
		}
	}
}

func TestOutcome_Winner(t *testing.T) {
	assert.Equal(t, MarkX, XWins.Winner())
	assert.Equal(t, MarkO, OWins.Winner())
	assert.Equal(t, Empty, Draw.Winner())
	assert.Equal(t, Empty, InProgress.Winner())
}

func TestOutcome_IsTerminal(t *testing.T) {
	assert.False(t, InProgress.IsTerminal())
	assert.True(t, XWins.IsTerminal())
	assert.True(t, OWins.IsTerminal())
	assert.True(t, Draw.IsTerminal())
}
