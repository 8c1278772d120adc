// Package testutil provides shared helpers for tests.
package testutil

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
)

// NewTestRNG creates a deterministic random number generator for tests.
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// StateOf builds a board state from a 9-character layout string, each
// character one of ' ', 'X', 'O'. Panics on malformed input so broken
// fixtures fail loudly.
func StateOf(layout string) game.State {
	s, ok := game.StateFromKey(layout)
	if !ok {
		panic("testutil: malformed board layout " + layout)
	}
	return s
}
