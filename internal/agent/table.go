package agent

import (
	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
)

// Table is a two-level action-value map: state -> action -> estimate.
// Lookups of entries that were never written return 0.0; inner maps are
// created lazily on first write. Each Table is owned by exactly one Agent
// and mutated only by that Agent's Update or by bulk Load.
type Table struct {
	values map[game.State]map[int]float64
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{values: make(map[game.State]map[int]float64)}
}

// Get returns the stored estimate for (state, action), or 0.0 if absent.
func (t *Table) Get(s game.State, action int) float64 {
	return t.values[s][action]
}

// Set stores an estimate for (state, action).
func (t *Table) Set(s game.State, action int, value float64) {
	row, ok := t.values[s]
	if !ok {
		row = make(map[int]float64, game.NumCells)
		t.values[s] = row
	}
	row[action] = value
}

// MaxOver returns the largest estimate among the given actions in the
// given state, treating unseen actions as 0.0. It returns 0.0 for an
// empty action set, which is the bootstrap value of a terminal transition.
func (t *Table) MaxOver(s game.State, actions []int) float64 {
	if len(actions) == 0 {
		return 0.0
	}
	row := t.values[s]
	max := row[actions[0]]
	for _, a := range actions[1:] {
		if v := row[a]; v > max {
			max = v
		}
	}
	return max
}

// States returns the number of states with at least one stored estimate.
func (t *Table) States() int { return len(t.values) }

// Len returns the total number of stored (state, action) estimates.
func (t *Table) Len() int {
	n := 0
	for _, row := range t.values {
		n += len(row)
	}
	return n
}
