package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
)

// The persisted form is one JSON object per agent mark: board-state key
// (9-character string) -> cell index (decimal string) -> estimate. Only
// stored entries are written; the zero default re-applies on load, so a
// lookup of an action that was never stored still yields 0.0.

// Save writes the table as JSON.
func (t *Table) Save(w io.Writer) error {
	out := make(map[string]map[string]float64, len(t.values))
	for state, row := range t.values {
		encoded := make(map[string]float64, len(row))
		for action, value := range row {
			encoded[strconv.Itoa(action)] = value
		}
		out[state.Key()] = encoded
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding value table: %w", err)
	}
	return nil
}

// Load replaces the table's contents with the JSON previously written by
// Save. On any decode or key error the table is left unchanged; a partial
// load never leaks into the agent.
func (t *Table) Load(r io.Reader) error {
	var in map[string]map[string]float64
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return fmt.Errorf("decoding value table: %w", err)
	}

	values := make(map[game.State]map[int]float64, len(in))
	for key, row := range in {
		state, ok := game.StateFromKey(key)
		if !ok {
			return fmt.Errorf("decoding value table: invalid state key %q", key)
		}
		decoded := make(map[int]float64, len(row))
		for actionKey, value := range row {
			action, err := strconv.Atoi(actionKey)
			if err != nil || action < 0 || action >= game.NumCells {
				return fmt.Errorf("decoding value table: invalid action key %q for state %q", actionKey, key)
			}
			decoded[action] = value
		}
		values[state] = decoded
	}

	t.values = values
	return nil
}

// SaveFile persists the table to path, creating or truncating the file.
func (t *Table) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating table file %s: %w", path, err)
	}
	if err := t.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("saving table to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing table file %s: %w", path, err)
	}
	return nil
}

// LoadFile restores the table from path. A missing file is not an error:
// the agent simply starts with an empty table. An unreadable or corrupt
// file is an error and leaves the table unchanged.
func (t *Table) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening table file %s: %w", path, err)
	}
	defer f.Close()

	if err := t.Load(f); err != nil {
		return fmt.Errorf("loading table from %s: %w", path, err)
	}
	return nil
}
