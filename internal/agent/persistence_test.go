package agent

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doribd/TicTacToe-AI-GUI/internal/testutil"
)

func TestTable_SaveLoadRoundTrip(t *testing.T) {
	src := NewTable()
	s1 := testutil.StateOf("         ")
	s2 := testutil.StateOf("X   O    ")
	src.Set(s1, 4, 0.821)
	src.Set(s1, 0, -1.0)
	src.Set(s2, 8, 0.5)

	var buf bytes.Buffer
	require.NoError(t, src.Save(&buf))

	dst := NewTable()
	require.NoError(t, dst.Load(&buf))

	assert.Equal(t, 0.821, dst.Get(s1, 4))
	assert.Equal(t, -1.0, dst.Get(s1, 0))
	assert.Equal(t, 0.5, dst.Get(s2, 8))
	assert.Equal(t, src.Len(), dst.Len())

	// The zero default must survive the round trip for entries that were
	// never stored.
	assert.Equal(t, 0.0, dst.Get(s1, 7))
	assert.Equal(t, 0.0, dst.Get(testutil.StateOf("OOO      "), 3))
}

func TestTable_LoadRejectsCorruptInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "this is not json"},
		{"truncated", `{"         ": {"4":`},
		{"bad state key", `{"XY": {"4": 0.5}}`},
		{"bad state mark", `{"ZZZZZZZZZ": {"4": 0.5}}`},
		{"bad action key", `{"         ": {"nine": 0.5}}`},
		{"action out of range", `{"         ": {"9": 0.5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable()
			s := testutil.StateOf("X        ")
			table.Set(s, 1, 0.25)

			err := table.Load(bytes.NewReader([]byte(tt.input)))
			require.Error(t, err)
			assert.Equal(t, 0.25, table.Get(s, 1), "failed load must leave the table unchanged")
			assert.Equal(t, 1, table.Len())
		})
	}
}

func TestTable_LoadFileMissingIsEmpty(t *testing.T) {
	table := NewTable()
	err := table.LoadFile(filepath.Join(t.TempDir(), "no_such_table.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestTable_SaveFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q_table_x.json")

	src := NewTable()
	s := testutil.StateOf(" X  O    ")
	src.Set(s, 6, -0.125)
	require.NoError(t, src.SaveFile(path))

	dst := NewTable()
	require.NoError(t, dst.LoadFile(path))
	assert.Equal(t, -0.125, dst.Get(s, 6))
}

func TestTable_LoadFileCorruptIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q_table_x.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	table := NewTable()
	assert.Error(t, table.LoadFile(path))
}
