package game

import "strings"

// Mark identifies who occupies a cell.
type Mark byte

const (
	Empty Mark = ' '
	MarkX Mark = 'X'
	MarkO Mark = 'O'
)

// Opponent returns the other player's mark. Empty has no opponent and is
// returned unchanged.
func (m Mark) Opponent() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	}
	return m
}

func (m Mark) String() string { return string(rune(m)) }

// NumCells is the number of cells on the board. Actions are cell indices
// in [0, NumCells), row-major: 0 1 2 / 3 4 5 / 6 7 8.
const NumCells = 9

// State is an immutable snapshot of the board, one Mark per cell.
// It is comparable, so it can be used directly as a map key.
type State [NumCells]Mark

// EmptyState returns the state of a cleared board.
func EmptyState() State {
	var s State
	for i := range s {
		s[i] = Empty
	}
	return s
}

// StateFromKey parses the 9-character persistence key produced by Key.
// Each character must be one of ' ', 'X', 'O'.
func StateFromKey(key string) (State, bool) {
	var s State
	if len(key) != NumCells {
		return s, false
	}
	for i := 0; i < NumCells; i++ {
		m := Mark(key[i])
		if m != Empty && m != MarkX && m != MarkO {
			return s, false
		}
		s[i] = m
	}
	return s, true
}

// Key returns the 9-character string form of the state, used as the
// persistence key and in logs.
func (s State) Key() string {
	b := make([]byte, NumCells)
	for i, m := range s {
		b[i] = byte(m)
	}
	return string(b)
}

// IsFull reports whether every cell is occupied.
func (s State) IsFull() bool {
	for _, m := range s {
		if m == Empty {
			return false
		}
	}
	return true
}

// AvailableActions returns the indices of empty cells in ascending order.
// The result is empty for a full board.
func (s State) AvailableActions() []int {
	actions := make([]int, 0, NumCells)
	for i, m := range s {
		if m == Empty {
			actions = append(actions, i)
		}
	}
	return actions
}

// String renders the board as a 3x3 ASCII grid for console output.
func (s State) String() string {
	var sb strings.Builder
	sb.WriteString("---+---+---\n")
	for row := 0; row < 3; row++ {
		sb.WriteString(" ")
		sb.WriteByte(byte(s[row*3]))
		sb.WriteString(" | ")
		sb.WriteByte(byte(s[row*3+1]))
		sb.WriteString(" | ")
		sb.WriteByte(byte(s[row*3+2]))
		sb.WriteString("\n---+---+---\n")
	}
	return sb.String()
}
