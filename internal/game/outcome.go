package game

// Outcome is the result of evaluating a board position.
type Outcome int

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Winner returns the winning mark, or Empty if the outcome has no winner.
func (o Outcome) Winner() Mark {
	switch o {
	case XWins:
		return MarkX
	case OWins:
		return MarkO
	}
	return Empty
}

// IsTerminal reports whether the outcome ends the game.
func (o Outcome) IsTerminal() bool { return o != InProgress }

// winLines are the 8 ways to make three in a row: 3 rows, 3 columns,
// 2 diagonals.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Evaluate computes the outcome of a position. It depends only on the 9
// cell values, never on move history.
func Evaluate(s State) Outcome {
	for _, line := range winLines {
		m := s[line[0]]
		if m != Empty && m == s[line[1]] && m == s[line[2]] {
			if m == MarkX {
				return XWins
			}
			return OWins
		}
	}
	if s.IsFull() {
		return Draw
	}
	return InProgress
}
