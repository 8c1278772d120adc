package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_CellAt(t *testing.T) {
	h := NewHandler(100)

	tests := []struct {
		name     string
		x, y     int
		expected int
	}{
		{"top left corner", 0, 0, 0},
		{"inside top left", 99, 99, 0},
		{"top middle", 150, 10, 1},
		{"center", 150, 150, 4},
		{"bottom right", 299, 299, 8},
		{"below board", 150, 340, -1},
		{"right of board", 310, 150, -1},
		{"negative x", -5, 50, -1},
		{"negative y", 50, -5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, h.CellAt(tt.x, tt.y))
		})
	}
}
