// Package input translates mouse state into board cells.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Handler tracks the cursor and click state relative to the board grid.
type Handler struct {
	cellSize    int
	hoveredCell int
	clickedCell int
}

// NewHandler creates an input handler for a board drawn at the given cell
// size, anchored at the window origin.
func NewHandler(cellSize int) *Handler {
	return &Handler{cellSize: cellSize, hoveredCell: -1, clickedCell: -1}
}

// Update samples the mouse once per frame. Call at the top of the game's
// Update.
func (h *Handler) Update() {
	x, y := ebiten.CursorPosition()
	h.hoveredCell = h.CellAt(x, y)

	h.clickedCell = -1
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.clickedCell = h.hoveredCell
	}
}

// CellAt maps window coordinates to a cell index, or -1 when the point is
// outside the board.
func (h *Handler) CellAt(x, y int) int {
	if x < 0 || y < 0 {
		return -1
	}
	col := x / h.cellSize
	row := y / h.cellSize
	if col > 2 || row > 2 {
		return -1
	}
	return row*3 + col
}

// HoveredCell returns the cell under the cursor, or -1.
func (h *Handler) HoveredCell() int { return h.hoveredCell }

// ClickedCell returns the cell clicked this frame, or -1.
func (h *Handler) ClickedCell() int { return h.clickedCell }

// KeyJustPressed reports a one-shot key press.
func (h *Handler) KeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
