package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
)

// -----------------------------------------------------------------------------
// Colour definitions
// -----------------------------------------------------------------------------

var (
	BackgroundColor = color.RGBA{245, 245, 245, 255}
	GridColor       = color.RGBA{60, 60, 60, 255}
	MarkXColor      = color.RGBA{20, 20, 20, 255}
	MarkOColor      = color.RGBA{200, 50, 50, 255}
	HoverColor      = color.RGBA{210, 225, 240, 255}
	StatusColor     = color.RGBA{20, 20, 20, 255}
)

const (
	gridLineWidth = 2.0
	markLineWidth = 6.0
	markInset     = 0.22 // fraction of cell size left blank around a mark
)

// BoardRenderer draws the 3x3 board and a status line.
type BoardRenderer struct {
	cellSize    int
	defaultFont font.Face

	hoverCell int // -1 when nothing hovered
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(cellSize int, f font.Face) *BoardRenderer {
	return &BoardRenderer{cellSize: cellSize, defaultFont: f, hoverCell: -1}
}

// SetHover highlights one cell, or clears the highlight with -1.
func (br *BoardRenderer) SetHover(cell int) { br.hoverCell = cell }

// BoardSize returns the pixel width/height of the drawn board.
func (br *BoardRenderer) BoardSize() int { return br.cellSize * 3 }

// Draw renders the given state onto the supplied Ebiten screen.
func (br *BoardRenderer) Draw(screen *ebiten.Image, state game.State) {
	screen.Fill(BackgroundColor)

	size := float32(br.BoardSize())
	cell := float32(br.cellSize)

	if br.hoverCell >= 0 && br.hoverCell < game.NumCells && state[br.hoverCell] == game.Empty {
		col := br.hoverCell % 3
		row := br.hoverCell / 3
		vector.DrawFilledRect(screen, float32(col)*cell, float32(row)*cell, cell, cell, HoverColor, true)
	}

	// Grid pass
	for i := 1; i < 3; i++ {
		offset := float32(i) * cell
		vector.StrokeLine(screen, offset, 0, offset, size, gridLineWidth, GridColor, true)
		vector.StrokeLine(screen, 0, offset, size, offset, gridLineWidth, GridColor, true)
	}

	// Mark pass
	for i, m := range state {
		col := i % 3
		row := i / 3
		x := float32(col) * cell
		y := float32(row) * cell
		inset := cell * markInset

		switch m {
		case game.MarkX:
			vector.StrokeLine(screen, x+inset, y+inset, x+cell-inset, y+cell-inset, markLineWidth, MarkXColor, true)
			vector.StrokeLine(screen, x+cell-inset, y+inset, x+inset, y+cell-inset, markLineWidth, MarkXColor, true)
		case game.MarkO:
			cx := x + cell/2
			cy := y + cell/2
			vector.StrokeCircle(screen, cx, cy, cell/2-inset, markLineWidth, MarkOColor, true)
		}
	}
}

// DrawStatus renders the status message below the board.
func (br *BoardRenderer) DrawStatus(screen *ebiten.Image, message string) {
	text.Draw(screen, message, br.defaultFont, 10, br.BoardSize()+24, StatusColor)
}
