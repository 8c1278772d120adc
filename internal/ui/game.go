// Package ui is the interactive surface: a clickable board for human
// play and an AI-vs-AI replay viewer. It drives the environment only
// through AvailableActions/Apply and the agents only through the replay
// driver; it never touches a value table.
package ui

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/doribd/TicTacToe-AI-GUI/internal/agent"
	"github.com/doribd/TicTacToe-AI-GUI/internal/config"
	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
	"github.com/doribd/TicTacToe-AI-GUI/internal/training"
	"github.com/doribd/TicTacToe-AI-GUI/internal/ui/input"
	"github.com/doribd/TicTacToe-AI-GUI/internal/ui/renderer"
)

const statusBarHeight = 60

type mode int

const (
	modeHuman mode = iota
	modeReplay
)

// Game is the Ebitengine game instance.
type Game struct {
	env    *game.Environment
	agentX *agent.Agent
	agentO *agent.Agent

	boardRenderer *renderer.BoardRenderer
	inputHandler  *input.Handler
	defaultFont   font.Face
	logger        zerolog.Logger

	mode        mode
	currentMark game.Mark
	status      string

	// Replay state. The driver runs on its own goroutine and hands one
	// move per message over replayMoves; this side owns pacing and
	// cancellation.
	replayMoves  <-chan training.ReplayMove
	replayCancel context.CancelFunc
	replayBoard  game.State
	delayFrames  int
}

// NewGame creates the interactive surface around a fresh environment and
// two trained agents.
func NewGame(env *game.Environment, agentX, agentO *agent.Agent, logger zerolog.Logger) *Game {
	cellSize := config.Get().UI.CellSize
	g := &Game{
		env:           env,
		agentX:        agentX,
		agentO:        agentO,
		defaultFont:   basicfont.Face7x13,
		logger:        logger.With().Str("component", "ui").Logger(),
		currentMark:   game.MarkX,
		boardRenderer: renderer.NewBoardRenderer(cellSize, basicfont.Face7x13),
		inputHandler:  input.NewHandler(cellSize),
	}
	g.env.Reset()
	g.status = g.turnMessage()
	return g
}

// Update advances the UI by one frame.
func (g *Game) Update() error {
	g.inputHandler.Update()

	if g.inputHandler.KeyJustPressed(ebiten.KeyR) {
		g.restart()
		return nil
	}
	if g.mode == modeHuman && g.inputHandler.KeyJustPressed(ebiten.KeyW) {
		g.startReplay()
		return nil
	}

	switch g.mode {
	case modeHuman:
		g.updateHuman()
	case modeReplay:
		g.updateReplay()
	}
	return nil
}

func (g *Game) updateHuman() {
	if g.env.IsTerminal() {
		g.boardRenderer.SetHover(-1)
		return
	}
	g.boardRenderer.SetHover(g.inputHandler.HoveredCell())

	cell := g.inputHandler.ClickedCell()
	if cell < 0 {
		return
	}

	// Pre-filter through AvailableActions; Apply's invalid-move branch is
	// a guard, not a control path.
	legal := false
	for _, a := range g.env.AvailableActions(g.env.State()) {
		if a == cell {
			legal = true
			break
		}
	}
	if !legal {
		return
	}

	_, _, terminal, err := g.env.Apply(cell, g.currentMark)
	if err != nil {
		g.logger.Error().Err(err).Int("cell", cell).Msg("Move rejected")
		return
	}

	if terminal {
		g.status = g.outcomeMessage(g.env.Outcome())
		return
	}
	g.currentMark = g.currentMark.Opponent()
	g.status = g.turnMessage()
}

func (g *Game) updateReplay() {
	g.boardRenderer.SetHover(-1)

	if g.delayFrames > 0 {
		g.delayFrames--
		return
	}

	select {
	case m, ok := <-g.replayMoves:
		if !ok {
			g.finishReplay()
			return
		}
		g.replayBoard = m.State
		if m.Terminal {
			g.status = g.outcomeMessage(m.Outcome)
		} else {
			g.status = fmt.Sprintf("AI (%s) played cell %d", m.Mark.String(), m.Action)
		}
		g.delayFrames = replayDelayFrames()
	default:
		// Driver not ready yet; keep rendering.
	}
}

func (g *Game) startReplay() {
	ctx, cancel := context.WithCancel(context.Background())
	rep := training.NewReplay(g.env, g.agentX, g.agentO, g.logger)

	g.mode = modeReplay
	g.replayCancel = cancel
	g.replayMoves = rep.Stream(ctx)
	g.replayBoard = game.EmptyState()
	g.delayFrames = replayDelayFrames()
	g.status = "AI (X) thinking..."
	g.logger.Info().Msg("Starting AI vs AI playback")
}

// finishReplay returns to human mode once the move stream is drained.
func (g *Game) finishReplay() {
	if g.replayCancel != nil {
		g.replayCancel()
		g.replayCancel = nil
	}
	g.replayMoves = nil
	g.mode = modeHuman
	// Leave the final board and outcome on screen; R starts a new game.
}

func (g *Game) restart() {
	if g.mode == modeReplay {
		if g.replayCancel != nil {
			g.replayCancel()
			g.replayCancel = nil
		}
		// Drain so the driver goroutine can exit promptly.
		if g.replayMoves != nil {
			for range g.replayMoves {
			}
			g.replayMoves = nil
		}
		g.mode = modeHuman
	}
	g.env.Reset()
	g.currentMark = game.MarkX
	g.status = g.turnMessage()
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	board := g.env.State()
	if g.mode == modeReplay {
		board = g.replayBoard
	}
	g.boardRenderer.Draw(screen, board)
	g.boardRenderer.DrawStatus(screen, g.status)
}

// Layout sets the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.boardRenderer.BoardSize()
	return size, size + statusBarHeight
}

func (g *Game) turnMessage() string {
	return fmt.Sprintf("Player %s's turn (W: watch AI, R: restart)", g.currentMark.String())
}

func (g *Game) outcomeMessage(o game.Outcome) string {
	if o == game.Draw {
		return "It's a draw! (R: restart)"
	}
	return fmt.Sprintf("Player %s wins! (R: restart)", o.Winner().String())
}

// replayDelayFrames converts the configured per-move delay into frames,
// re-read every move so config hot-reload takes effect mid-replay.
func replayDelayFrames() int {
	ms := config.Get().UI.ReplayMoveDelay
	return ms * int(ebiten.TPS()) / 1000
}
