package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/doribd/TicTacToe-AI-GUI/internal/agent"
	"github.com/doribd/TicTacToe-AI-GUI/internal/config"
	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
	"github.com/doribd/TicTacToe-AI-GUI/internal/ui"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	setupLogging(*logLevel, cfg.Logging.Format)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Agent construction either succeeds or the program stops; there is
	// no inert fallback agent.
	agentX, err := agent.New(game.MarkX, cfg.Agents.X, rng, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to construct agent X")
	}
	agentO, err := agent.New(game.MarkO, cfg.Agents.O, rng, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to construct agent O")
	}

	// Missing artifacts just mean untrained agents; a corrupt artifact is
	// fatal rather than silently playing with a half-loaded table.
	if err := agentX.Table().LoadFile(cfg.Persistence.XTableFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to load X value table")
	}
	if err := agentO.Table().LoadFile(cfg.Persistence.OTableFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to load O value table")
	}
	if agentX.Table().States() == 0 || agentO.Table().States() == 0 {
		log.Warn().Msg("One or both value tables are empty; AI playback will be untrained")
	}

	// Replay pacing follows the config file live.
	config.Watch(func() {
		log.Info().
			Int("replay_move_delay_ms", config.Get().UI.ReplayMoveDelay).
			Msg("Config reloaded")
	})

	env := game.NewEnvironment(log.Logger)
	g := ui.NewGame(env, agentX, agentO, log.Logger)

	ebiten.SetWindowSize(cfg.UI.Window.Width, cfg.UI.Window.Height)
	ebiten.SetWindowTitle(cfg.UI.Window.Title)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("UI terminated with error")
	}
}

// setupLogging configures the global zerolog logger.
func setupLogging(level, format string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
