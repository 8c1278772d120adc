package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/doribd/TicTacToe-AI-GUI/internal/agent"
	"github.com/doribd/TicTacToe-AI-GUI/internal/config"
	"github.com/doribd/TicTacToe-AI-GUI/internal/events"
	"github.com/doribd/TicTacToe-AI-GUI/internal/events/subscribers"
	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
	"github.com/doribd/TicTacToe-AI-GUI/internal/training"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	episodes := flag.Int("episodes", -1, "Number of training episodes (-1 to use config default)")
	seed := flag.Int64("seed", 0, "Random seed (0 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	loadTables := flag.Bool("load", false, "Load persisted value tables before training")
	saveTables := flag.Bool("save", false, "Save value tables after training (in addition to config toggle)")
	play := flag.Bool("play", false, "Play one exploration-off game on the console after training")
	verboseEvents := flag.Bool("verbose-events", false, "Log every training event with its full payload")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *episodes == -1 {
		*episodes = cfg.Training.Episodes
	}
	if *seed == 0 {
		*seed = cfg.Training.Seed
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if !*loadTables {
		*loadTables = cfg.Persistence.LoadTables
	}
	if !*saveTables {
		*saveTables = cfg.Persistence.SaveTables
	}
	if !*play {
		*play = cfg.Training.PlayAfterTraining
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	log.Info().
		Int("episodes", *episodes).
		Int64("seed", *seed).
		Bool("load_tables", *loadTables).
		Bool("save_tables", *saveTables).
		Msg("Starting training run")

	agentX, err := agent.New(game.MarkX, cfg.Agents.X, rng, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to construct agent X")
	}
	agentO, err := agent.New(game.MarkO, cfg.Agents.O, rng, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to construct agent O")
	}

	if *loadTables {
		if err := agentX.Table().LoadFile(cfg.Persistence.XTableFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load X value table")
		}
		if err := agentO.Table().LoadFile(cfg.Persistence.OTableFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load O value table")
		}
		log.Info().
			Int("x_states", agentX.Table().States()).
			Int("o_states", agentO.Table().States()).
			Msg("Value tables loaded")
	}

	bus := events.NewBus()
	eventLogger := subscribers.NewLoggerSubscriber("train-logger", log.Logger, zerolog.DebugLevel)
	eventLogger.SetVerbose(*verboseEvents)
	if !*verboseEvents {
		// Per-move events are far too chatty for a full run.
		eventLogger.SetEventFilter([]string{
			events.TypeTrainingStarted,
			events.TypeTrainingEnded,
			events.TypeReplayStarted,
			events.TypeReplayEnded,
		})
	}
	bus.Subscribe(eventLogger)

	env := game.NewEnvironment(log.Logger)
	trainer := training.NewTrainer(env, agentX, agentO, log.Logger,
		training.WithEventBus(bus),
		training.WithReportInterval(cfg.Training.ReportInterval),
	)

	stats, err := trainer.Run(context.Background(), *episodes)
	if err != nil {
		log.Fatal().Err(err).Msg("Training aborted")
	}

	log.Info().
		Int("x_wins", stats.XWins).
		Int("o_wins", stats.OWins).
		Int("draws", stats.Draws).
		Msg("Final tally")

	if *saveTables {
		if err := agentX.Table().SaveFile(cfg.Persistence.XTableFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to save X value table")
		}
		if err := agentO.Table().SaveFile(cfg.Persistence.OTableFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to save O value table")
		}
		log.Info().
			Str("x_table", cfg.Persistence.XTableFile).
			Str("o_table", cfg.Persistence.OTableFile).
			Msg("Value tables saved")
	}

	if *play {
		playbackGame(env, agentX, agentO, bus)
	}
}

// playbackGame runs one exploration-off game and renders each move to
// stdout.
func playbackGame(env *game.Environment, agentX, agentO *agent.Agent, bus *events.Bus) {
	log.Info().Msg("Starting playback game")

	replay := training.NewReplay(env, agentX, agentO, log.Logger,
		training.WithReplayEventBus(bus))
	transcript, outcome, err := replay.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Playback failed")
	}

	for _, m := range transcript {
		fmt.Printf("Agent %s chooses cell %d\n%s\n", m.Mark.String(), m.Action, m.State.String())
	}
	log.Info().Str("outcome", outcome.String()).Msg("Playback finished")
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
