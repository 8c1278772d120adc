// Package config loads application configuration from defaults, an
// optional YAML file and TTT_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/doribd/TicTacToe-AI-GUI/internal/agent"
)

// Config holds all configuration for the application.
type Config struct {
	Training    TrainingConfig    `mapstructure:"training"`
	Agents      AgentsConfig      `mapstructure:"agents"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	UI          UIConfig          `mapstructure:"ui"`
}

// TrainingConfig holds the self-play loop settings.
type TrainingConfig struct {
	Episodes          int   `mapstructure:"episodes"`
	ReportInterval    int   `mapstructure:"report_interval"`
	Seed              int64 `mapstructure:"seed"` // 0 means time-based
	PlayAfterTraining bool  `mapstructure:"play_after_training"`
}

// AgentsConfig holds per-mark hyperparameters.
type AgentsConfig struct {
	X agent.Config `mapstructure:"x"`
	O agent.Config `mapstructure:"o"`
}

// PersistenceConfig holds value-table artifact settings.
type PersistenceConfig struct {
	LoadTables bool   `mapstructure:"load_tables"`
	SaveTables bool   `mapstructure:"save_tables"`
	XTableFile string `mapstructure:"x_table_file"`
	OTableFile string `mapstructure:"o_table_file"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// UIConfig holds the interactive surface settings.
type UIConfig struct {
	Window          WindowConfig `mapstructure:"window"`
	CellSize        int          `mapstructure:"cell_size"`
	ReplayMoveDelay int          `mapstructure:"replay_move_delay_ms"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

var (
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("training.episodes", 10000)
	v.SetDefault("training.report_interval", 1000)
	v.SetDefault("training.seed", 0)
	v.SetDefault("training.play_after_training", false)

	for _, mark := range []string{"x", "o"} {
		v.SetDefault("agents."+mark+".learning_rate", 0.1)
		v.SetDefault("agents."+mark+".discount_factor", 0.9)
		v.SetDefault("agents."+mark+".exploration_rate", 1.0)
		v.SetDefault("agents."+mark+".exploration_decay", 0.999)
		v.SetDefault("agents."+mark+".min_exploration_rate", 0.01)
	}

	v.SetDefault("persistence.load_tables", false)
	v.SetDefault("persistence.save_tables", true)
	v.SetDefault("persistence.x_table_file", "q_table_x.json")
	v.SetDefault("persistence.o_table_file", "q_table_o.json")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("ui.window.width", 360)
	v.SetDefault("ui.window.height", 420)
	v.SetDefault("ui.window.title", "Tic Tac Toe - AI Capable")
	v.SetDefault("ui.cell_size", 100)
	v.SetDefault("ui.replay_move_delay_ms", 700)
}

// Init initializes the configuration, reading configPath when given and
// falling back to config.yaml in the usual locations otherwise. A missing
// config file is fine; defaults and the environment apply.
func Init(configPath string) error {
	v = viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("TTT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
		// Config file not found; use defaults
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the rest of the program
// cannot work with.
func Validate(c *Config) error {
	if c.Training.Episodes < 0 {
		return fmt.Errorf("training.episodes must be >= 0, got %d", c.Training.Episodes)
	}
	if c.Training.ReportInterval < 0 {
		return fmt.Errorf("training.report_interval must be >= 0, got %d", c.Training.ReportInterval)
	}
	if err := c.Agents.X.Validate(); err != nil {
		return fmt.Errorf("agents.x: %w", err)
	}
	if err := c.Agents.O.Validate(); err != nil {
		return fmt.Errorf("agents.o: %w", err)
	}
	if c.Persistence.XTableFile == "" || c.Persistence.OTableFile == "" {
		return fmt.Errorf("persistence table file names must not be empty")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if c.UI.CellSize <= 0 {
		return fmt.Errorf("ui.cell_size must be > 0, got %d", c.UI.CellSize)
	}
	if c.UI.ReplayMoveDelay < 0 {
		return fmt.Errorf("ui.replay_move_delay_ms must be >= 0, got %d", c.UI.ReplayMoveDelay)
	}
	return nil
}

// Get returns the global config instance, initializing with defaults if
// Init was never called.
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// ConfigFilePath returns the path of the loaded config file, if any.
func ConfigFilePath() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// Watch enables hot-reloading of the config file. onChange runs after the
// global config has been re-unmarshalled.
func Watch(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}
