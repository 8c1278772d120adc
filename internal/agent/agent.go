package agent

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/doribd/TicTacToe-AI-GUI/internal/game"
)

// ErrNoAction is returned by ChooseAction when there are no legal actions.
// The trainer treats it as a fatal logic error: it means the caller's
// termination detection disagreed with the available-action computation.
var ErrNoAction = errors.New("no available actions")

// Config holds an agent's fixed hyperparameters.
type Config struct {
	LearningRate       float64 `mapstructure:"learning_rate"`
	DiscountFactor     float64 `mapstructure:"discount_factor"`
	ExplorationRate    float64 `mapstructure:"exploration_rate"`
	ExplorationDecay   float64 `mapstructure:"exploration_decay"`
	MinExplorationRate float64 `mapstructure:"min_exploration_rate"`
}

// DefaultConfig returns the hyperparameters used for training from scratch.
func DefaultConfig() Config {
	return Config{
		LearningRate:       0.1,
		DiscountFactor:     0.9,
		ExplorationRate:    1.0,
		ExplorationDecay:   0.999,
		MinExplorationRate: 0.01,
	}
}

// Validate checks that every hyperparameter is inside its legal range.
func (c Config) Validate() error {
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning_rate %v outside (0, 1]", c.LearningRate)
	}
	if c.DiscountFactor < 0 || c.DiscountFactor > 1 {
		return fmt.Errorf("discount_factor %v outside [0, 1]", c.DiscountFactor)
	}
	if c.ExplorationRate < 0 || c.ExplorationRate > 1 {
		return fmt.Errorf("exploration_rate %v outside [0, 1]", c.ExplorationRate)
	}
	if c.ExplorationDecay <= 0 || c.ExplorationDecay > 1 {
		return fmt.Errorf("exploration_decay %v outside (0, 1]", c.ExplorationDecay)
	}
	if c.MinExplorationRate < 0 || c.MinExplorationRate > c.ExplorationRate {
		return fmt.Errorf("min_exploration_rate %v outside [0, exploration_rate]", c.MinExplorationRate)
	}
	return nil
}

// Agent is a tabular Q-learning player for one mark. It owns its value
// table and its mutable exploration rate; everything else is fixed at
// construction. Not safe for concurrent use.
type Agent struct {
	mark    game.Mark
	table   *Table
	cfg     Config
	epsilon float64
	rng     *rand.Rand
	logger  zerolog.Logger

	// scratch buffer for exploitation tie-breaking, reused across calls
	best []int
}

// New builds an agent for the given mark. Construction fails on an invalid
// mark or out-of-range hyperparameters rather than producing an inert
// agent; callers must handle the error.
func New(mark game.Mark, cfg Config, rng *rand.Rand, logger zerolog.Logger) (*Agent, error) {
	if mark != game.MarkX && mark != game.MarkO {
		return nil, fmt.Errorf("agent mark %q: %w", mark.String(), game.ErrInvalidMark)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("agent %s config: %w", mark.String(), err)
	}
	if rng == nil {
		return nil, fmt.Errorf("agent %s: nil random source", mark.String())
	}
	return &Agent{
		mark:    mark,
		table:   NewTable(),
		cfg:     cfg,
		epsilon: cfg.ExplorationRate,
		rng:     rng,
		logger:  logger.With().Str("component", "agent").Str("mark", mark.String()).Logger(),
		best:    make([]int, 0, game.NumCells),
	}, nil
}

// Mark returns the mark this agent plays.
func (a *Agent) Mark() game.Mark { return a.mark }

// Table returns the agent's value table, for persistence and inspection.
// External surfaces must act through ChooseAction, never through the table.
func (a *Agent) Table() *Table { return a.table }

// Epsilon returns the current exploration rate.
func (a *Agent) Epsilon() float64 { return a.epsilon }

// SetEpsilon overrides the exploration rate. The replay driver uses this
// to force pure exploitation and restore the trained rate afterwards.
func (a *Agent) SetEpsilon(eps float64) { a.epsilon = eps }

// ChooseAction picks an action from available using an epsilon-greedy
// policy. With probability epsilon it explores uniformly; otherwise it
// exploits, breaking exact ties between maximal estimates uniformly at
// random. The random tie-break matters: always taking the first maximal
// index would bake a positional bias into early training, when most
// estimates are still the 0.0 default.
func (a *Agent) ChooseAction(s game.State, available []int) (int, error) {
	if len(available) == 0 {
		return 0, ErrNoAction
	}

	if a.rng.Float64() < a.epsilon {
		return available[a.rng.Intn(len(available))], nil
	}

	best := a.best[:0]
	max := a.table.Get(s, available[0])
	for _, action := range available {
		switch v := a.table.Get(s, action); {
		case v > max:
			max = v
			best = best[:0]
			best = append(best, action)
		case v == max:
			best = append(best, action)
		}
	}
	return best[a.rng.Intn(len(best))], nil
}

// Update applies the one-step temporal-difference rule to (s, action):
//
//	Q(s,a) += lr * (reward + gamma*maxNext - Q(s,a))
//
// where maxNext is the best known estimate over nextAvailable in next,
// and 0.0 on a terminal transition (empty nextAvailable).
func (a *Agent) Update(s game.State, action int, reward float64, next game.State, nextAvailable []int) {
	maxNext := a.table.MaxOver(next, nextAvailable)
	current := a.table.Get(s, action)
	updated := current + a.cfg.LearningRate*(reward+a.cfg.DiscountFactor*maxNext-current)
	a.table.Set(s, action, updated)
}

// Decay lowers the exploration rate by one episode's worth, never below
// the configured floor. Called once per completed episode.
func (a *Agent) Decay() {
	a.epsilon *= a.cfg.ExplorationDecay
	if a.epsilon < a.cfg.MinExplorationRate {
		a.epsilon = a.cfg.MinExplorationRate
	}
}
