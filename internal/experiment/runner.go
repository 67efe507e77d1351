package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hog/internal/game/dice"
	"github.com/cory-johannsen/hog/internal/game/hog"
)

// Outcome is the measured value of one experiment.
type Outcome struct {
	Name    string
	Label   string
	Value   float64
	Elapsed time.Duration
}

// String renders the outcome as "label: value".
func (o Outcome) String() string {
	return fmt.Sprintf("%s: %v", o.Label, o.Value)
}

// Runner executes experiment suites against an engine.
type Runner struct {
	engine   *hog.Engine
	registry *Registry
	baseline StrategyRef
	samples  int
	logger   *zap.Logger
}

// NewRunner creates a Runner. Win-rate experiments without a baseline are
// measured against baseline.
//
// Precondition: engine, registry and logger must be non-nil; samples >= 1.
func NewRunner(engine *hog.Engine, registry *Registry, baseline StrategyRef, samples int, logger *zap.Logger) *Runner {
	if engine == nil || registry == nil || logger == nil {
		panic("experiment: NewRunner precondition violated: engine, registry and logger must be non-nil")
	}
	checkSamples(samples)
	return &Runner{
		engine:   engine,
		registry: registry,
		baseline: baseline,
		samples:  samples,
		logger:   logger,
	}
}

// Run validates suite and runs its experiments in order.
//
// Postcondition: on success, one Outcome per experiment in suite order.
func (r *Runner) Run(suite *Suite) ([]Outcome, error) {
	return r.RunContext(context.Background(), suite)
}

// RunContext is Run with cancellation, checked before each experiment starts.
//
// Postcondition: returns ctx.Err() wrapped when cancelled part way through.
func (r *Runner) RunContext(ctx context.Context, suite *Suite) ([]Outcome, error) {
	if err := suite.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.New().String()
	start := time.Now()
	r.logger.Info("experiment run started",
		zap.String("run_id", runID),
		zap.Int("experiments", len(suite.Experiments)),
		zap.Int("samples", r.samples),
	)

	outcomes := make([]Outcome, 0, len(suite.Experiments))
	for _, def := range suite.Experiments {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("experiment run cancelled",
				zap.String("run_id", runID),
				zap.Int("completed", len(outcomes)),
			)
			return nil, fmt.Errorf("experiment run cancelled: %w", err)
		}
		o, err := r.runOne(def)
		if err != nil {
			r.logger.Error("experiment failed",
				zap.String("run_id", runID),
				zap.String("experiment", def.Name),
				zap.Error(err),
			)
			return nil, fmt.Errorf("experiment %q: %w", def.Name, err)
		}
		r.logger.Info("experiment finished",
			zap.String("run_id", runID),
			zap.String("experiment", o.Name),
			zap.Float64("value", o.Value),
			zap.Duration("elapsed", o.Elapsed),
		)
		outcomes = append(outcomes, o)
	}

	r.logger.Info("experiment run complete",
		zap.String("run_id", runID),
		zap.Duration("elapsed", time.Since(start)),
	)
	return outcomes, nil
}

func (r *Runner) runOne(def *Definition) (Outcome, error) {
	start := time.Now()
	samples := r.samples
	if def.Samples > 0 {
		samples = def.Samples
	}

	var value float64
	switch def.Kind {
	case KindMaxScoringNumRolls:
		var d dice.Dice
		if def.Dice == DiceHogWild {
			d = r.engine.Dice().HogWild
		} else {
			d = r.engine.Dice().Standard
		}
		value = float64(MaxScoringNumRolls(d, samples))
	case KindWinRate:
		strategy, err := r.registry.Build(*def.Strategy)
		if err != nil {
			return Outcome{}, err
		}
		baselineRef := r.baseline
		if def.Baseline != nil {
			baselineRef = *def.Baseline
		}
		baseline, err := r.registry.Build(baselineRef)
		if err != nil {
			return Outcome{}, err
		}
		value = AverageWinRate(r.engine, strategy, baseline, samples)
	default:
		return Outcome{}, fmt.Errorf("unknown kind %q", def.Kind)
	}

	return Outcome{
		Name:    def.Name,
		Label:   def.DisplayLabel(),
		Value:   value,
		Elapsed: time.Since(start),
	}, nil
}
