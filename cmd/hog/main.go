// Package main provides the Hog command-line simulator. With -r it runs the
// experiment suite and prints one "label: value" line per experiment.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hog/internal/config"
	"github.com/cory-johannsen/hog/internal/experiment"
	"github.com/cory-johannsen/hog/internal/game/dice"
	"github.com/cory-johannsen/hog/internal/game/hog"
	"github.com/cory-johannsen/hog/internal/observability"
	"github.com/cory-johannsen/hog/internal/scripting"
)

// configEnv names the environment variable holding the optional config file path.
const configEnv = "HOG_CONFIG"

func main() {
	runExperiments := pflag.BoolP("run_experiments", "r", false, "Runs strategy experiments")
	pflag.Parse()

	cfg, err := config.Load(os.Getenv(configEnv))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if !*runExperiments {
		logger.Info("nothing to do; pass --run_experiments to run the experiment suite")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		code := fail(logger, os.Stderr, err)
		stop()
		os.Exit(code)
	}
}

// fail logs err, flushes the logger and reports err on stderr. It returns the
// process exit code. os.Exit skips deferred calls, so the flush happens here.
func fail(logger *zap.Logger, stderr io.Writer, err error) int {
	logger.Error("experiments failed", zap.Error(err))
	_ = logger.Sync()
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

// run wires the dice, engine, strategies and suite from cfg and prints each
// experiment outcome to out.
//
// Precondition: cfg must be valid; logger must be non-nil.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger, out io.Writer) error {
	start := time.Now()

	src := dice.NewCryptoSource()
	if cfg.Game.Seed != 0 {
		src = dice.NewSeededSource(cfg.Game.Seed)
	}
	set, err := buildDice(cfg.Game, src, logger)
	if err != nil {
		return err
	}
	engine := hog.NewEngine(set, cfg.Game.Goal, logger)

	registry := experiment.NewRegistry()
	if cfg.Scripting.Dir != "" {
		mgr := scripting.NewManager(logger, cfg.Scripting.InstructionLimit, cfg.Scripting.FallbackRolls)
		mgr.Goal = cfg.Game.Goal
		defer mgr.Close()
		if err := mgr.LoadDir(cfg.Scripting.Dir); err != nil {
			return err
		}
		for _, name := range mgr.Names() {
			s, _ := mgr.Strategy(name)
			if err := registry.RegisterStrategy(name, s); err != nil {
				return fmt.Errorf("registering Lua strategy: %w", err)
			}
		}
	}

	suite := experiment.DefaultSuite()
	if cfg.Experiments.Suite != "" {
		suite, err = experiment.LoadSuite(cfg.Experiments.Suite)
		if err != nil {
			return err
		}
	}

	baseline := experiment.Ref("always_roll").WithNumRolls(cfg.Experiments.BaselineRolls)
	runner := experiment.NewRunner(engine, registry, *baseline, cfg.Experiments.Samples, logger)

	logger.Info("hog initialized",
		zap.Int("goal", cfg.Game.Goal),
		zap.String("standard_dice", cfg.Game.StandardDice),
		zap.String("hog_wild_dice", cfg.Game.HogWildDice),
		zap.Bool("seeded", cfg.Game.Seed != 0),
		zap.Strings("strategies", registry.Names()),
		zap.Duration("startup", time.Since(start)),
	)

	outcomes, err := runner.RunContext(ctx, suite)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		if _, err := fmt.Fprintln(out, o); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}
	return nil
}

// buildDice parses the configured dice and wraps them with roll logging.
func buildDice(g config.GameConfig, src dice.Source, logger *zap.Logger) (hog.DiceSet, error) {
	standard, err := dice.Parse(g.StandardDice)
	if err != nil {
		return hog.DiceSet{}, fmt.Errorf("game.standard_dice: %w", err)
	}
	wild, err := dice.Parse(g.HogWildDice)
	if err != nil {
		return hog.DiceSet{}, fmt.Errorf("game.hog_wild_dice: %w", err)
	}
	return hog.DiceSet{
		Standard: dice.NewLoggedDice(standard.Raw, standard.New(src), logger),
		HogWild:  dice.NewLoggedDice(wild.Raw, wild.New(src), logger),
	}, nil
}
