// Package config provides Viper-based configuration loading for the Hog simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/hog/internal/game/dice"
	"github.com/cory-johannsen/hog/internal/game/hog"
)

// EnvPrefix prefixes every environment variable override, e.g. HOG_GAME_GOAL.
const EnvPrefix = "HOG"

// GameConfig holds the rules parameters of a single game.
type GameConfig struct {
	// Goal is the score that ends the game.
	Goal int `mapstructure:"goal"`
	// StandardDice is the dice expression rolled outside Hog Wild turns.
	StandardDice string `mapstructure:"standard_dice"`
	// HogWildDice is the dice expression rolled on Hog Wild turns.
	HogWildDice string `mapstructure:"hog_wild_dice"`
	// Seed seeds a reproducible dice source; 0 selects crypto randomness.
	Seed uint64 `mapstructure:"seed"`
}

// ExperimentsConfig holds experiment runner settings.
type ExperimentsConfig struct {
	// Samples is the default number of samples averaged per estimate.
	Samples int `mapstructure:"samples"`
	// Suite is an optional YAML suite path; empty runs the built-in suite.
	Suite string `mapstructure:"suite"`
	// BaselineRolls is the always_roll count win rates are measured against.
	BaselineRolls int `mapstructure:"baseline_rolls"`
}

// ScriptingConfig holds Lua strategy settings.
type ScriptingConfig struct {
	// Dir holds *.lua strategy scripts; empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit is the Lua opcode budget per strategy call.
	InstructionLimit int `mapstructure:"instruction_limit"`
	// FallbackRolls is returned when a script fails.
	FallbackRolls int `mapstructure:"fallback_rolls"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is the log sink: "stderr" or "stdout".
	Output string `mapstructure:"output"`
}

// Config is the top-level application configuration.
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Experiments ExperimentsConfig `mapstructure:"experiments"`
	Scripting   ScriptingConfig   `mapstructure:"scripting"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateExperiments(c.Experiments); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.Goal < 1 || g.Goal > hog.GoalScore {
		errs = append(errs, fmt.Sprintf("game.goal must be 1-%d, got %d", hog.GoalScore, g.Goal))
	}
	if _, err := dice.Parse(g.StandardDice); err != nil {
		errs = append(errs, fmt.Sprintf("game.standard_dice: %v", err))
	}
	if _, err := dice.Parse(g.HogWildDice); err != nil {
		errs = append(errs, fmt.Sprintf("game.hog_wild_dice: %v", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateExperiments(e ExperimentsConfig) error {
	var errs []string
	if e.Samples < 1 {
		errs = append(errs, fmt.Sprintf("experiments.samples must be >= 1, got %d", e.Samples))
	}
	if e.BaselineRolls < 0 || e.BaselineRolls > hog.MaxRolls {
		errs = append(errs, fmt.Sprintf("experiments.baseline_rolls must be 0-%d, got %d", hog.MaxRolls, e.BaselineRolls))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	var errs []string
	if s.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit))
	}
	if s.FallbackRolls < 0 || s.FallbackRolls > hog.MaxRolls {
		errs = append(errs, fmt.Sprintf("scripting.fallback_rolls must be 0-%d, got %d", hog.MaxRolls, s.FallbackRolls))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	validOutputs := map[string]bool{"stderr": true, "stdout": true}
	if !validOutputs[l.Output] {
		return fmt.Errorf("logging.output must be one of [stderr, stdout], got %q", l.Output)
	}
	return nil
}

// Load applies defaults, the optional YAML file at path, and HOG_ environment
// variable overrides, then validates the result.
//
// Precondition: path is empty or names a readable YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or overrides are given.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: defaults are invalid: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.goal", hog.GoalScore)
	v.SetDefault("game.standard_dice", "d6")
	v.SetDefault("game.hog_wild_dice", "d4")
	v.SetDefault("game.seed", 0)

	v.SetDefault("experiments.samples", 1000)
	v.SetDefault("experiments.suite", "")
	v.SetDefault("experiments.baseline_rolls", hog.DefaultNumRolls)

	v.SetDefault("scripting.dir", "")
	v.SetDefault("scripting.instruction_limit", 100_000)
	v.SetDefault("scripting.fallback_rolls", hog.DefaultNumRolls)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
}
