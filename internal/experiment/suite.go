package experiment

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind identifies what an experiment measures.
type Kind string

const (
	// KindMaxScoringNumRolls finds the best number of dice for one die type.
	KindMaxScoringNumRolls Kind = "max_scoring_num_rolls"
	// KindWinRate estimates a strategy's win rate against a baseline.
	KindWinRate Kind = "win_rate"
)

// Dice selectors for KindMaxScoringNumRolls.
const (
	DiceStandard = "standard"
	DiceHogWild  = "hog_wild"
)

// Definition is one experiment in a suite.
//
// Precondition: Name and Kind must be non-empty.
type Definition struct {
	Name     string       `yaml:"name"`
	Label    string       `yaml:"label"` // printed before the value; derived when empty
	Kind     Kind         `yaml:"kind"`
	Dice     string       `yaml:"dice"`     // max_scoring_num_rolls only
	Strategy *StrategyRef `yaml:"strategy"` // win_rate only
	Baseline *StrategyRef `yaml:"baseline"` // win_rate only; runner default when nil
	Samples  int          `yaml:"samples"`  // 0 = runner default
}

// DisplayLabel returns Label, or a label derived from the experiment.
func (d *Definition) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	if d.Kind == KindWinRate && d.Strategy != nil {
		return d.Strategy.String() + " win rate"
	}
	return d.Name
}

// Suite is an ordered list of experiments loaded from YAML.
//
// Invariant: experiment names are unique.
type Suite struct {
	Experiments []*Definition `yaml:"experiments"`
}

// Validate checks required fields and per-kind constraints.
//
// Postcondition: nil return guarantees every experiment has a unique non-empty
// name, a known kind, and the fields its kind needs.
func (s *Suite) Validate() error {
	if len(s.Experiments) == 0 {
		return errors.New("experiment.Suite: must have at least one experiment")
	}
	names := make(map[string]struct{}, len(s.Experiments))
	for i, d := range s.Experiments {
		if d == nil {
			return fmt.Errorf("experiment.Suite: entry %d is empty", i)
		}
		if d.Name == "" {
			return fmt.Errorf("experiment.Suite: entry %d has empty name", i)
		}
		if _, dup := names[d.Name]; dup {
			return fmt.Errorf("experiment.Suite: duplicate experiment name %q", d.Name)
		}
		names[d.Name] = struct{}{}
		if d.Samples < 0 {
			return fmt.Errorf("experiment.Suite %q: samples must be >= 0, got %d", d.Name, d.Samples)
		}

		switch d.Kind {
		case KindMaxScoringNumRolls:
			if d.Dice != DiceStandard && d.Dice != DiceHogWild {
				return fmt.Errorf("experiment.Suite %q: dice must be one of [%s, %s], got %q", d.Name, DiceStandard, DiceHogWild, d.Dice)
			}
		case KindWinRate:
			if d.Strategy == nil || d.Strategy.Name == "" {
				return fmt.Errorf("experiment.Suite %q: win_rate requires a strategy", d.Name)
			}
			if d.Baseline != nil && d.Baseline.Name == "" {
				return fmt.Errorf("experiment.Suite %q: baseline must name a strategy", d.Name)
			}
		default:
			return fmt.Errorf("experiment.Suite %q: unknown kind %q", d.Name, d.Kind)
		}
	}
	return nil
}

//go:embed default_suite.yaml
var defaultSuiteYAML []byte

// DefaultSuite returns the built-in suite: the best roll count for each die
// type and the win rates of always_roll(8), bacon, swap and final.
func DefaultSuite() *Suite {
	s, err := ParseSuite(defaultSuiteYAML)
	if err != nil {
		panic("experiment: embedded default suite is invalid: " + err.Error())
	}
	return s
}

// ParseSuite decodes and validates a suite from YAML.
//
// Postcondition: Returns a valid Suite or a descriptive error.
func ParseSuite(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("experiment.ParseSuite: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSuite reads a suite from a YAML file.
//
// Precondition: path must be a readable file.
// Postcondition: Returns a valid Suite or a non-nil error.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("experiment.LoadSuite: reading %q: %w", path, err)
	}
	s, err := ParseSuite(data)
	if err != nil {
		return nil, fmt.Errorf("experiment.LoadSuite: %s: %w", path, err)
	}
	return s, nil
}
