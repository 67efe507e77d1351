package experiment

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/hog/internal/game/hog"
)

// StrategyRef names a strategy and its optional parameters.
type StrategyRef struct {
	Name     string `yaml:"name"`
	NumRolls *int   `yaml:"num_rolls"`
	Margin   *int   `yaml:"margin"`
}

// Ref is a convenience constructor for a parameterless StrategyRef.
func Ref(name string) *StrategyRef { return &StrategyRef{Name: name} }

// WithNumRolls returns a copy of r with NumRolls set to n.
func (r StrategyRef) WithNumRolls(n int) *StrategyRef {
	r.NumRolls = &n
	return &r
}

// String renders the reference the way results are labeled, e.g.
// "always_roll(8)" or "bacon(margin=6, num_rolls=4)".
func (r StrategyRef) String() string {
	if r.Name == "always_roll" && r.NumRolls != nil && r.Margin == nil {
		return fmt.Sprintf("always_roll(%d)", *r.NumRolls)
	}
	var params []string
	if r.Margin != nil {
		params = append(params, fmt.Sprintf("margin=%d", *r.Margin))
	}
	if r.NumRolls != nil {
		params = append(params, fmt.Sprintf("num_rolls=%d", *r.NumRolls))
	}
	if len(params) == 0 {
		return r.Name
	}
	return fmt.Sprintf("%s(%s)", r.Name, strings.Join(params, ", "))
}

// Factory builds a strategy from a reference's parameters.
type Factory func(ref StrategyRef) (hog.Strategy, error)

// Registry indexes strategy factories by name.
//
// Invariant: each name is registered at most once.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a Registry holding the built-in strategies:
// always_roll, bacon, swap and final.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.mustRegister("always_roll", func(ref StrategyRef) (hog.Strategy, error) {
		if err := acceptParams(ref, true, false); err != nil {
			return nil, err
		}
		if ref.NumRolls == nil {
			return nil, errors.New("always_roll requires num_rolls")
		}
		n, err := rollCount("num_rolls", *ref.NumRolls)
		if err != nil {
			return nil, err
		}
		return hog.AlwaysRoll(n), nil
	})
	r.mustRegister("bacon", func(ref StrategyRef) (hog.Strategy, error) {
		n, err := rollCount("num_rolls", intOr(ref.NumRolls, hog.DefaultNumRolls))
		if err != nil {
			return nil, err
		}
		return hog.BaconStrategy(intOr(ref.Margin, hog.DefaultBaconMargin), n), nil
	})
	r.mustRegister("swap", func(ref StrategyRef) (hog.Strategy, error) {
		if err := acceptParams(ref, true, false); err != nil {
			return nil, err
		}
		n, err := rollCount("num_rolls", intOr(ref.NumRolls, hog.DefaultNumRolls))
		if err != nil {
			return nil, err
		}
		return hog.SwapStrategy(n), nil
	})
	r.mustRegister("final", func(ref StrategyRef) (hog.Strategy, error) {
		if err := acceptParams(ref, false, false); err != nil {
			return nil, err
		}
		return hog.FinalStrategy(), nil
	})
	return r
}

// Register adds a factory under name.
//
// Postcondition: returns error on name collision or empty name.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return errors.New("experiment.Registry: name must not be empty")
	}
	if f == nil {
		return fmt.Errorf("experiment.Registry: factory for %q must not be nil", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("experiment.Registry: strategy %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// RegisterStrategy adds a parameterless strategy under name. Building it with
// num_rolls or margin is an error.
func (r *Registry) RegisterStrategy(name string, s hog.Strategy) error {
	if s == nil {
		return fmt.Errorf("experiment.Registry: strategy %q must not be nil", name)
	}
	return r.Register(name, func(ref StrategyRef) (hog.Strategy, error) {
		if err := acceptParams(ref, false, false); err != nil {
			return nil, err
		}
		return s, nil
	})
}

func (r *Registry) mustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Build resolves ref to a strategy.
func (r *Registry) Build(ref StrategyRef) (hog.Strategy, error) {
	f, ok := r.factories[ref.Name]
	if !ok {
		return nil, fmt.Errorf("experiment.Registry: unknown strategy %q", ref.Name)
	}
	s, err := f(ref)
	if err != nil {
		return nil, fmt.Errorf("experiment.Registry: building %s: %w", ref, err)
	}
	return s, nil
}

// Names returns the registered strategy names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// acceptParams rejects parameters the strategy named by ref does not take.
func acceptParams(ref StrategyRef, numRolls, margin bool) error {
	if !numRolls && ref.NumRolls != nil {
		return fmt.Errorf("%s does not take num_rolls", ref.Name)
	}
	if !margin && ref.Margin != nil {
		return fmt.Errorf("%s does not take margin", ref.Name)
	}
	return nil
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func rollCount(field string, n int) (int, error) {
	if n < 0 || n > hog.MaxRolls {
		return 0, fmt.Errorf("%s must be in [0, %d], got %d", field, hog.MaxRolls, n)
	}
	return n, nil
}
