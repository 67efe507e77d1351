package dice

import (
	"fmt"
	"sync"
)

// Standard is a fair die with a fixed number of sides.
//
// Invariant: Sides >= 2.
type Standard struct {
	sides int
	src   Source
}

// NewStandard returns a fair die producing outcomes in [1, sides].
//
// Precondition: sides >= 2; src must be non-nil.
func NewStandard(sides int, src Source) *Standard {
	if sides < 2 {
		panic(fmt.Sprintf("dice: NewStandard precondition violated: sides must be >= 2, got %d", sides))
	}
	if src == nil {
		panic("dice: NewStandard precondition violated: src must not be nil")
	}
	return &Standard{sides: sides, src: src}
}

// FourSided returns a fair four-sided die.
func FourSided(src Source) *Standard { return NewStandard(4, src) }

// SixSided returns a fair six-sided die.
func SixSided(src Source) *Standard { return NewStandard(6, src) }

// Sides returns the number of faces on the die.
func (s *Standard) Sides() int { return s.sides }

// Roll returns a uniformly distributed outcome in [1, Sides()].
func (s *Standard) Roll() int {
	return s.src.Intn(s.sides) + 1
}

// String returns the die in "dN" notation.
func (s *Standard) String() string { return fmt.Sprintf("d%d", s.sides) }

// TestDice replays a fixed sequence of outcomes, wrapping to the start after
// the last one.
//
// A TestDice carries a cursor and must have a single owner; the mutex only
// keeps the race detector quiet when one is shared by accident.
type TestDice struct {
	mu       sync.Mutex
	outcomes []int
	pos      int
	calls    int
}

// NewTestDice returns deterministic dice cycling through outcomes.
//
// Precondition: at least one outcome is given.
func NewTestDice(outcomes ...int) *TestDice {
	if len(outcomes) == 0 {
		panic("dice: NewTestDice precondition violated: at least one outcome is required")
	}
	seq := make([]int, len(outcomes))
	copy(seq, outcomes)
	return &TestDice{outcomes: seq}
}

// Roll returns the next outcome in the sequence and advances the cursor.
func (t *TestDice) Roll() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	v := t.outcomes[t.pos]
	t.pos = (t.pos + 1) % len(t.outcomes)
	t.calls++
	return v
}

// Calls returns how many times Roll has been called.
func (t *TestDice) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
