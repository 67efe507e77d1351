// Package dice provides the randomness abstraction, the dice used by Hog, and
// the roll-result audit type.
package dice

import "fmt"

// Dice is a zero-argument die: each call to Roll produces one outcome.
//
// Standard dice produce outcomes in [1, sides]. Test dice replay a fixed
// sequence.
type Dice interface {
	Roll() int
}

// Func adapts an ordinary function to the Dice interface.
type Func func() int

// Roll calls f.
func (f Func) Roll() int { return f() }

// RollResult holds the full audit trail for a single turn's roll.
//
// Postcondition: Total() == 0 when PigOut, else sum(Dice).
type RollResult struct {
	Expression string // e.g. "3 dice"
	Dice       []int  // every outcome, in roll order
	PigOut     bool   // true when any outcome was 1
}

// Sum returns the raw sum of all outcomes, ignoring the pig-out rule.
func (r RollResult) Sum() int {
	total := 0
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// Total returns the turn score for this roll: zero on pig out, the sum otherwise.
//
// Postcondition: return value == 0 if r.PigOut, else sum(r.Dice).
func (r RollResult) Total() int {
	if r.PigOut {
		return 0
	}
	return r.Sum()
}

// String returns a human-readable audit string in the format:
//
//	"3 dice → [4 1 5] pig out = 0"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	note := "sum"
	if r.PigOut {
		note = "pig out"
	}
	return fmt.Sprintf("%s → %v %s = %d", r.Expression, r.Dice, note, r.Total())
}

// Source is the randomness provider behind standard dice.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
