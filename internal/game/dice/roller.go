package dice

import "fmt"

// Roll rolls d exactly n times and returns the audit of every outcome.
//
// All n rolls are made even after a 1 has been seen, so stateful dice advance
// by exactly n positions.
//
// Precondition: n >= 1; d must be non-nil.
// Postcondition: len(result.Dice) == n; result.PigOut iff some outcome == 1.
func Roll(n int, d Dice) RollResult {
	if n < 1 {
		panic(fmt.Sprintf("dice: Roll precondition violated: must roll at least once, got %d", n))
	}
	if d == nil {
		panic("dice: Roll precondition violated: dice must not be nil")
	}
	rolled := make([]int, n)
	pigOut := false
	for i := range rolled {
		rolled[i] = d.Roll()
		if rolled[i] == 1 {
			pigOut = true
		}
	}
	return RollResult{
		Expression: fmt.Sprintf("%d dice", n),
		Dice:       rolled,
		PigOut:     pigOut,
	}
}
