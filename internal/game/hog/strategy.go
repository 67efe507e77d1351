package hog

// Strategy chooses how many dice the current player rolls this turn.
//
// Postcondition: NumRolls returns a value in [0, MaxRolls].
type Strategy interface {
	NumRolls(score, opponentScore int) int
}

// StrategyFunc adapts an ordinary function to the Strategy interface.
type StrategyFunc func(score, opponentScore int) int

// NumRolls calls f.
func (f StrategyFunc) NumRolls(score, opponentScore int) int { return f(score, opponentScore) }

// Defaults used by the built-in strategies.
const (
	DefaultBaconMargin = 8
	DefaultNumRolls    = 5
)

// AlwaysRoll returns a strategy that always rolls n dice.
func AlwaysRoll(n int) Strategy {
	return StrategyFunc(func(int, int) int { return n })
}

// BaconStrategy rolls 0 dice when Free Bacon would score at least margin
// points, and numRolls otherwise.
func BaconStrategy(margin, numRolls int) Strategy {
	return StrategyFunc(func(score, opponentScore int) int {
		if FreeBacon(opponentScore) >= margin {
			return 0
		}
		return numRolls
	})
}

// SwapStrategy rolls 0 dice when Free Bacon would trigger a swap that leaves
// the player behind before the swap, and numRolls otherwise.
func SwapStrategy(numRolls int) Strategy {
	return StrategyFunc(func(score, opponentScore int) int {
		bacon := score + FreeBacon(opponentScore)
		if IsSwap(bacon, opponentScore) && bacon < opponentScore {
			return 0
		}
		return numRolls
	})
}

// FinalStrategy combines the bacon and swap strategies and also tries to set
// up a swap by handing the opponent points through a pig out.
//
// Order of precedence: base roll (2 on Hog Wild dice, 5 otherwise); then take
// Free Bacon when it is worth at least 5 unless it would swap the player out
// of the lead; then the highest of 7..10 dice whose pig-out penalty would give
// the opponent a score that swaps in the player's favor.
func FinalStrategy() Strategy {
	return StrategyFunc(finalStrategy)
}

func finalStrategy(score, opponentScore int) int {
	roll := DefaultNumRolls
	if IsHogWild(score, opponentScore) {
		roll = 2
	}

	bacon := FreeBacon(opponentScore)
	if bacon >= 5 {
		after := score + bacon
		if !(IsSwap(after, opponentScore) && after >= opponentScore) {
			roll = 0
		}
	}

	for mark := 7; mark <= MaxRolls; mark++ {
		if IsSwap(score, opponentScore+mark) && score <= opponentScore+mark {
			roll = mark
		}
	}
	return roll
}
