package experiment

import (
	"github.com/cory-johannsen/hog/internal/game/dice"
	"github.com/cory-johannsen/hog/internal/game/hog"
)

// MaxScoringNumRolls returns the number of dice (1 to 10) with the highest
// average turn total from hog.RollDice with d over samples turns.
//
// Ties keep the lowest roll count.
//
// Precondition: samples >= 1; d must be non-nil.
func MaxScoringNumRolls(d dice.Dice, samples int) int {
	averaged := MakeAveraged2(hog.RollDice, samples)
	best, highest := 1, 0.0
	for n := 1; n <= hog.MaxRolls; n++ {
		if avg := averaged(n, d); avg > highest {
			highest = avg
			best = n
		}
	}
	return best
}

// Winner plays one game on e and returns 0 if s0 wins and 1 otherwise.
func Winner(e *hog.Engine, s0, s1 hog.Strategy) int {
	return e.Play(s0, s1).Winner()
}

// AverageWinRate returns the win rate of strategy against baseline, averaged
// over playing first and playing second, each estimated from samples games.
//
// Precondition: samples >= 1; e, strategy and baseline must be non-nil.
// Postcondition: return value is in [0, 1].
func AverageWinRate(e *hog.Engine, strategy, baseline hog.Strategy, samples int) float64 {
	winner := MakeAveraged2(func(s0, s1 hog.Strategy) int {
		return Winner(e, s0, s1)
	}, samples)

	asPlayer0 := 1 - winner(strategy, baseline)
	asPlayer1 := winner(baseline, strategy)
	return (asPlayer0 + asPlayer1) / 2
}
