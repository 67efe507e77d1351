// Package hog implements the rules of the two-player dice game Hog: turn
// resolution, dice selection, the score swap, the game loop, and strategies.
package hog

import (
	"fmt"

	"github.com/cory-johannsen/hog/internal/game/dice"
)

const (
	// GoalScore is the score a player must reach to win.
	GoalScore = 100
	// MaxRolls is the largest number of dice a player may roll in one turn.
	MaxRolls = 10
)

// Other returns the other player, for a player numbered 0 or 1.
func Other(player int) int {
	return 1 - player
}

// IsPrime reports whether n is prime using trial division.
//
// Postcondition: 0 and 1 are not prime; 2 is prime.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// NextPrime returns the smallest prime strictly greater than n.
func NextPrime(n int) int {
	next := n + 1
	for !IsPrime(next) {
		next++
	}
	return next
}

// PrimeBump applies Hogtimus Prime: a prime score is raised to the next prime.
//
// Postcondition: returns NextPrime(n) when n is prime, n otherwise.
func PrimeBump(n int) int {
	if IsPrime(n) {
		return NextPrime(n)
	}
	return n
}

// FreeBacon returns the score for rolling zero dice against opponentScore:
// one more than the larger digit of the opponent's score, prime-bumped.
//
// Postcondition: return value >= 1 for any opponentScore >= 0.
func FreeBacon(opponentScore int) int {
	return PrimeBump(max(opponentScore/10, opponentScore%10) + 1)
}

// RollDice rolls d numRolls times and returns the turn total under the pig-out
// rule.
//
// Precondition: numRolls >= 1.
func RollDice(numRolls int, d dice.Dice) int {
	return dice.Roll(numRolls, d).Total()
}

// TakeTurn returns the points scored for a turn rolling numRolls dice, which
// may be 0 (Free Bacon).
//
// Precondition: 0 <= numRolls <= MaxRolls; opponentScore < GoalScore.
func TakeTurn(numRolls, opponentScore int, d dice.Dice) int {
	score, _ := TakeTurnDetailed(numRolls, opponentScore, d)
	return score
}

// TakeTurnDetailed is TakeTurn that also returns the roll audit. The audit is
// nil for a Free Bacon turn.
//
// Precondition: 0 <= numRolls <= MaxRolls; opponentScore < GoalScore.
func TakeTurnDetailed(numRolls, opponentScore int, d dice.Dice) (int, *dice.RollResult) {
	if numRolls < 0 {
		panic(fmt.Sprintf("hog: TakeTurn precondition violated: cannot roll a negative number of dice, got %d", numRolls))
	}
	if numRolls > MaxRolls {
		panic(fmt.Sprintf("hog: TakeTurn precondition violated: cannot roll more than %d dice, got %d", MaxRolls, numRolls))
	}
	if opponentScore >= GoalScore {
		panic(fmt.Sprintf("hog: TakeTurn precondition violated: the game should be over, opponent has %d", opponentScore))
	}
	if numRolls == 0 {
		return FreeBacon(opponentScore), nil
	}
	r := dice.Roll(numRolls, d)
	return PrimeBump(r.Total()), &r
}

// IsHogWild reports whether the combined score is a multiple of 7, zero included.
func IsHogWild(score, opponentScore int) bool {
	return (score+opponentScore)%7 == 0
}

// DiceSet is the pair of dice a game draws from.
type DiceSet struct {
	Standard dice.Dice // normally six-sided
	HogWild  dice.Dice // normally four-sided
}

// SelectDice returns the Hog Wild dice when the combined score is a multiple
// of 7 and the standard dice otherwise.
func SelectDice(score, opponentScore int, set DiceSet) dice.Dice {
	if IsHogWild(score, opponentScore) {
		return set.HogWild
	}
	return set.Standard
}

// lastTwoDigits returns the tens and ones digits of score. Scores from 100 to
// 109 have their hundreds stripped.
func lastTwoDigits(score int) (tens, ones int) {
	tens = score / 10
	if tens >= 10 {
		tens -= 10
	}
	return tens, score % 10
}

// IsSwap reports whether the last two digits of score0 and score1 are
// reversals of each other, such as 19 and 91.
func IsSwap(score0, score1 int) bool {
	tens0, ones0 := lastTwoDigits(score0)
	tens1, ones1 := lastTwoDigits(score1)
	return tens0 == ones1 && ones0 == tens1
}
