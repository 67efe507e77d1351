package experiment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hog/internal/experiment"
	"github.com/cory-johannsen/hog/internal/game/dice"
	"github.com/cory-johannsen/hog/internal/game/hog"
)

func fixedEngine(outcomes ...int) *hog.Engine {
	d := dice.NewTestDice(outcomes...)
	return hog.NewEngine(hog.DiceSet{Standard: d, HogWild: d}, hog.GoalScore, zap.NewNop())
}

func TestMaxScoringNumRolls_ConstantDice(t *testing.T) {
	assert.Equal(t, 10, experiment.MaxScoringNumRolls(dice.NewTestDice(3), experiment.DefaultSamples))
}

func TestMaxScoringNumRolls_AlwaysPigOut(t *testing.T) {
	// Every count averages 0, so the first count is kept.
	assert.Equal(t, 1, experiment.MaxScoringNumRolls(dice.NewTestDice(1), 10))
}

// TestMaxScoringNumRolls_OnlyOneDieScores uses dice cycling 2, 1: any roll of
// two or more dice contains a 1, so only a single die ever scores.
func TestMaxScoringNumRolls_OnlyOneDieScores(t *testing.T) {
	assert.Equal(t, 1, experiment.MaxScoringNumRolls(dice.NewTestDice(2, 1), 10))
}

func TestMaxScoringNumRolls_FairSixSided(t *testing.T) {
	best := experiment.MaxScoringNumRolls(dice.SixSided(dice.NewSeededSource(2024)), experiment.DefaultSamples)
	assert.GreaterOrEqual(t, best, 1)
	assert.LessOrEqual(t, best, hog.MaxRolls)
}

func TestWinner(t *testing.T) {
	e := fixedEngine(4)
	assert.Equal(t, 0, experiment.Winner(e, hog.AlwaysRoll(1), hog.AlwaysRoll(1)))
}

// TestAverageWinRate_MirrorMatch uses dice that always roll 4, where the first
// player always wins a mirror match; the two seatings cancel out to 0.5.
func TestAverageWinRate_MirrorMatch(t *testing.T) {
	e := fixedEngine(4)
	got := experiment.AverageWinRate(e, hog.AlwaysRoll(1), hog.AlwaysRoll(1), 10)
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestAverageWinRate_InRange(t *testing.T) {
	src := dice.NewSeededSource(7)
	e := hog.NewEngine(hog.DiceSet{Standard: dice.SixSided(src), HogWild: dice.FourSided(src)}, hog.GoalScore, zap.NewNop())
	got := experiment.AverageWinRate(e, hog.FinalStrategy(), hog.AlwaysRoll(5), 50)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)
}
