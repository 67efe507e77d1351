package hog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/hog/internal/game/hog"
)

func TestAlwaysRoll(t *testing.T) {
	s := hog.AlwaysRoll(5)
	assert.Equal(t, 5, s.NumRolls(0, 0))
	assert.Equal(t, 5, s.NumRolls(99, 99))
}

func TestStrategyFunc(t *testing.T) {
	s := hog.StrategyFunc(func(score, opp int) int { return score - opp })
	assert.Equal(t, 3, s.NumRolls(5, 2))
}

func TestBaconStrategy(t *testing.T) {
	s := hog.BaconStrategy(hog.DefaultBaconMargin, hog.DefaultNumRolls)
	assert.Equal(t, 0, s.NumRolls(0, 47), "bacon 8 meets margin 8")
	assert.Equal(t, 0, s.NumRolls(0, 64), "bacon 11 beats margin 8")
	assert.Equal(t, 5, s.NumRolls(0, 0), "bacon 1 is below margin")
	assert.Equal(t, 5, s.NumRolls(0, 30), "bacon 4 is below margin")
}

func TestSwapStrategy(t *testing.T) {
	s := hog.SwapStrategy(hog.DefaultNumRolls)
	// 9 + FreeBacon(31)=4 -> 13, which mirrors 31 and trails it.
	assert.Equal(t, 0, s.NumRolls(9, 31))
	// 10 + 4 -> 14, no swap.
	assert.Equal(t, 5, s.NumRolls(10, 31))
	// 27 + FreeBacon(13)=4 -> 31 mirrors 13 but would already lead.
	assert.Equal(t, 5, s.NumRolls(27, 13))
}

func TestFinalStrategy(t *testing.T) {
	s := hog.FinalStrategy()
	for _, tc := range []struct {
		name       string
		score, opp int
		want       int
	}{
		{"base roll", 2, 3, 5},
		{"hog wild base roll", 14, 0, 2},
		{"free bacon worth taking", 20, 47, 0},
		{"free bacon kept back for a winning swap", 35, 24, 5},
		{"pig-out swap overrides free bacon", 34, 36, 7},
		{"pig-out swap picks ten dice", 1, 0, 10},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.NumRolls(tc.score, tc.opp))
		})
	}
}

func TestProperty_BuiltInStrategiesInRange(t *testing.T) {
	strategies := map[string]hog.Strategy{
		"bacon": hog.BaconStrategy(hog.DefaultBaconMargin, hog.DefaultNumRolls),
		"swap":  hog.SwapStrategy(hog.DefaultNumRolls),
		"final": hog.FinalStrategy(),
	}
	rapid.Check(t, func(rt *rapid.T) {
		score := rapid.IntRange(0, hog.GoalScore-1).Draw(rt, "score")
		opp := rapid.IntRange(0, hog.GoalScore-1).Draw(rt, "opp")
		for name, s := range strategies {
			n := s.NumRolls(score, opp)
			if n < 0 || n > hog.MaxRolls {
				rt.Fatalf("%s returned %d for (%d, %d)", name, n, score, opp)
			}
		}
	})
}
