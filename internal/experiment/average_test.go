package experiment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/hog/internal/experiment"
	"github.com/cory-johannsen/hog/internal/game/dice"
	"github.com/cory-johannsen/hog/internal/game/hog"
)

func TestMakeAveraged_TestDice(t *testing.T) {
	d := dice.NewTestDice(3, 1, 5, 6)
	averaged := experiment.MakeAveraged(d.Roll, 1000)
	assert.InDelta(t, 3.75, averaged(), 1e-9)
}

// TestMakeAveraged2_RollDice averages a pig out (3, 1) and an 11 (5, 6).
func TestMakeAveraged2_RollDice(t *testing.T) {
	d := dice.NewTestDice(3, 1, 5, 6)
	averaged := experiment.MakeAveraged2(hog.RollDice, 1000)
	assert.InDelta(t, 5.5, averaged(2, d), 1e-9)
}

func TestMakeAveraged1_PassesArgument(t *testing.T) {
	var seen []int
	averaged := experiment.MakeAveraged1(func(n int) int {
		seen = append(seen, n)
		return n * 2
	}, 3)
	assert.InDelta(t, 14.0, averaged(7), 1e-9)
	assert.Equal(t, []int{7, 7, 7}, seen)
}

func TestMakeAveraged_TrueDivision(t *testing.T) {
	calls := 0
	averaged := experiment.MakeAveraged(func() int {
		calls++
		return calls % 2 // 1, 0, 1
	}, 3)
	assert.InDelta(t, 2.0/3.0, averaged(), 1e-9)
}

func TestMakeAveraged_PanicsOnBadSamples(t *testing.T) {
	assert.Panics(t, func() { experiment.MakeAveraged(func() int { return 1 }, 0) })
	assert.Panics(t, func() { experiment.MakeAveraged1(func(int) float64 { return 1 }, -1) })
	assert.Panics(t, func() { experiment.MakeAveraged2(func(int, int) int { return 1 }, 0) })
}

func TestProperty_MakeAveraged_Constant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := rapid.IntRange(-1000, 1000).Draw(rt, "constant")
		samples := rapid.IntRange(1, 200).Draw(rt, "samples")
		got := experiment.MakeAveraged(func() int { return c }, samples)()
		assert.InDelta(rt, float64(c), got, 1e-9)
	})
}

func TestProperty_MakeAveraged_ConstantFloat(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := rapid.Float64Range(-100, 100).Draw(rt, "constant")
		samples := rapid.IntRange(1, 200).Draw(rt, "samples")
		got := experiment.MakeAveraged2(func(a, b float64) float64 { return a + b }, samples)(c, 0)
		assert.InDelta(rt, c, got, 1e-6)
	})
}
