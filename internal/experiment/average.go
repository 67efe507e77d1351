// Package experiment estimates the quality of Hog strategies by repeated
// simulation: averaged turn scores, the best number of dice to roll, and win
// rates, plus the YAML experiment suite that drives them.
package experiment

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// DefaultSamples is the number of calls averaged when no count is configured.
const DefaultSamples = 1000

// Number is any numeric result that can be averaged.
type Number interface {
	constraints.Integer | constraints.Float
}

// MakeAveraged returns a function that calls fn samples times and returns the
// mean of its results.
//
// Precondition: samples >= 1.
// Postcondition: the returned function uses true division, never integer division.
func MakeAveraged[T Number](fn func() T, samples int) func() float64 {
	checkSamples(samples)
	return func() float64 {
		total := 0.0
		for i := 0; i < samples; i++ {
			total += float64(fn())
		}
		return total / float64(samples)
	}
}

// MakeAveraged1 is MakeAveraged for a one-argument function; every call
// receives the same argument.
//
// Precondition: samples >= 1.
func MakeAveraged1[A any, T Number](fn func(A) T, samples int) func(A) float64 {
	checkSamples(samples)
	return func(a A) float64 {
		return MakeAveraged(func() T { return fn(a) }, samples)()
	}
}

// MakeAveraged2 is MakeAveraged for a two-argument function; every call
// receives the same arguments.
//
// Precondition: samples >= 1.
func MakeAveraged2[A, B any, T Number](fn func(A, B) T, samples int) func(A, B) float64 {
	checkSamples(samples)
	return func(a A, b B) float64 {
		return MakeAveraged(func() T { return fn(a, b) }, samples)()
	}
}

func checkSamples(samples int) {
	if samples < 1 {
		panic(fmt.Sprintf("experiment: MakeAveraged precondition violated: samples must be >= 1, got %d", samples))
	}
}
