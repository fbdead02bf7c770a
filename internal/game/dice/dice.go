// Package dice provides the random source used by battle rolls.
//
// Every roll in the engine (crit, resist, extra turn, counterattack, AI
// choice) goes through a Source so that battles can be replayed from a seed.
package dice

import "math/rand/v2"

// Source is the subset of *rand.Rand the engine draws from.
type Source interface {
	Float64() float64
	IntN(n int) int
}

type global struct{}

func (global) Float64() float64 { return rand.Float64() }
func (global) IntN(n int) int   { return rand.IntN(n) }

// Default draws from the process-wide generator.
var Default Source = global{}

// NewSeeded returns a deterministic source for the given seed.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Chance reports whether a roll lands under p. p <= 0 never succeeds, p >= 1 always does.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Fixed replays the given values in order, then repeats the last one.
// Intended for tests.
type Fixed struct {
	Values []float64
	pos    int
}

// Float64 returns the next scripted value.
func (f *Fixed) Float64() float64 {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[min(f.pos, len(f.Values)-1)]
	f.pos++
	return v
}

// IntN maps the next scripted value onto [0, n).
func (f *Fixed) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(f.Float64() * float64(n))
	return min(max(i, 0), n-1)
}
