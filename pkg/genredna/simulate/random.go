package simulate

import (
	"math/rand/v2"
)

// Source supplies the random draws used by the synthesizer and the ranker.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// GlobalSource draws from the goroutine-safe top-level math/rand/v2 functions.
type GlobalSource struct{}

func (GlobalSource) Float64() float64 { return rand.Float64() }
func (GlobalSource) IntN(n int) int   { return rand.IntN(n) }

// NewSeededSource returns a deterministic source. A *rand.Rand is not safe for
// concurrent use, so a seeded source must not be shared between goroutines.
func NewSeededSource(seed1, seed2 uint64) Source {
	return rand.New(rand.NewPCG(seed1, seed2))
}
