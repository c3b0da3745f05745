// Package brain provides the heritable movement genome of a dot.
package brain

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Brain is a fixed-length sequence of unit impulses.
// It holds no playback state; the owning dot tracks how far it has read.
type Brain struct {
	directions []r2.Vec
}

// New creates a brain of n uniformly random unit impulses.
func New(rng *rand.Rand, n int) *Brain {
	b := &Brain{directions: make([]r2.Vec, n)}
	for i := range b.directions {
		b.directions[i] = RandomDirection(rng)
	}
	return b
}

// FromDirections builds a brain from an explicit impulse sequence.
// The slice is copied.
func FromDirections(dirs []r2.Vec) *Brain {
	b := &Brain{directions: make([]r2.Vec, len(dirs))}
	copy(b.directions, dirs)
	return b
}

// RandomDirection samples a unit vector with angle uniform in [0, 2π).
func RandomDirection(rng *rand.Rand) r2.Vec {
	angle := rng.Float64() * 2 * math.Pi
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Len returns the number of impulses.
func (b *Brain) Len() int {
	return len(b.directions)
}

// Direction returns impulse i. Callers must check i < Len().
func (b *Brain) Direction(i int) r2.Vec {
	return b.directions[i]
}

// Directions returns a copy of the impulse sequence.
func (b *Brain) Directions() []r2.Vec {
	out := make([]r2.Vec, len(b.directions))
	copy(out, b.directions)
	return out
}

// Mutate replaces each impulse with a fresh random one with probability rate.
// Returns the number of impulses replaced.
func (b *Brain) Mutate(rng *rand.Rand, rate float64) int {
	replaced := 0
	for i := range b.directions {
		if rng.Float64() < rate {
			b.directions[i] = RandomDirection(rng)
			replaced++
		}
	}
	return replaced
}

// Clone creates a deep copy of the brain.
func (b *Brain) Clone() *Brain {
	return FromDirections(b.directions)
}

// Equal reports whether both brains hold the same impulse sequence.
func (b *Brain) Equal(other *Brain) bool {
	if len(b.directions) != len(other.directions) {
		return false
	}
	for i, d := range b.directions {
		if d != other.directions[i] {
			return false
		}
	}
	return true
}
