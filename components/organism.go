package components

import "github.com/pthm-cable/dots/brain"

// Brain links a dot to its genome and tracks playback.
// Step counts impulses consumed this generation; the genome itself is shared
// read-only state and is cloned on reproduction.
type Brain struct {
	Genome *brain.Brain
	Step   int
}

// Exhausted reports whether every impulse has been consumed.
func (b *Brain) Exhausted() bool {
	return b.Step >= b.Genome.Len()
}

// Status holds per-generation flags and the fitness score.
type Status struct {
	Dead        bool
	ReachedGoal bool
	Best        bool    // elite carried over unmutated from the previous generation
	Fitness     float64 // valid only after the generation is over
}

// Terminal reports whether the dot has finished its generation.
func (s *Status) Terminal() bool {
	return s.Dead || s.ReachedGoal
}
