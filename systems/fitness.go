package systems

import (
	"math"

	"github.com/pthm-cable/dots/components"
)

// minDistSq keeps fitness finite for a dot that sits on the goal without
// having been flagged as arrived.
const minDistSq = 1e-9

// Fitness scores a dot at the end of its generation.
// Arrivals score 1/16 + 10000/steps², rewarding fewer steps quadratically.
// Everyone else scores 1/distSq to the goal.
func Fitness(pos *components.Position, br *components.Brain, st *components.Status, a Arena) float64 {
	if st.ReachedGoal {
		steps := float64(max(br.Step, 1))
		return 1.0/16.0 + 10000.0/(steps*steps)
	}
	return 1.0 / math.Max(a.DistSqToGoal(pos.Vec()), minDistSq)
}
