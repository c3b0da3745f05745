package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/components"
)

// CheckTerminal updates the dot's flags for its current position.
// Goal takes priority: a dot that arrives this tick cannot also die.
func CheckTerminal(pos *components.Position, br *components.Brain, st *components.Status, a Arena) {
	p := pos.Vec()
	if a.InGoal(p) {
		st.ReachedGoal = true
		return
	}
	if a.OutOfBounds(p) {
		st.Dead = true
	}
	if br.Exhausted() {
		st.Dead = true
	}
}

// Step advances one dot by a single tick.
// The next impulse is added to velocity, each component is clamped to
// [-MaxSpeed, MaxSpeed], then velocity is added to position.
func Step(pos *components.Position, vel *components.Velocity, br *components.Brain, st *components.Status, a Arena) {
	if st.Terminal() {
		return
	}

	CheckTerminal(pos, br, st, a)
	if st.Terminal() {
		return
	}

	acc := br.Genome.Direction(br.Step)
	br.Step++

	v := r2.Add(vel.Vec(), acc)
	v.X = clamp(v.X, -a.MaxSpeed, a.MaxSpeed)
	v.Y = clamp(v.Y, -a.MaxSpeed, a.MaxSpeed)
	vel.Set(v)

	pos.Set(r2.Add(pos.Vec(), v))
}

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// MovementSystem ticks every dot in a world.
type MovementSystem struct {
	filter *ecs.Filter4[components.Position, components.Velocity, components.Brain, components.Status]
	arena  Arena
}

// NewMovementSystem creates a movement system bound to w.
func NewMovementSystem(w *ecs.World, arena Arena) *MovementSystem {
	return &MovementSystem{
		filter: ecs.NewFilter4[components.Position, components.Velocity, components.Brain, components.Status](w),
		arena:  arena,
	}
}

// Update ticks every active dot. Dots that have already consumed more than
// maxStep impulses are killed without ticking.
// Returns the number of dots still active afterwards.
func (s *MovementSystem) Update(maxStep int) int {
	active := 0

	query := s.filter.Query()
	for query.Next() {
		pos, vel, br, st := query.Get()

		if st.Terminal() {
			continue
		}

		if br.Step > maxStep {
			st.Dead = true
			continue
		}

		Step(pos, vel, br, st, s.arena)
		if !st.Terminal() {
			active++
		}
	}

	return active
}
