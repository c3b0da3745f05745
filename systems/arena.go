// Package systems contains ECS systems for the simulation.
package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/config"
)

// Arena holds the fixed geometry and integration constants of a run.
type Arena struct {
	Width, Height float64
	Start         r2.Vec
	Goal          r2.Vec
	GoalRadiusSq  float64
	MaxSpeed      float64
	MinCoord      float64
	LegacyBounds  bool
}

// NewArena builds an arena from the loaded configuration.
func NewArena(cfg *config.Config) Arena {
	return Arena{
		Width:        cfg.Arena.Width,
		Height:       cfg.Arena.Height,
		Start:        cfg.Derived.Start,
		Goal:         cfg.Derived.Goal,
		GoalRadiusSq: cfg.Arena.GoalRadiusSq,
		MaxSpeed:     cfg.Physics.MaxSpeed,
		MinCoord:     cfg.Physics.MinCoord,
		LegacyBounds: cfg.Physics.LegacyBounds,
	}
}

// DistSqToGoal returns the squared distance from p to the goal.
func (a Arena) DistSqToGoal(p r2.Vec) float64 {
	return r2.Norm2(r2.Sub(p, a.Goal))
}

// InGoal reports whether p counts as having arrived.
func (a Arena) InGoal(p r2.Vec) bool {
	return a.DistSqToGoal(p) <= a.GoalRadiusSq
}

// OutOfBounds reports whether p has left the arena.
func (a Arena) OutOfBounds(p r2.Vec) bool {
	if p.X > a.Width || p.Y > a.Height {
		return true
	}
	if a.LegacyBounds {
		// Reduced lower-edge test: only the exact origin counts.
		return p.X == 0 && p.Y == 0
	}
	return p.X < a.MinCoord || p.Y < a.MinCoord
}
