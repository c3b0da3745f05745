package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/brain"
	"github.com/pthm-cable/dots/components"
)

func testArena() Arena {
	return Arena{
		Width:        800,
		Height:       600,
		Start:        r2.Vec{X: 400, Y: 590},
		Goal:         r2.Vec{X: 400, Y: 10},
		GoalRadiusSq: 6,
		MaxSpeed:     2,
		MinCoord:     1,
	}
}

// constantBrain returns a brain whose every impulse is d.
func constantBrain(n int, d r2.Vec) *brain.Brain {
	dirs := make([]r2.Vec, n)
	for i := range dirs {
		dirs[i] = d
	}
	return brain.FromDirections(dirs)
}

func TestStepIntegratesExactly(t *testing.T) {
	a := testArena()
	rng := rand.New(rand.NewSource(42))
	pos := components.Position{X: 400, Y: 300}
	vel := components.Velocity{}
	br := components.Brain{Genome: brain.New(rng, 100)}
	st := components.Status{}

	for i := 0; i < 50; i++ {
		before := pos.Vec()
		Step(&pos, &vel, &br, &st, a)
		if st.Terminal() {
			break
		}
		want := r2.Add(before, vel.Vec())
		if pos.Vec() != want {
			t.Fatalf("tick %d: pos = %v, want %v", i, pos.Vec(), want)
		}
	}
}

func TestStepClampsVelocity(t *testing.T) {
	a := testArena()
	pos := components.Position{X: 100, Y: 300}
	vel := components.Velocity{}
	diag := r2.Unit(r2.Vec{X: 1, Y: -1})
	br := components.Brain{Genome: constantBrain(20, diag)}
	st := components.Status{}

	for i := 0; i < 20 && !st.Terminal(); i++ {
		Step(&pos, &vel, &br, &st, a)
		if vel.X < -2 || vel.X > 2 || vel.Y < -2 || vel.Y > 2 {
			t.Fatalf("tick %d: velocity %v outside [-2, 2]", i, vel.Vec())
		}
	}

	if vel.X != 2 || vel.Y != -2 {
		t.Errorf("velocity after sustained push = %v, want (2, -2)", vel.Vec())
	}
}

func TestStepConsumesOneImpulse(t *testing.T) {
	a := testArena()
	pos := components.Position{X: 400, Y: 300}
	vel := components.Velocity{}
	br := components.Brain{Genome: constantBrain(10, r2.Vec{X: 1})}
	st := components.Status{}

	Step(&pos, &vel, &br, &st, a)
	if br.Step != 1 {
		t.Errorf("Step = %d after one tick, want 1", br.Step)
	}
	if pos.X != 401 || pos.Y != 300 {
		t.Errorf("pos = %v, want (401, 300)", pos.Vec())
	}
}

func TestReachedGoalFreezes(t *testing.T) {
	a := testArena()
	pos := components.Position{X: 401, Y: 11} // distSq = 2
	vel := components.Velocity{X: 1, Y: 1}
	br := components.Brain{Genome: constantBrain(10, r2.Vec{X: 1})}
	st := components.Status{}

	Step(&pos, &vel, &br, &st, a)
	if !st.ReachedGoal {
		t.Fatal("dot within goal radius was not flagged")
	}

	frozenPos, frozenVel, frozenStep := pos, vel, br.Step
	for i := 0; i < 5; i++ {
		Step(&pos, &vel, &br, &st, a)
	}
	if pos != frozenPos || vel != frozenVel || br.Step != frozenStep {
		t.Error("dot moved after reaching goal")
	}
	if st.Dead {
		t.Error("arrived dot was marked dead")
	}
}

func TestCheckTerminal(t *testing.T) {
	tests := []struct {
		name        string
		pos         components.Position
		step        int
		legacy      bool
		wantDead    bool
		wantReached bool
	}{
		{"inside", components.Position{X: 400, Y: 300}, 0, false, false, false},
		{"at goal", components.Position{X: 400, Y: 10}, 0, false, false, true},
		{"goal edge", components.Position{X: 402, Y: 11.5}, 0, false, false, false},
		{"goal radius boundary", components.Position{X: 400, Y: 10 + 2.449}, 0, false, false, true},
		{"left edge", components.Position{X: 0.5, Y: 300}, 0, false, true, false},
		{"top edge", components.Position{X: 300, Y: 0.5}, 0, false, true, false},
		{"right edge", components.Position{X: 800.1, Y: 300}, 0, false, true, false},
		{"bottom edge", components.Position{X: 300, Y: 600.1}, 0, false, true, false},
		{"right margin inside", components.Position{X: 799.5, Y: 599.5}, 0, false, false, false},
		{"exhausted", components.Position{X: 400, Y: 300}, 10, false, true, false},
		{"exhausted at goal", components.Position{X: 400, Y: 10}, 10, false, false, true},
		{"legacy left edge survives", components.Position{X: 0.5, Y: 300}, 0, true, false, false},
		{"legacy origin dies", components.Position{X: 0, Y: 0}, 0, true, true, false},
		{"legacy right edge", components.Position{X: 801, Y: 300}, 0, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArena()
			a.LegacyBounds = tt.legacy
			pos := tt.pos
			br := components.Brain{Genome: constantBrain(10, r2.Vec{X: 1}), Step: tt.step}
			st := components.Status{}

			CheckTerminal(&pos, &br, &st, a)
			if st.Dead != tt.wantDead {
				t.Errorf("Dead = %v, want %v", st.Dead, tt.wantDead)
			}
			if st.ReachedGoal != tt.wantReached {
				t.Errorf("ReachedGoal = %v, want %v", st.ReachedGoal, tt.wantReached)
			}
		})
	}
}

func TestStepExhaustion(t *testing.T) {
	a := testArena()
	pos := components.Position{X: 400, Y: 300}
	vel := components.Velocity{}
	br := components.Brain{Genome: constantBrain(3, r2.Vec{X: 0, Y: 1})}
	st := components.Status{}

	for i := 0; i < 3; i++ {
		Step(&pos, &vel, &br, &st, a)
	}
	if st.Dead {
		t.Fatal("dot died before its brain was exhausted")
	}

	Step(&pos, &vel, &br, &st, a)
	if !st.Dead {
		t.Error("dot with exhausted brain still alive")
	}
	if br.Step != 3 {
		t.Errorf("Step = %d, want 3", br.Step)
	}
}

func TestMovementSystemRespectsMaxStep(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap4[components.Position, components.Velocity, components.Brain, components.Status](w)

	a := testArena()
	entities := make([]ecs.Entity, 5)
	for i := range entities {
		pos := components.Position{X: 100 + float64(i)*100, Y: 300}
		vel := components.Velocity{}
		br := components.Brain{Genome: constantBrain(100, r2.Vec{X: 0, Y: 0.01})}
		st := components.Status{}
		entities[i] = mapper.NewEntity(&pos, &vel, &br, &st)
	}

	sys := NewMovementSystem(w, a)
	const maxStep = 10
	for i := 0; i < 50; i++ {
		if sys.Update(maxStep) == 0 {
			break
		}
	}

	for i, e := range entities {
		_, _, br, st := mapper.Get(e)
		if !st.Dead {
			t.Errorf("dot %d still alive past step cap", i)
		}
		if br.Step > maxStep+1 {
			t.Errorf("dot %d consumed %d impulses, cap %d", i, br.Step, maxStep)
		}
	}
}

func TestMovementSystemSkipsTerminal(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap4[components.Position, components.Velocity, components.Brain, components.Status](w)

	pos := components.Position{X: 400, Y: 10}
	vel := components.Velocity{}
	br := components.Brain{Genome: constantBrain(10, r2.Vec{X: 1})}
	st := components.Status{ReachedGoal: true}
	e := mapper.NewEntity(&pos, &vel, &br, &st)

	sys := NewMovementSystem(w, testArena())
	// Arrived dot must not be killed by the step cap either.
	if active := sys.Update(-1); active != 0 {
		t.Errorf("active = %d, want 0", active)
	}

	p, _, b, s := mapper.Get(e)
	if s.Dead || !s.ReachedGoal || b.Step != 0 || p.X != 400 {
		t.Errorf("terminal dot changed: pos=%v step=%d status=%+v", p.Vec(), b.Step, *s)
	}
}

func BenchmarkMovementSystem(b *testing.B) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap4[components.Position, components.Velocity, components.Brain, components.Status](w)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		pos := components.Position{X: 400, Y: 590}
		vel := components.Velocity{}
		br := components.Brain{Genome: brain.New(rng, 1000)}
		st := components.Status{}
		mapper.NewEntity(&pos, &vel, &br, &st)
	}
	sys := NewMovementSystem(w, testArena())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sys.Update(1000)
	}
}
