package brain

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := New(rng, 1000)

	if b.Len() != 1000 {
		t.Fatalf("Len() = %d, want 1000", b.Len())
	}

	for i := 0; i < b.Len(); i++ {
		n := r2.Norm(b.Direction(i))
		if math.Abs(n-1) > 1e-12 {
			t.Fatalf("direction %d has norm %v, want 1", i, n)
		}
	}
}

func TestNewCoversAllQuadrants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := New(rng, 400)

	var quadrants [4]int
	for _, d := range b.Directions() {
		q := 0
		if d.X < 0 {
			q |= 1
		}
		if d.Y < 0 {
			q |= 2
		}
		quadrants[q]++
	}
	for q, n := range quadrants {
		if n == 0 {
			t.Errorf("quadrant %d never sampled", q)
		}
	}
}

func TestNewDeterministic(t *testing.T) {
	a := New(rand.New(rand.NewSource(7)), 50)
	b := New(rand.New(rand.NewSource(7)), 50)
	if !a.Equal(b) {
		t.Error("same seed produced different brains")
	}
}

func TestClone(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := New(rng, 10)

	clone := b.Clone()
	if !clone.Equal(b) {
		t.Fatal("clone differs from original")
	}

	// Mutating the clone must not touch the original
	clone.directions[0] = r2.Vec{X: 999, Y: 999}
	if b.directions[0].X == 999 {
		t.Error("clone is not independent")
	}
}

func TestMutateRateZero(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parent := New(rng, 200)

	child := parent.Clone()
	if n := child.Mutate(rng, 0); n != 0 {
		t.Errorf("Mutate(0) replaced %d impulses, want 0", n)
	}
	if !child.Equal(parent) {
		t.Error("rate 0 changed the genome")
	}
}

func TestMutateRateOne(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parent := New(rng, 200)

	child := parent.Clone()
	if n := child.Mutate(rng, 1); n != 200 {
		t.Errorf("Mutate(1) replaced %d impulses, want 200", n)
	}

	for i := 0; i < parent.Len(); i++ {
		if child.Direction(i) == parent.Direction(i) {
			t.Errorf("impulse %d unchanged after full mutation", i)
		}
		if n := r2.Norm(child.Direction(i)); math.Abs(n-1) > 1e-12 {
			t.Errorf("mutated impulse %d has norm %v", i, n)
		}
	}
}

func TestMutateRateApproximate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := New(rng, 100000)

	n := b.Mutate(rng, 0.005)
	// Expect ~500; binomial std ~22
	if n < 350 || n > 650 {
		t.Errorf("Mutate(0.005) on 100000 impulses replaced %d, want ~500", n)
	}
}

func TestFromDirectionsCopies(t *testing.T) {
	dirs := []r2.Vec{{X: 1, Y: 0}, {X: 0, Y: 1}}
	b := FromDirections(dirs)
	dirs[0] = r2.Vec{X: -1, Y: 0}

	if b.Direction(0).X != 1 {
		t.Error("FromDirections kept a reference to the input slice")
	}
}

func BenchmarkMutate(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	br := New(rng, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		br.Mutate(rng, 0.005)
	}
}
