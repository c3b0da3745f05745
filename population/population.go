// Package population manages a generation of dots and breeds the next one.
package population

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/dots/brain"
	"github.com/pthm-cable/dots/components"
	"github.com/pthm-cable/dots/config"
	"github.com/pthm-cable/dots/systems"
)

// ErrSelection is returned when roulette selection has no valid wheel to spin.
// This is an invariant violation: every dot scores a positive finite fitness.
var ErrSelection = errors.New("population: roulette selection failed")

// Options holds the population parameters.
type Options struct {
	Size         int
	BrainSize    int
	MutationRate float64
	Arena        systems.Arena
}

// OptionsFromConfig extracts population options from the loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Size:         cfg.Population.Size,
		BrainSize:    cfg.Population.BrainSize,
		MutationRate: cfg.Mutation.Rate,
		Arena:        systems.NewArena(cfg),
	}
}

// Population owns every dot of the current generation.
type Population struct {
	opts Options
	rng  *rand.Rand

	cur      *generation
	movement *systems.MovementSystem

	fitnessSum float64
	minStep    int
}

// generation is one cohort of dots in its own ECS world.
// order keeps insertion order, which selection ties depend on.
type generation struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Velocity, components.Brain, components.Status]
	order  []ecs.Entity
}

func newGeneration(capacity int) *generation {
	world := ecs.NewWorld()
	return &generation{
		world:  world,
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Brain, components.Status](world),
		order:  make([]ecs.Entity, 0, capacity),
	}
}

// spawn creates a dot at start with the given genome.
func (g *generation) spawn(genome *brain.Brain, start components.Position, best bool) ecs.Entity {
	pos := start
	vel := components.Velocity{}
	br := components.Brain{Genome: genome}
	st := components.Status{Best: best}

	entity := g.mapper.NewEntity(&pos, &vel, &br, &st)
	g.order = append(g.order, entity)
	return entity
}

// New creates generation zero with random brains.
func New(opts Options, rng *rand.Rand) *Population {
	p := &Population{
		opts:    opts,
		rng:     rng,
		minStep: opts.BrainSize,
	}

	gen := newGeneration(opts.Size)
	for i := 0; i < opts.Size; i++ {
		gen.spawn(brain.New(rng, opts.BrainSize), p.start(), false)
	}
	p.swap(gen)

	return p
}

func (p *Population) start() components.Position {
	return components.Position{X: p.opts.Arena.Start.X, Y: p.opts.Arena.Start.Y}
}

// swap makes gen the current generation.
func (p *Population) swap(gen *generation) {
	p.cur = gen
	p.movement = systems.NewMovementSystem(gen.world, p.opts.Arena)
}

// Update ticks every dot once. Dots that ran past the previous best's step
// count are killed instead. Returns the number of dots still active.
func (p *Population) Update() int {
	return p.movement.Update(p.minStep)
}

// AllDead reports whether every dot is dead or has reached the goal.
func (p *Population) AllDead() bool {
	for _, e := range p.cur.order {
		_, _, _, st := p.cur.mapper.Get(e)
		if !st.Terminal() {
			return false
		}
	}
	return true
}

// Summary describes a finished generation.
type Summary struct {
	BestIndex       int
	BestStep        int
	BestReachedGoal bool
	BestFitness     float64
	FitnessSum      float64
	Fitness         []float64 // per dot, in population order
	Arrived         int
	Dead            int
}

// Repopulate scores the finished generation and replaces it with the next.
// The best dot is carried over unmutated as the first member and flagged
// best; its step count becomes the step cap for the next generation. The
// remaining slots are filled with children of roulette-selected parents.
func (p *Population) Repopulate() (Summary, error) {
	fitness := p.calculateFitness()
	p.fitnessSum = floats.Sum(fitness)
	if err := validateFitnessSum(p.fitnessSum); err != nil {
		return Summary{}, fmt.Errorf("repopulate: %w", err)
	}

	bestIdx := floats.MaxIdx(fitness)
	_, _, bestBrain, bestStatus := p.cur.mapper.Get(p.cur.order[bestIdx])
	bestStatus.Best = true

	summary := p.summarize(fitness, bestIdx)

	next := newGeneration(p.opts.Size)
	next.spawn(bestBrain.Genome.Clone(), p.start(), true)
	p.minStep = bestBrain.Step

	for len(next.order) < p.opts.Size {
		parent := p.selectParent(fitness)
		next.spawn(p.childBrain(parent), p.start(), false)
	}

	p.swap(next)
	return summary, nil
}

// calculateFitness scores every dot and stores the result on its status.
func (p *Population) calculateFitness() []float64 {
	fitness := make([]float64, len(p.cur.order))
	for i, e := range p.cur.order {
		pos, _, br, st := p.cur.mapper.Get(e)
		st.Fitness = systems.Fitness(pos, br, st, p.opts.Arena)
		fitness[i] = st.Fitness
	}
	return fitness
}

func (p *Population) summarize(fitness []float64, bestIdx int) Summary {
	s := Summary{
		BestIndex:   bestIdx,
		BestFitness: fitness[bestIdx],
		FitnessSum:  p.fitnessSum,
		Fitness:     fitness,
	}
	for i, e := range p.cur.order {
		_, _, br, st := p.cur.mapper.Get(e)
		if st.ReachedGoal {
			s.Arrived++
		}
		if st.Dead {
			s.Dead++
		}
		if i == bestIdx {
			s.BestStep = br.Step
			s.BestReachedGoal = st.ReachedGoal
		}
	}
	return s
}

// childBrain returns the genome for a child of the dot at index i.
// Children of a best-flagged dot are exact copies.
func (p *Population) childBrain(i int) *brain.Brain {
	_, _, br, st := p.cur.mapper.Get(p.cur.order[i])
	child := br.Genome.Clone()
	if !st.Best {
		child.Mutate(p.rng, p.opts.MutationRate)
	}
	return child
}

// selectParent spins the roulette wheel once.
func (p *Population) selectParent(fitness []float64) int {
	return pickParent(fitness, p.rng.Float64()*p.fitnessSum)
}

// pickParent returns the first index whose cumulative fitness exceeds draw.
// A draw at or past the total, reachable only through rounding, falls back
// to the last index.
func pickParent(fitness []float64, draw float64) int {
	tally := 0.0
	for i, f := range fitness {
		tally += f
		if tally > draw {
			return i
		}
	}
	return len(fitness) - 1
}

func validateFitnessSum(sum float64) error {
	if math.IsNaN(sum) || math.IsInf(sum, 0) || sum <= 0 {
		return fmt.Errorf("%w: fitness sum %g", ErrSelection, sum)
	}
	return nil
}

// View is a read-only snapshot of one dot.
type View struct {
	X, Y        float64
	Step        int
	Dead        bool
	ReachedGoal bool
	Best        bool
	Fitness     float64
}

// Dot returns a snapshot of the dot at index i.
func (p *Population) Dot(i int) View {
	pos, _, br, st := p.cur.mapper.Get(p.cur.order[i])
	return View{
		X:           pos.X,
		Y:           pos.Y,
		Step:        br.Step,
		Dead:        st.Dead,
		ReachedGoal: st.ReachedGoal,
		Best:        st.Best,
		Fitness:     st.Fitness,
	}
}

// Dots returns snapshots of every dot in population order.
func (p *Population) Dots() []View {
	views := make([]View, len(p.cur.order))
	for i := range p.cur.order {
		views[i] = p.Dot(i)
	}
	return views
}

// Brain returns the genome of the dot at index i.
func (p *Population) Brain(i int) *brain.Brain {
	_, _, br, _ := p.cur.mapper.Get(p.cur.order[i])
	return br.Genome
}

// Len returns the number of dots.
func (p *Population) Len() int {
	return len(p.cur.order)
}

// MinStep returns the step cap for the current generation.
func (p *Population) MinStep() int {
	return p.minStep
}

// FitnessSum returns the fitness total of the last finished generation.
func (p *Population) FitnessSum() float64 {
	return p.fitnessSum
}
