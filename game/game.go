// Package game drives generations of dots and exposes read-only frames for drawing.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/config"
	"github.com/pthm-cable/dots/population"
	"github.com/pthm-cable/dots/telemetry"
)

// MaxStepsPerUpdate caps the speed multiplier.
const MaxStepsPerUpdate = 100

// Options configures a new game.
type Options struct {
	Seed           int64
	Config         *config.Config // nil = config.Cfg()
	OutputDir      string         // empty = no CSV output
	LogStats       bool
	StepsPerUpdate int
	StatsCallback  func(telemetry.GenerationStats)
}

// State is the controller snapshot. It is replaced only when a tick or a
// generation completes.
type State struct {
	Generation     int
	Tick           int // ticks into the current generation
	BestStep       int // step count of the previous generation's best dot
	FitnessSum     float64
	Paused         bool
	StepsPerUpdate int
}

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	State
	Dots         []population.View
	Goal         r2.Vec
	GoalRadiusSq float64
	Width        float64
	Height       float64
	MinStep      int
}

// Game holds the complete simulation state.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	opts population.Options

	pop   *population.Population
	state State

	totalTicks int
	genStart   time.Time

	perf          *PerfStats
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.GenerationStats)
}

// NewGame creates a game with a random first generation.
func NewGame(o Options) (*Game, error) {
	cfg := o.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	steps := o.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	om, err := telemetry.NewOutputManager(o.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("output: %w", err)
	}

	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(o.Seed)),
		opts:          population.OptionsFromConfig(cfg),
		perf:          NewPerfStats(cfg.Telemetry.PerfWindow),
		outputManager: om,
		logStats:      o.LogStats,
		statsCallback: o.StatsCallback,
	}
	g.state.StepsPerUpdate = min(steps, MaxStepsPerUpdate)
	g.reset()

	return g, nil
}

// reset replaces the population with a fresh random generation.
func (g *Game) reset() {
	g.pop = population.New(g.opts, g.rng)
	g.state.Generation = 1
	g.state.Tick = 0
	g.state.BestStep = 0
	g.state.FitnessSum = 0
	g.genStart = time.Now()
}

// Step runs one control-loop iteration: either one tick of the running
// generation, or the switch to the next generation once every dot is
// terminal. Returns true when a generation completed.
func (g *Game) Step() (bool, error) {
	if !g.pop.AllDead() {
		start := time.Now()
		g.pop.Update()
		g.perf.Record(PhaseTick, time.Since(start))

		g.state.Tick++
		g.totalTicks++
		return false, nil
	}

	if err := g.advanceGeneration(); err != nil {
		return false, err
	}
	return true, nil
}

func (g *Game) advanceGeneration() error {
	finished := g.state.Generation
	ticks := g.state.Tick

	start := time.Now()
	summary, err := g.pop.Repopulate()
	g.perf.Record(PhaseRepopulate, time.Since(start))
	if err != nil {
		return fmt.Errorf("generation %d: %w", finished, err)
	}

	g.state.Generation++
	g.state.Tick = 0
	g.state.BestStep = summary.BestStep
	g.state.FitnessSum = summary.FitnessSum

	start = time.Now()
	g.emitStats(finished, ticks, summary)
	g.perf.Record(PhaseTelemetry, time.Since(start))

	if g.logStats && g.cfg.Telemetry.PerfLogEvery > 0 && finished%g.cfg.Telemetry.PerfLogEvery == 0 {
		slog.Info("perf", "generation", finished, "phases", g.perf)
	}
	return nil
}

// Update runs StepsPerUpdate iterations unless paused.
func (g *Game) Update() error {
	if g.state.Paused {
		return nil
	}
	for i := 0; i < g.state.StepsPerUpdate; i++ {
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateHeadless runs StepsPerUpdate iterations regardless of pause.
func (g *Game) UpdateHeadless() error {
	for i := 0; i < g.state.StepsPerUpdate; i++ {
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// State returns the current controller snapshot.
func (g *Game) State() State {
	return g.state
}

// Frame returns a read-only view of the current generation.
func (g *Game) Frame() Frame {
	a := g.opts.Arena
	return Frame{
		State:        g.state,
		Dots:         g.pop.Dots(),
		Goal:         a.Goal,
		GoalRadiusSq: a.GoalRadiusSq,
		Width:        a.Width,
		Height:       a.Height,
		MinStep:      g.pop.MinStep(),
	}
}

// Generation returns the current generation number, starting at 1.
func (g *Game) Generation() int {
	return g.state.Generation
}

// TotalTicks returns ticks run since the game was created.
func (g *Game) TotalTicks() int {
	return g.totalTicks
}

// Population exposes the current population for inspection.
func (g *Game) Population() *population.Population {
	return g.pop
}

// Perf returns the rolling phase timings.
func (g *Game) Perf() *PerfStats {
	return g.perf
}

// TogglePause flips the paused flag.
func (g *Game) TogglePause() {
	g.state.Paused = !g.state.Paused
}

// SetStepsPerUpdate sets the speed multiplier, clamped to [1, MaxStepsPerUpdate].
func (g *Game) SetStepsPerUpdate(n int) {
	g.state.StepsPerUpdate = max(1, min(n, MaxStepsPerUpdate))
}

// Restart discards the current run and starts again from generation 1.
// The random stream continues, so a restart does not replay the last run.
func (g *Game) Restart() {
	g.reset()
	slog.Info("restarted")
}

// Unload releases output files.
func (g *Game) Unload() error {
	return g.outputManager.Close()
}

// DrawOrder returns dot indices with ordinary dots first and best-flagged
// dots last, so the best is never hidden under the crowd.
func (f Frame) DrawOrder() []int {
	order := make([]int, 0, len(f.Dots))
	for i, d := range f.Dots {
		if !d.Best {
			order = append(order, i)
		}
	}
	for i, d := range f.Dots {
		if d.Best {
			order = append(order, i)
		}
	}
	return order
}
