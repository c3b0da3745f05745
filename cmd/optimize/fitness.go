package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/dots/config"
	"github.com/pthm-cable/dots/game"
	"github.com/pthm-cable/dots/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config
	sizePenalty float64

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	lastSolved  float64 // fraction of seeds solved in the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config, sizePenalty float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
		sizePenalty: sizePenalty,
		bestFitness: math.Inf(1),
	}
}

// LastSolved returns the solved fraction from the most recent evaluation.
func (fe *FitnessEvaluator) LastSolved() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSolved
}

// runResult holds the results from a single simulation run.
type runResult struct {
	generations []telemetry.GenerationStats // collected via StatsCallback
	err         error
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel; each game owns its RNG and world
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var totalScore, solved float64
	for _, r := range results {
		score := runScore(r, fe.baseConfig.Population.BrainSize)
		totalScore += score
		if score > 1 {
			solved++
		}
	}

	n := float64(len(fe.seeds))
	sizeFrac := float64(cfg.Population.Size) / fe.params.Specs[1].Max
	fitness := -totalScore/n + fe.sizePenalty*sizeFrac

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	fe.lastSolved = solved / n
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes a single headless run for a fixed number of generations.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{}

	g, err := game.NewGame(game.Options{
		Seed:           seed,
		Config:         cfg,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.GenerationStats) {
			result.generations = append(result.generations, stats)
		},
	})
	if err != nil {
		result.err = err
		return result
	}
	defer g.Unload()

	for g.Generation() <= fe.generations {
		if err := g.UpdateHeadless(); err != nil {
			result.err = err
			return result
		}
	}
	return result
}

// runScore rates one run in [0, 2]. Runs whose final best dot arrived score
// above 1, higher for fewer steps. Other runs score by how close the best
// dot got.
func runScore(r *runResult, brainSize int) float64 {
	if r.err != nil || len(r.generations) == 0 {
		return 0
	}

	last := r.generations[len(r.generations)-1]
	if last.BestReachedGoal {
		return 1 + clamp01(1-float64(last.BestStep)/float64(brainSize))
	}

	// Non-arrival fitness is 1/distSq
	if last.BestFitness <= 0 {
		return 0
	}
	dist := 1 / math.Sqrt(last.BestFitness)
	return 1 / (1 + dist/100)
}

// copyConfig creates a copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	return fe.baseConfig.Clone()
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
