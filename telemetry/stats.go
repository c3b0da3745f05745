// Package telemetry provides per-generation statistics and run output.
package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one finished generation.
type GenerationStats struct {
	Generation int `csv:"generation"`
	Ticks      int `csv:"ticks"`

	// Outcome counts
	Population int `csv:"population"`
	Arrived    int `csv:"arrived"`
	Dead       int `csv:"dead"`

	// Best dot
	BestStep        int     `csv:"best_step"`
	BestReachedGoal bool    `csv:"best_reached_goal"`
	BestFitness     float64 `csv:"best_fitness"`

	// Fitness distribution
	FitnessSum  float64 `csv:"fitness_sum"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	// Step cap applied to the next generation
	StepCap int `csv:"step_cap"`

	WallTime time.Duration `csv:"-"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFitnessStats fills the fitness distribution fields from raw values.
func (s *GenerationStats) ComputeFitnessStats(values []float64) {
	if len(values) == 0 {
		return
	}

	s.FitnessSum = floats.Sum(values)
	s.FitnessMean, s.FitnessStd = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.FitnessP50 = Percentile(sorted, 0.50)
	s.FitnessP90 = Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Int("population", s.Population),
		slog.Int("arrived", s.Arrived),
		slog.Int("dead", s.Dead),
		slog.Int("best_step", s.BestStep),
		slog.Bool("best_reached_goal", s.BestReachedGoal),
		slog.Float64("best_fitness", s.BestFitness),
		slog.Float64("fitness_sum", s.FitnessSum),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_p90", s.FitnessP90),
		slog.Int("step_cap", s.StepCap),
		slog.Duration("wall_time", s.WallTime),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation", "stats", s)
}
