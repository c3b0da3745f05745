package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/dots/population"
	"github.com/pthm-cable/dots/telemetry"
)

// emitStats builds the record for a finished generation and hands it to
// the callback, the log and the CSV output.
func (g *Game) emitStats(generation, ticks int, summary population.Summary) {
	now := time.Now()
	stats := telemetry.GenerationStats{
		Generation:      generation,
		Ticks:           ticks,
		Population:      len(summary.Fitness),
		Arrived:         summary.Arrived,
		Dead:            summary.Dead,
		BestStep:        summary.BestStep,
		BestReachedGoal: summary.BestReachedGoal,
		BestFitness:     summary.BestFitness,
		StepCap:         g.pop.MinStep(),
		WallTime:        now.Sub(g.genStart),
	}
	stats.ComputeFitnessStats(summary.Fitness)
	g.genStart = now

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
	}

	if err := g.outputManager.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation stats", "error", err)
	}
}
