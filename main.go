package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dots/config"
	"github.com/pthm-cable/dots/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output per-generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation iterations per update call (higher = faster runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		if err := runHeadless(opts, *maxGenerations); err != nil {
			slog.Error("simulation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Dots")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	if err := runWindowed(opts, *maxGenerations); err != nil {
		rl.CloseWindow()
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the simulation until a generation limit or a signal.
func runHeadless(opts game.Options, maxGenerations int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := game.NewGame(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_generations", maxGenerations,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		if err := g.UpdateHeadless(); err != nil {
			return err
		}

		if maxGenerations > 0 && g.Generation() > maxGenerations {
			slog.Info("max generations reached", "generation", g.Generation()-1, "ticks", g.TotalTicks())
			return nil
		}

		// Checked between iterations so no generation is left half built
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "generation", g.Generation(), "ticks", g.TotalTicks())
			return nil
		default:
		}
	}
}

// runWindowed runs the draw loop until the window closes or the limit is hit.
func runWindowed(opts game.Options, maxGenerations int) error {
	g, err := game.NewGame(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	v := newView(g.Frame())

	for !rl.WindowShouldClose() {
		v.handleInput(g)

		if err := g.Update(); err != nil {
			return err
		}

		v.draw(g)

		if maxGenerations > 0 && g.Generation() > maxGenerations {
			slog.Info("max generations reached", "generation", g.Generation()-1)
			break
		}
	}
	return nil
}
