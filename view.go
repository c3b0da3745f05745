package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dots/camera"
	"github.com/pthm-cable/dots/game"
	"github.com/pthm-cable/dots/renderer"
	"github.com/pthm-cable/dots/ui"
)

// view bundles the drawing collaborators of the windowed mode.
type view struct {
	cam      *camera.Camera
	dots     *renderer.DotRenderer
	hud      *ui.HUD
	controls *ui.ControlsPanel
	perf     *ui.PerfPanel
	overlays *ui.OverlayRegistry
}

func newView(f game.Frame) *view {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	return &view{
		cam:      camera.New(w, h, float32(f.Width), float32(f.Height)),
		dots:     renderer.NewDotRenderer(),
		hud:      ui.NewHUD(),
		controls: ui.NewControlsPanel(w-190, 5, 185),
		perf:     ui.NewPerfPanel(int32(w)-205, 175),
		overlays: ui.NewOverlayRegistry(),
	}
}

func (v *view) handleInput(g *game.Game) {
	ui.HandleInput(g, v.cam, v.overlays)
}

func (v *view) draw(g *game.Game) {
	f := g.Frame()
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()

	rl.BeginDrawing()

	v.dots.Draw(f, v.cam, renderer.DrawOptions{
		GoalRadius: v.overlays.IsEnabled(ui.OverlayGoalRadius),
		DimDead:    v.overlays.IsEnabled(ui.OverlayDimDead),
	})

	v.hud.Draw(f.State, rl.GetFPS())
	v.hud.DrawControls(int32(h), ui.ControlsLegend)

	if v.overlays.IsEnabled(ui.OverlayControls) {
		v.controls.SetPosition(float32(w)-190, 5)
		v.controls.Draw(g, v.overlays)
	}
	if v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perf.SetPosition(int32(w)-205, 175)
		v.perf.Draw(g.Perf())
	}

	rl.EndDrawing()
}
