package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dots/game"
)

// HUD renders the generation counters in the top-left corner.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Lines returns the HUD text for a state.
func Lines(s game.State) []string {
	return []string{
		fmt.Sprintf("Generation: %d", s.Generation),
		fmt.Sprintf("Steps: %d", s.BestStep),
		fmt.Sprintf("Fitness: %g", s.FitnessSum),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(s game.State, fps int32) {
	r := h.renderer
	y := int32(5)
	for _, line := range Lines(s) {
		y = r.DrawLine(5, y, line)
	}

	status := fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", s.Tick, s.StepsPerUpdate, fps)
	rl.DrawText(status, 5, y+2, r.Theme.FontSize, r.Theme.ValueColor)
	if s.Paused {
		rl.DrawText("PAUSED", 5, y+2+r.Theme.LineHeight, r.Theme.HeaderSize, r.Theme.StatusColor)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 5, screenHeight-15, h.renderer.Theme.FontSize, rl.Gray)
}

// PerfPanel renders per-phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(perf *game.PerfStats) {
	r := p.renderer
	phases := perf.Sorted()
	total := perf.Total()

	height := int32(len(phases)+2)*r.Theme.LineHeight + r.Theme.Padding*2 + 2
	r.DrawPanel(p.x, p.y, 200, height)

	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "Performance")
	y = r.DrawLine(x, y, fmt.Sprintf("Total: %s", total.Round(time.Microsecond)))

	for _, ph := range phases {
		avg := perf.Avg(ph)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		y = r.DrawLine(x, y, fmt.Sprintf("%-11s %9s %5.1f%%", ph, avg.Round(time.Microsecond), pct))
	}
}
