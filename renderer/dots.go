// Package renderer draws the arena, the goal and the dots.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dots/camera"
	"github.com/pthm-cable/dots/game"
)

// Style holds colors and sizes in arena units.
type Style struct {
	Background rl.Color
	Border     rl.Color
	Dot        rl.Color
	DeadDot    rl.Color
	Best       rl.Color
	Goal       rl.Color
	GoalRing   rl.Color

	DotRadius  float32
	BestRadius float32
	GoalRadius float32
}

// DefaultStyle matches the classic look: white field, black dots, a green
// best dot and a red goal.
func DefaultStyle() Style {
	return Style{
		Background: rl.White,
		Border:     rl.LightGray,
		Dot:        rl.Black,
		DeadDot:    rl.Color{R: 160, G: 160, B: 160, A: 255},
		Best:       rl.Color{R: 0, G: 255, B: 0, A: 255},
		Goal:       rl.Color{R: 255, G: 0, B: 0, A: 255},
		GoalRing:   rl.Color{R: 255, G: 0, B: 0, A: 90},
		DotRadius:  2,
		BestRadius: 4,
		GoalRadius: 4,
	}
}

// DrawOptions toggles optional layers.
type DrawOptions struct {
	GoalRadius bool // outline the arrival radius
	DimDead    bool // draw dead dots in gray
}

// DotRenderer draws a game frame through a camera.
type DotRenderer struct {
	Style Style
}

// NewDotRenderer creates a renderer with the default style.
func NewDotRenderer() *DotRenderer {
	return &DotRenderer{Style: DefaultStyle()}
}

// Draw renders the arena, the goal and every dot. The best dot is drawn
// last and larger so it stays on top.
func (r *DotRenderer) Draw(f game.Frame, cam *camera.Camera, opts DrawOptions) {
	s := r.Style
	rl.ClearBackground(s.Background)

	// Arena outline, visible when the arena is smaller than the window
	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(float32(f.Width), float32(f.Height))
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 1, s.Border)

	gx, gy := cam.WorldToScreen(float32(f.Goal.X), float32(f.Goal.Y))
	if opts.GoalRadius {
		rl.DrawCircleLines(int32(gx), int32(gy), cam.Scale(float32(math.Sqrt(f.GoalRadiusSq))), s.GoalRing)
	}
	rl.DrawCircle(int32(gx), int32(gy), max(cam.Scale(s.GoalRadius), 1), s.Goal)

	for _, i := range f.DrawOrder() {
		d := f.Dots[i]
		if !cam.IsVisible(float32(d.X), float32(d.Y), s.BestRadius) {
			continue
		}

		radius, color := s.DotRadius, s.Dot
		switch {
		case d.Best:
			radius, color = s.BestRadius, s.Best
		case opts.DimDead && d.Dead:
			color = s.DeadDot
		}

		sx, sy := cam.WorldToScreen(float32(d.X), float32(d.Y))
		rl.DrawCircle(int32(sx), int32(sy), max(cam.Scale(radius), 1), color)
	}
}
