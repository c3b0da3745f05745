package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dots/game"
)

// Controller is the part of the game the panel and keyboard drive.
type Controller interface {
	State() game.State
	TogglePause()
	SetStepsPerUpdate(n int)
	Restart()
}

// ControlsPanel renders the pause, speed and restart controls.
type ControlsPanel struct {
	renderer *Renderer
	x, y     float32
	width    float32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width float32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y float32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and applies any interaction to ctl. The overlay
// list shows each toggle key and its current state.
func (c *ControlsPanel) Draw(ctl Controller, overlays *OverlayRegistry) {
	r := c.renderer
	pad := float32(r.Theme.Padding)
	s := ctl.State()
	descs := overlays.All()

	height := 100 + int32(len(descs))*r.Theme.LineHeight + r.Theme.LineHeight + 2
	r.DrawPanel(int32(c.x), int32(c.y), int32(c.width), height)

	y := c.y + pad
	rl.DrawText("Controls", int32(c.x+pad), int32(y), r.Theme.HeaderSize, r.Theme.SectionHeader)
	y += 18

	half := (c.width - pad*3) / 2
	if gui.Button(rl.Rectangle{X: c.x + pad, Y: y, Width: half, Height: 22}, toggleText(s.Paused, "Resume", "Pause")) {
		ctl.TogglePause()
	}
	if gui.Button(rl.Rectangle{X: c.x + pad*2 + half, Y: y, Width: half, Height: 22}, "Restart") {
		ctl.Restart()
	}
	y += 32

	rl.DrawText(fmt.Sprintf("Speed: %dx", s.StepsPerUpdate), int32(c.x+pad), int32(y), r.Theme.FontSize, r.Theme.ValueColor)
	y += 12
	speed := gui.SliderBar(
		rl.Rectangle{X: c.x + pad + 14, Y: y, Width: c.width - pad*2 - 42, Height: 14},
		"1", fmt.Sprintf("%d", game.MaxStepsPerUpdate),
		float32(s.StepsPerUpdate), 1, game.MaxStepsPerUpdate,
	)
	if n := int(speed + 0.5); n != s.StepsPerUpdate {
		ctl.SetStepsPerUpdate(n)
	}
	y += 24

	ly := r.DrawSectionHeader(int32(c.x+pad), int32(y), "Overlays")
	for _, d := range descs {
		line := fmt.Sprintf("[%s] %-12s %s", d.KeyLabel, d.Name, toggleText(overlays.IsEnabled(d.ID), "on", "off"))
		ly = r.DrawLine(int32(c.x+pad), ly, line)
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
