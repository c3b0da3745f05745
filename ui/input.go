package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dots/camera"
)

// ControlsLegend lists the keyboard bindings.
const ControlsLegend = "Space: pause | < >: speed | R: restart | Arrows/wheel: pan/zoom | Home: reset view"

// HandleInput processes keyboard and mouse input for one frame.
func HandleInput(ctl Controller, cam *camera.Camera, overlays *OverlayRegistry) {
	if rl.IsWindowResized() {
		cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		ctl.TogglePause()
	}

	// Steps-per-update control with < > keys (comma and period)
	steps := ctl.State().StepsPerUpdate
	if rl.IsKeyPressed(rl.KeyComma) {
		ctl.SetStepsPerUpdate(steps - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		ctl.SetStepsPerUpdate(steps + 1)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		ctl.Restart()
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		overlays.HandleKeyPress(key)
	}

	handleCameraInput(cam)
}

// handleCameraInput processes camera pan/zoom controls.
func handleCameraInput(cam *camera.Camera) {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / cam.Zoom

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Pan(0, -panSpeed)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
