package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayGoalRadius OverlayID = "goal_radius"
	OverlayDimDead    OverlayID = "dim_dead"
	OverlayPerf       OverlayID = "perf"
	OverlayControls   OverlayID = "controls"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID // Unique identifier
	Name     string    // Display name
	Key      int32     // Keyboard key to toggle (0 = no key)
	KeyLabel string    // Key label for display
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
// The control panel starts visible.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{enabled: make(map[OverlayID]bool)}

	reg.Register(OverlayDescriptor{ID: OverlayGoalRadius, Name: "Goal Radius", Key: rl.KeyG, KeyLabel: "G"})
	reg.Register(OverlayDescriptor{ID: OverlayDimDead, Name: "Dim Dead", Key: rl.KeyX, KeyLabel: "X"})
	reg.Register(OverlayDescriptor{ID: OverlayPerf, Name: "Performance", Key: rl.KeyF, KeyLabel: "F"})
	reg.Register(OverlayDescriptor{ID: OverlayControls, Name: "Controls", Key: rl.KeyTab, KeyLabel: "Tab"})
	reg.SetEnabled(OverlayControls, true)

	return reg
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.enabled[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.enabled[id]; ok {
		r.enabled[id] = enabled
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
