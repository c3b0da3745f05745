// Package ui provides the HUD, the control panel and keyboard handling.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	StatusColor   rl.Color
	Padding       int32
	LineHeight    int32
	FontSize      int32
	HeaderSize    int32
}

// DefaultTheme returns the default UI theme. Text is dark to read on the
// white arena.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 245, G: 245, B: 245, A: 230},
		PanelBorder:   rl.Color{R: 180, G: 180, B: 180, A: 255},
		SectionHeader: rl.DarkGray,
		LabelColor:    rl.Black,
		ValueColor:    rl.DarkGray,
		StatusColor:   rl.Maroon,
		Padding:       8,
		LineHeight:    12,
		FontSize:      10,
		HeaderSize:    12,
	}
}

// Renderer handles UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLine draws one line of body text and returns the next Y position.
func (r *Renderer) DrawLine(x, y int32, text string) int32 {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	return y + r.Theme.LineHeight
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}
