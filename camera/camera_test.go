package camera

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.001
}

func TestNew(t *testing.T) {
	cam := New(800, 600, 800, 600)

	// Should be centered on the arena
	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("expected camera at (400, 300), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestIdentityWhenArenaMatchesScreen(t *testing.T) {
	cam := New(800, 600, 800, 600)

	points := [][2]float32{{0, 0}, {400, 10}, {400, 590}, {800, 600}}
	for _, p := range points {
		sx, sy := cam.WorldToScreen(p[0], p[1])
		if !approx(sx, p[0]) || !approx(sy, p[1]) {
			t.Errorf("WorldToScreen(%v) = (%f, %f), want identity", p, sx, sy)
		}
	}
}

func TestFitZoom(t *testing.T) {
	tests := []struct {
		name           string
		arenaW, arenaH float32
		want           float32
	}{
		{"same size", 800, 600, 1},
		{"small arena", 10, 10, 60},
		{"wide arena", 1600, 600, 0.5},
		{"tall arena", 800, 1200, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(800, 600, tt.arenaW, tt.arenaH)
			if !approx(cam.FitZoom, tt.want) {
				t.Errorf("FitZoom = %f, want %f", cam.FitZoom, tt.want)
			}
			if cam.Zoom != cam.FitZoom {
				t.Errorf("initial zoom %f, want fit %f", cam.Zoom, cam.FitZoom)
			}

			// Both arena corners must be on screen
			for _, c := range [][2]float32{{0, 0}, {tt.arenaW, tt.arenaH}} {
				sx, sy := cam.WorldToScreen(c[0], c[1])
				if sx < -0.001 || sx > 800.001 || sy < -0.001 || sy > 600.001 {
					t.Errorf("corner %v maps off screen to (%f, %f)", c, sx, sy)
				}
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(800, 600, 1600, 1200)
	cam.SetZoom(2.0)
	cam.Pan(100, -50)

	testPoints := [][2]float32{
		{800, 600},
		{100, 100},
		{1500, 1100},
	}

	for _, pt := range testPoints {
		sx, sy := cam.WorldToScreen(pt[0], pt[1])
		wx, wy := cam.ScreenToWorld(sx, sy)
		if !approx(wx, pt[0]) || !approx(wy, pt[1]) {
			t.Errorf("roundtrip failed for (%f, %f): got (%f, %f)", pt[0], pt[1], wx, wy)
		}
	}
}

func TestPanClampsToArena(t *testing.T) {
	cam := New(800, 600, 800, 600)

	cam.Pan(-10000, -10000)
	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("pan past top-left: got (%f, %f), want (0, 0)", cam.X, cam.Y)
	}

	cam.Pan(10000, 10000)
	if cam.X != 800 || cam.Y != 600 {
		t.Errorf("pan past bottom-right: got (%f, %f), want (800, 600)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 600, 800, 600)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.FitZoom {
		t.Errorf("zoom below fit should clamp to %f, got %f", cam.FitZoom, cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom above max should clamp to %f, got %f", cam.MaxZoom, cam.Zoom)
	}

	cam.SetZoom(1.0)
	cam.ZoomBy(2.0)
	if cam.Zoom != 2.0 {
		t.Errorf("ZoomBy(2.0) from 1.0 should give 2.0, got %f", cam.Zoom)
	}
}

func TestResizeKeepsArenaVisible(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.Resize(400, 300)

	if !approx(cam.FitZoom, 0.5) {
		t.Errorf("FitZoom after resize = %f, want 0.5", cam.FitZoom)
	}
	if cam.Zoom < cam.FitZoom {
		t.Errorf("zoom %f below fit %f after resize", cam.Zoom, cam.FitZoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 1600, 1200)
	cam.SetZoom(2.0) // visible half-extents 200x150 around (800, 600)

	tests := []struct {
		name    string
		x, y    float32
		radius  float32
		visible bool
	}{
		{"center", 800, 600, 1, true},
		{"inside edge", 990, 600, 1, true},
		{"outside", 1100, 600, 1, false},
		{"radius reaches in", 1005, 600, 10, true},
		{"far corner", 0, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.IsVisible(tt.x, tt.y, tt.radius); got != tt.visible {
				t.Errorf("IsVisible(%f, %f, %f) = %v, want %v", tt.x, tt.y, tt.radius, got, tt.visible)
			}
		})
	}
}

func TestReset(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(3)
	cam.Pan(120, 80)

	cam.Reset()
	if cam.X != 400 || cam.Y != 300 || cam.Zoom != cam.FitZoom {
		t.Errorf("after reset: (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
