package camera

import (
	"math"
	"testing"
)

func TestNewMapsWorldOriginToScreenOrigin(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	sx, sy := cam.WorldToScreen(0, 0)
	if math.Abs(float64(sx)) > 0.01 || math.Abs(float64(sy)) > 0.01 {
		t.Errorf("world origin at screen (%f, %f), want (0, 0)", sx, sy)
	}
	wx, wy := cam.ScreenToWorld(110, 100)
	if wx != 110 || wy != 100 {
		t.Errorf("screen (110, 100) -> world (%f, %f), want identity", wx, wy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(2)
	cam.Pan(300, -50)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysInWorld(t *testing.T) {
	cam := New(800, 600, 800, 600)

	cam.Pan(-5000, 5000)
	if cam.X != 0 || cam.Y != 600 {
		t.Errorf("camera at (%f, %f), want clamped to (0, 600)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 600, 800, 600)

	tests := []struct {
		name   string
		factor float32
		want   float32
	}{
		{"in", 2, 2},
		{"far in", 100, cam.MaxZoom},
		{"far out", 0.0001, cam.MinZoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam.Reset()
			cam.ZoomBy(tt.factor)
			if cam.Zoom != tt.want {
				t.Errorf("zoom = %f, want %f", cam.Zoom, tt.want)
			}
		})
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 1600, 1200)

	if !cam.IsVisible(10, 10, 1) {
		t.Error("point near the origin should be visible")
	}
	if cam.IsVisible(1500, 1100, 5) {
		t.Error("far corner should be culled")
	}
	if cam.Scale(3) != 3 {
		t.Errorf("Scale(3) at zoom 1 = %f", cam.Scale(3))
	}
}
