package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayRegistryToggle(t *testing.T) {
	reg := NewOverlayRegistry()

	if reg.IsEnabled(OverlayPheromone) {
		t.Fatal("overlays should start disabled")
	}

	id, on, ok := reg.HandleKeyPress(rl.KeyH)
	if !ok || id != OverlayPheromone || !on {
		t.Fatalf("HandleKeyPress(H) = %v, %v, %v", id, on, ok)
	}
	if !reg.IsEnabled(OverlayPheromone) {
		t.Error("pheromone overlay not enabled")
	}

	if _, on, _ := reg.HandleKeyPress(rl.KeyH); on {
		t.Error("second press should disable")
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key toggled an overlay")
	}
}

func TestOverlayRegistryExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Register(OverlayDescriptor{ID: "a", Category: "test", Exclusive: []OverlayID{"b"}})
	reg.Register(OverlayDescriptor{ID: "b", Category: "test", Exclusive: []OverlayID{"a"}})

	reg.SetEnabled("a", true)
	reg.Toggle("b")
	if reg.IsEnabled("a") || !reg.IsEnabled("b") {
		t.Error("enabling b should disable a")
	}
	if got := len(reg.ByCategory("test")); got != 2 {
		t.Errorf("ByCategory = %d overlays, want 2", got)
	}
	cats := reg.Categories()
	if cats[len(cats)-1] != "test" {
		t.Errorf("categories = %v, want test last", cats)
	}
}

func TestPanelContains(t *testing.T) {
	reg := NewOverlayRegistry()
	panel := NewOverlayPanel(100, 50, 180)
	h := panel.Height(reg)
	if h <= 0 {
		t.Fatalf("overlay panel height = %d", h)
	}

	tests := []struct {
		name   string
		x, y   float32
		inside bool
	}{
		{"top-left corner", 100, 50, true},
		{"centre", 190, 50 + float32(h)/2, true},
		{"left of panel", 99, 60, false},
		{"below panel", 150, 50 + float32(h) + 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := panel.Contains(tt.x, tt.y, reg); got != tt.inside {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.inside)
			}
		})
	}

	panel.SetPosition(500, 50)
	if panel.Contains(190, 60, reg) || !panel.Contains(590, 60, reg) {
		t.Error("Contains did not follow SetPosition")
	}

	stats := NewStatsPanel(0, 0, 180)
	stats.SetPosition(20, 300)
	if !stats.Contains(30, 310) || stats.Contains(30, 290) || stats.Contains(30, 300+float32(stats.Height())+1) {
		t.Error("stats panel bounds wrong")
	}
}
