package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the values shown in the heads-up display.
type HUDData struct {
	Tick          int32
	Ants          int
	Carrying      int
	FoodRemaining int
	FoodStored    int
	StepsPerFrame int
	FPS           int32
	Paused        bool
	Mode          string
}

// HUD renders the status lines below the mode bar.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD starting at y.
func (h *HUD) Draw(y int32, data HUDData) {
	rl.DrawText(
		fmt.Sprintf("Ants: %d (%d carrying) | Food left: %d | Stored: %d",
			data.Ants, data.Carrying, data.FoodRemaining, data.FoodStored),
		10, y, 16, rl.DarkGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Steps/frame: %d | FPS: %d | Placing: %s",
			data.Tick, data.StepsPerFrame, data.FPS, data.Mode),
		10, y+20, 16, rl.DarkGray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, y+40, 16, rl.Maroon)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatsPanelData holds colony statistics for the stats panel.
type StatsPanelData struct {
	Searching      int
	Carrying       int
	FoodRemaining  int
	FoodInitial    int
	FoodStored     int
	PheromoneMax   uint32
	PheromoneCover float32 // Fraction of cells with any deposit
	NestDistMean   float64
	TicksPerSecond float64
}

// StatsPanel renders colony statistics.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a stats panel at the given position.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition moves the panel's top-left corner.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x, s.y = x, y
}

// Height returns the panel height.
func (s *StatsPanel) Height() int32 {
	return s.renderer.Theme.LineHeight*10 + s.renderer.Theme.Padding*2
}

// Contains reports whether a screen point is over the panel.
func (s *StatsPanel) Contains(px, py float32) bool {
	return inRect(px, py, s.x, s.y, s.width, s.Height())
}

// Draw renders the panel.
func (s *StatsPanel) Draw(data StatsPanelData) {
	r := s.renderer
	padding := r.Theme.Padding
	inner := s.width - padding*2

	r.DrawPanel(s.x, s.y, s.width, s.Height())

	y := s.y + padding
	y = r.DrawSectionHeader(s.x+padding, y, "Colony")
	y = r.DrawLabelValue(s.x+padding, y, "Searching", fmt.Sprintf("%d", data.Searching))
	y = r.DrawLabelValue(s.x+padding, y, "Carrying", fmt.Sprintf("%d", data.Carrying))
	y = r.DrawLabelValue(s.x+padding, y, "Stored", fmt.Sprintf("%d", data.FoodStored))

	var left float32
	if data.FoodInitial > 0 {
		left = float32(data.FoodRemaining) / float32(data.FoodInitial)
	}
	y = r.DrawBar(s.x+padding, y, "Food left", left, fmt.Sprintf("%d", data.FoodRemaining), inner)
	y = r.DrawBar(s.x+padding, y, "Trail cover", data.PheromoneCover, fmt.Sprintf("%.0f%%", data.PheromoneCover*100), inner)
	y = r.DrawLabelValue(s.x+padding, y, "Trail max", fmt.Sprintf("%d", data.PheromoneMax))
	y = r.DrawLabelValue(s.x+padding, y, "Nest dist", fmt.Sprintf("%.1f", data.NestDistMean))
	r.DrawLabelValue(s.x+padding, y, "Ticks/s", fmt.Sprintf("%.0f", data.TicksPerSecond))
}
