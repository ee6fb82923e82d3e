// Package ui draws the viewer's panels, mode bar and HUD on top of the simulation.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants. BarFill matches the pheromone overlay tint.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	ActiveColor    rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 34, G: 28, B: 22, A: 225},
		PanelBorder:    rl.Color{R: 92, G: 74, B: 56, A: 255},
		SectionHeader:  rl.Color{R: 222, G: 170, B: 110, A: 255},
		LabelColor:     rl.Color{R: 200, G: 192, B: 180, A: 255},
		ValueColor:     rl.RayWhite,
		ActiveColor:    rl.Color{R: 90, G: 190, B: 90, A: 255},
		BarBg:          rl.Color{R: 50, G: 44, B: 38, A: 255},
		BarFill:        rl.Color{R: 120, G: 60, B: 200, A: 255},
		Padding:        8,
		LineHeight:     16,
		LabelWidth:     100,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
