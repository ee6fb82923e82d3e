package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ModeBar renders the row of placement mode buttons.
type ModeBar struct {
	renderer *Renderer
	labels   []string
	x, y     float32
	buttonW  float32
	buttonH  float32
	gap      float32
}

// NewModeBar creates a mode bar with one button per label.
func NewModeBar(x, y float32, labels ...string) *ModeBar {
	return &ModeBar{
		renderer: NewRenderer(),
		labels:   labels,
		x:        x,
		y:        y,
		buttonW:  130,
		buttonH:  28,
		gap:      8,
	}
}

// Height returns the bar height including padding.
func (m *ModeBar) Height() float32 {
	return m.buttonH + 2*m.gap
}

// Contains reports whether a screen point is over the bar, so clicks on it are
// not forwarded to the world.
func (m *ModeBar) Contains(px, py float32) bool {
	w := float32(len(m.labels))*(m.buttonW+m.gap) + m.gap
	return px >= m.x && px <= m.x+w && py >= m.y && py <= m.y+m.Height()
}

// Draw renders the buttons with the active one outlined.
// Returns the index of the clicked button, or -1.
func (m *ModeBar) Draw(active int) int {
	clicked := -1
	w := float32(len(m.labels))*(m.buttonW+m.gap) + m.gap
	m.renderer.DrawPanel(int32(m.x), int32(m.y), int32(w), int32(m.Height()))

	for i, label := range m.labels {
		bounds := rl.Rectangle{
			X:      m.x + m.gap + float32(i)*(m.buttonW+m.gap),
			Y:      m.y + m.gap,
			Width:  m.buttonW,
			Height: m.buttonH,
		}
		if gui.Button(bounds, label) {
			clicked = i
		}
		if i == active {
			rl.DrawRectangleLinesEx(bounds, 2, m.renderer.Theme.ActiveColor)
		}
	}
	return clicked
}

// OverlayPanel lists the overlays with their key bindings and state.
type OverlayPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewOverlayPanel creates an overlay panel at the given position.
func NewOverlayPanel(x, y, width int32) *OverlayPanel {
	return &OverlayPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition moves the panel's top-left corner.
func (c *OverlayPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Height returns the panel height for the overlays it lists.
func (c *OverlayPanel) Height(overlays *OverlayRegistry) int32 {
	theme := c.renderer.Theme
	rows := len(overlays.Descriptors()) + len(overlays.Categories())
	return int32(rows)*theme.LineHeight + theme.Padding*2 + theme.LineHeight
}

// Contains reports whether a screen point is over the panel.
func (c *OverlayPanel) Contains(px, py float32, overlays *OverlayRegistry) bool {
	return inRect(px, py, c.x, c.y, c.width, c.Height(overlays))
}

// Draw renders the panel and returns the Y position below it.
func (c *OverlayPanel) Draw(overlays *OverlayRegistry) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	panelHeight := c.Height(overlays)

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, r.Theme.HeaderFontSize, rl.White)
	y += lineHeight

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.FontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)

			status := rl.Color{R: 80, G: 80, B: 80, A: 255}
			nameColor := r.Theme.LabelColor
			if enabled {
				status = r.Theme.ActiveColor
				nameColor = rl.White
			}
			rl.DrawRectangle(c.x+padding, y+2, 8, 8, status)
			rl.DrawText(desc.Name, c.x+padding+14, y, r.Theme.FontSize, nameColor)
			if desc.KeyLabel != "" {
				r.DrawKeyHint(c.x+c.width-padding, y, desc.KeyLabel)
			}
			y += lineHeight
		}
	}

	return c.y + panelHeight
}

func categoryLabel(cat string) string {
	switch cat {
	case "field":
		return "Field"
	case "debug":
		return "Debug"
	case "info":
		return "Info"
	default:
		return cat
	}
}

// inRect reports whether (px, py) lies inside the rectangle, edges included.
func inRect(px, py float32, x, y, w, h int32) bool {
	return px >= float32(x) && px <= float32(x+w) && py >= float32(y) && py <= float32(y+h)
}
