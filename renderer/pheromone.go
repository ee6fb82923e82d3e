package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/camera"
)

// PheromoneRenderer draws the pheromone field as a translucent heat map.
// The texture has one texel per field cell and is stretched over the world rect.
type PheromoneRenderer struct {
	tex        rl.Texture2D
	texW, texH int
	pixels     []color.RGBA

	tint        color.RGBA
	initialized bool
}

// NewPheromoneRenderer creates a renderer drawing trails in tint.
func NewPheromoneRenderer(tint color.RGBA) *PheromoneRenderer {
	return &PheromoneRenderer{tint: tint}
}

// Init allocates the texture (must be called after the raylib window is created).
func (r *PheromoneRenderer) Init(gridW, gridH int) {
	if r.initialized {
		return
	}

	r.texW = gridW
	r.texH = gridH
	r.pixels = make([]color.RGBA, gridW*gridH)

	img := rl.GenImageColor(gridW, gridH, rl.Blank)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update uploads field data. Intensity is log-scaled against maxCell so faint
// trails stay visible next to saturated ones around the nests.
func (r *PheromoneRenderer) Update(cells []uint32, w, h int, maxCell uint32) {
	if !r.initialized {
		r.Init(w, h)
	}
	if len(cells) != w*h || w != r.texW || h != r.texH {
		return
	}

	var scale float64
	if maxCell > 0 {
		scale = 1 / math.Log1p(float64(maxCell))
	}
	for i, c := range cells {
		if c == 0 {
			r.pixels[i] = color.RGBA{}
			continue
		}
		v := math.Log1p(float64(c)) * scale
		a := uint8(40 + v*200)
		r.pixels[i] = color.RGBA{R: r.tint.R, G: r.tint.G, B: r.tint.B, A: a}
	}

	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw stretches the texture over the world rectangle as seen by cam.
func (r *PheromoneRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}

	x0, y0 := cam.WorldToScreen(0, 0)
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	dstRect := rl.Rectangle{X: x0, Y: y0, Width: cam.Scale(float32(r.texW)), Height: cam.Scale(float32(r.texH))}

	rl.DrawTexturePro(r.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *PheromoneRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
