package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/sim"
)

const (
	statusRows      = 2
	maxStepsPerTick = 50
)

var (
	styleDefault   = tcell.StyleDefault
	styleNest      = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown).Bold(true)
	styleFood      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleObstacle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSearching = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleCarrying  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// viewer maps the simulation surface onto the terminal grid.
type viewer struct {
	sim    *sim.Simulation
	screen tcell.Screen
	tone   *tone

	cols, rows int // Grid area, status rows excluded
	trail      []uint64

	mode       sim.PlacementMode
	paused     bool
	steps      int
	mouseDown  bool
	lastStored int
}

func newViewer(s *sim.Simulation, steps int) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	v := &viewer{
		sim:    s,
		screen: screen,
		steps:  max(steps, 1),
	}
	v.handleResize()
	return v, nil
}

func (v *viewer) initAudio() error {
	t, err := newTone()
	if err != nil {
		return err
	}
	v.tone = t
	return nil
}

func (v *viewer) cleanup() {
	if v.tone != nil {
		v.tone.close()
	}
	v.screen.Fini()
}

func (v *viewer) handleResize() {
	w, h := v.screen.Size()
	v.cols = max(w, 1)
	v.rows = max(h-statusRows, 1)
	v.trail = make([]uint64, v.cols*v.rows)
	v.screen.Sync()
}

// cellToWorld returns the world position at the centre of a terminal cell.
func (v *viewer) cellToWorld(cx, cy int) (float32, float32) {
	return (float32(cx) + 0.5) * v.sim.Width() / float32(v.cols),
		(float32(cy) + 0.5) * v.sim.Height() / float32(v.rows)
}

// worldToCell returns the terminal cell covering a world position.
func (v *viewer) worldToCell(x, y float32) (int, int, bool) {
	cx := int(x * float32(v.cols) / v.sim.Width())
	cy := int(y * float32(v.rows) / v.sim.Height())
	if cx < 0 || cx >= v.cols || cy < 0 || cy >= v.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

func (v *viewer) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			if !v.paused {
				v.step()
			}
			v.draw()
		}
	}
}

// step advances the simulation and beeps when food reached a nest.
func (v *viewer) step() {
	for i := 0; i < v.steps; i++ {
		v.sim.Step()
		if stats, ok := v.sim.FlushStats(); ok {
			stats.LogStats()
		}
	}

	stored := 0
	for _, n := range v.sim.Nests() {
		stored += n.FoodStored
	}
	if stored > v.lastStored && v.tone != nil {
		v.tone.play()
	}
	v.lastStored = stored
}

func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'n':
			v.mode = sim.ModeNests
		case 'f':
			v.mode = sim.ModeFood
		case 'o':
			v.mode = sim.ModeObstacles
		case ' ':
			v.paused = !v.paused
		case '+', '=':
			v.steps = min(v.steps+1, maxStepsPerTick)
		case '-':
			v.steps = max(v.steps-1, 1)
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !v.mouseDown {
			cx, cy := ev.Position()
			v.placeAt(cx, cy)
		}
		v.mouseDown = down

	case *tcell.EventResize:
		v.handleResize()
	}

	return true
}

func (v *viewer) placeAt(cx, cy int) {
	if cy >= v.rows {
		return
	}
	x, y := v.cellToWorld(cx, cy)
	if _, err := v.sim.Place(v.mode, x, y); err != nil && !errors.Is(err, sim.ErrOutOfBounds) {
		slog.Error("placement failed", "mode", v.mode, "error", err)
	}
}

func (v *viewer) draw() {
	v.screen.Clear()

	v.drawTrail()
	v.drawObstacles()
	for _, f := range v.sim.FoodSources() {
		if !f.Depleted() {
			v.put(f.Position, '*', styleFood)
		}
	}
	for _, a := range v.sim.Ants() {
		if a.State == components.StateCarryingFood {
			v.put(a.Position, 'o', styleCarrying)
		} else {
			v.put(a.Position, '.', styleSearching)
		}
	}
	for _, n := range v.sim.Nests() {
		v.put(n.Position, 'N', styleNest)
	}

	v.drawStatus()
	v.screen.Show()
}

func (v *viewer) put(pos components.Position, r rune, style tcell.Style) {
	if cx, cy, ok := v.worldToCell(pos.X, pos.Y); ok {
		v.screen.SetContent(cx, cy, r, nil, style)
	}
}

// drawTrail bins the pheromone field into terminal cells and shades each cell
// background by its log-scaled total.
func (v *viewer) drawTrail() {
	clear(v.trail)

	field := v.sim.Field()
	fw, fh := field.GridSize()
	data := field.Data()
	for y := 0; y < fh; y++ {
		cy := y * v.rows / fh
		row := data[y*fw : (y+1)*fw]
		for x, c := range row {
			if c == 0 {
				continue
			}
			v.trail[cy*v.cols+x*v.cols/fw] += uint64(c)
		}
	}

	var peak uint64
	for _, t := range v.trail {
		peak = max(peak, t)
	}
	if peak == 0 {
		return
	}

	scale := 1 / math.Log1p(float64(peak))
	for i, t := range v.trail {
		if t == 0 {
			continue
		}
		level := int32(30 + 120*math.Log1p(float64(t))*scale)
		style := styleDefault.Background(tcell.NewRGBColor(level/2, 0, level))
		v.screen.SetContent(i%v.cols, i/v.cols, ' ', nil, style)
	}
}

// drawObstacles fills every cell whose centre lies inside an obstacle square.
func (v *viewer) drawObstacles() {
	for _, o := range v.sim.Obstacles() {
		half := o.Size / 2
		x0, y0 := v.clampCell(o.X-half, o.Y-half)
		x1, y1 := v.clampCell(o.X+half, o.Y+half)
		for cy := y0; cy <= y1; cy++ {
			for cx := x0; cx <= x1; cx++ {
				v.screen.SetContent(cx, cy, '#', nil, styleObstacle)
			}
		}
	}
}

func (v *viewer) clampCell(x, y float32) (int, int) {
	cx := int(x * float32(v.cols) / v.sim.Width())
	cy := int(y * float32(v.rows) / v.sim.Height())
	return min(max(cx, 0), v.cols-1), min(max(cy, 0), v.rows-1)
}

func (v *viewer) drawStatus() {
	counts := v.sim.Counts()
	stored := 0
	for _, n := range v.sim.Nests() {
		stored += n.FoodStored
	}
	remaining := 0
	for _, f := range v.sim.FoodSources() {
		remaining += f.Amount
	}

	state := "running"
	if v.paused {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf(" tick %d | ants %d (%d carrying) | food left %d | stored %d | x%d %s",
			v.sim.Tick(), counts.Total(), counts.Carrying, remaining, stored, v.steps, state),
		fmt.Sprintf(" placing: %s | n/f/o mode | click place | space pause | +/- speed | q quit", v.mode),
	}

	w, _ := v.screen.Size()
	for i, line := range lines {
		y := v.rows + i
		for x := 0; x < w; x++ {
			r := ' '
			if x < len(line) {
				r = rune(line[x])
			}
			v.screen.SetContent(x, y, r, nil, styleStatus)
		}
	}
}
