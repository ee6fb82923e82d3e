package systems

import (
	"math"

	"github.com/pthm-cable/antfarm/components"
)

// Distance functions

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	return float32(math.Sqrt(float64(distanceSq(x1, y1, x2, y2))))
}

// within reports whether a is strictly closer than radius to b.
func within(a, b components.Position, radius float32) bool {
	return distance(a.X, a.Y, b.X, b.Y) < radius
}

// normalize returns the unit vector of (x, y).
// ok is false for a zero-length vector.
func normalize(x, y float32) (ux, uy float32, ok bool) {
	mag := float32(math.Sqrt(float64(x*x + y*y)))
	if mag == 0 || math.IsNaN(float64(mag)) || math.IsInf(float64(mag), 0) {
		return 0, 0, false
	}
	return x / mag, y / mag, true
}

// rotate rotates (x, y) by angle radians counter-clockwise.
func rotate(x, y float32, angle float64) (float32, float32) {
	sin, cos := math.Sincos(angle)
	rx := float64(x)*cos - float64(y)*sin
	ry := float64(x)*sin + float64(y)*cos
	return float32(rx), float32(ry)
}

// segmentPointDistance returns the distance from (px, py) to the segment a-b.
func segmentPointDistance(ax, ay, bx, by, px, py float32) float32 {
	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return distance(ax, ay, px, py)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return distance(ax+t*dx, ay+t*dy, px, py)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
