// Package components defines ECS components and the placed world objects of the simulation.
package components

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity.
// Near unit length after steering, but random walk lets it drift.
type Velocity struct {
	X, Y float32
}
