package components

// AntState is the foraging state of an ant.
type AntState uint8

const (
	StateSearching    AntState = iota // Looking for food
	StateCarryingFood                 // Returning food to its nest
)

// String returns the display name for an AntState.
func (s AntState) String() string {
	switch s {
	case StateSearching:
		return "Searching"
	case StateCarryingFood:
		return "CarryingFood"
	default:
		return "Unknown"
	}
}

// Ant holds per-agent foraging state.
type Ant struct {
	State AntState
	Speed float32
	Nest  int // Index of the owning nest; fixed at creation
}
