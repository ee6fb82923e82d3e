package components

// FoodSource is a depletable food pile.
type FoodSource struct {
	Position
	Amount int // Never negative; 0 = depleted
}

// Depleted reports whether nothing is left to capture.
func (f *FoodSource) Depleted() bool {
	return f.Amount <= 0
}

// Obstacle is a static round blocker.
type Obstacle struct {
	Position
	Size float32 // Diameter
}

// Nest collects delivered food. Ants reference it by index.
type Nest struct {
	Position
	FoodStored int
}

// DepositFood records one delivered unit.
func (n *Nest) DepositFood() {
	n.FoodStored++
}
