// Package components defines ECS components for the simulation.
package components

// Position is an entity's continuous world position in tile units.
// The tile coordinate is a derived, rounded view of this; the two
// representations are never conflated.
type Position struct {
	X, Y float32
}

// TileX returns the grid column containing this position.
func (p Position) TileX() int {
	return int(p.X)
}

// TileY returns the grid row containing this position.
func (p Position) TileY() int {
	return int(p.Y)
}

// Velocity is an entity's heading as a unit direction vector.
// Actual displacement per tick is direction * effective speed * dt.
type Velocity struct {
	DirX, DirY float32
}
