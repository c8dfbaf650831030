package components

// Genetics holds the five inherited traits. All are bounded; crossover
// averages the parents and mutation adds a bounded perturbation, clamped
// back into the configured range.
type Genetics struct {
	Intelligence float32
	Strength     float32
	Speed        float32 // Base movement speed, tiles per second
	Sight        float32 // Base perception radius, tiles
	Lifespan     float32 // Maximum age, seconds
}
