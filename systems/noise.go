// Package systems provides the world generation and resource systems
// for the simulation.
package systems

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/blobs/config"
)

// NoiseField is a deterministic 2D scalar field derived from a seed.
// Sample returns values in [-1, 1]; the same (seed, x, y) always yields
// the same value, which is what makes generation reproducible.
type NoiseField struct {
	noise       opensimplex.Noise
	scale       float64
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewNoiseField creates a noise field for the given seed and parameters.
func NewNoiseField(seed int64, cfg config.NoiseConfig) *NoiseField {
	return &NoiseField{
		noise:       opensimplex.New(seed),
		scale:       cfg.Scale,
		octaves:     cfg.Octaves,
		persistence: cfg.Persistence,
		lacunarity:  cfg.Lacunarity,
	}
}

// Sample returns the fractal noise value at (x, y), in [-1, 1].
// Octaves are summed with decaying amplitude and increasing frequency,
// then normalized so the range stays stable across octave counts.
func (f *NoiseField) Sample(x, y float64) float64 {
	nx := x / f.scale
	ny := y / f.scale

	var sum, amp, totalAmp float64
	amp = 1.0
	freq := 1.0

	for o := 0; o < f.octaves; o++ {
		sum += amp * f.noise.Eval2(nx*freq, ny*freq)
		totalAmp += amp
		amp *= f.persistence
		freq *= f.lacunarity
	}

	return sum / totalAmp
}
