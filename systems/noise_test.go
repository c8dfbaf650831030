package systems

import (
	"testing"

	"github.com/pthm-cable/blobs/config"
)

func testNoiseConfig() config.NoiseConfig {
	return config.NoiseConfig{
		Scale:       20,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := NewNoiseField(42, testNoiseConfig())
	b := NewNoiseField(42, testNoiseConfig())

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			va := a.Sample(float64(x), float64(y))
			vb := b.Sample(float64(x), float64(y))
			if va != vb {
				t.Fatalf("same seed diverged at (%d,%d): %g vs %g", x, y, va, vb)
			}
		}
	}
}

func TestNoiseSeedChangesField(t *testing.T) {
	a := NewNoiseField(1, testNoiseConfig())
	b := NewNoiseField(2, testNoiseConfig())

	same := true
	for y := 0; y < 16 && same; y++ {
		for x := 0; x < 16; x++ {
			if a.Sample(float64(x), float64(y)) != b.Sample(float64(x), float64(y)) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical fields")
	}
}

func TestNoiseRange(t *testing.T) {
	f := NewNoiseField(7, testNoiseConfig())
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := f.Sample(float64(x), float64(y))
			if v < -1 || v > 1 {
				t.Fatalf("Sample(%d,%d) = %g, outside [-1,1]", x, y, v)
			}
		}
	}
}
