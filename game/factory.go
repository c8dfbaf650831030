package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
)

// rollGenetics draws a fresh founder genome, each trait uniform in its
// configured range.
func (g *Game) rollGenetics() components.Genetics {
	gen := g.cfg.Genetics
	return components.Genetics{
		Intelligence: g.uniform(gen.IntelligenceMin, gen.IntelligenceMax),
		Strength:     g.uniform(gen.StrengthMin, gen.StrengthMax),
		Speed:        g.uniform(gen.SpeedMin, gen.SpeedMax),
		Sight:        g.uniform(gen.SightMin, gen.SightMax),
		Lifespan:     g.uniform(gen.LifespanMin, gen.LifespanMax),
	}
}

func (g *Game) uniform(lo, hi float64) float32 {
	return float32(lo + g.rng.Float64()*(hi-lo))
}

// spawnBlob creates a blob at (x, y) with the given genetics. Newborns
// start healthy with zeroed needs.
func (g *Game) spawnBlob(x, y float32, gen components.Genetics) ecs.Entity {
	id := g.nextID
	g.nextID++

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	blob := components.Blob{
		ID:       id,
		State:    components.StateWandering,
		Alive:    true,
		HP:       float32(g.cfg.Blobs.MaxHP),
		Speed:    gen.Speed,
		Strength: gen.Strength,
		Sight:    gen.Sight,
	}

	entity := g.entityMapper.NewEntity(&pos, &vel, &blob, &gen)
	g.entityByID[id] = entity
	g.aliveCount++

	return entity
}

// crossover builds a child genome from two parents: each trait is the
// parental mean plus a uniform mutation, clamped to the founder range.
func (g *Game) crossover(a, b *components.Genetics) components.Genetics {
	gen := g.cfg.Genetics
	mut := gen.Mutation
	return components.Genetics{
		Intelligence: g.inherit(a.Intelligence, b.Intelligence, mut.Intelligence, gen.IntelligenceMin, gen.IntelligenceMax),
		Strength:     g.inherit(a.Strength, b.Strength, mut.Strength, gen.StrengthMin, gen.StrengthMax),
		Speed:        g.inherit(a.Speed, b.Speed, mut.Speed, gen.SpeedMin, gen.SpeedMax),
		Sight:        g.inherit(a.Sight, b.Sight, mut.Sight, gen.SightMin, gen.SightMax),
		Lifespan:     g.inherit(a.Lifespan, b.Lifespan, mut.Lifespan, gen.LifespanMin, gen.LifespanMax),
	}
}

func (g *Game) inherit(a, b float32, bound, lo, hi float64) float32 {
	mean := float64(a+b) / 2
	mutated := mean + (g.rng.Float64()*2-1)*bound
	if mutated < lo {
		mutated = lo
	} else if mutated > hi {
		mutated = hi
	}
	return float32(mutated)
}
