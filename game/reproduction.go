package game

import (
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
)

// updateReproduction pairs eligible blobs and spawns their children.
// Pairing walks candidates in ascending id and greedily matches each
// with its nearest unpaired partner in mating range, so the outcome is
// independent of entity iteration order. Each blob mates at most once
// per tick. Distances use start-of-tick positions.
func (g *Game) updateReproduction() {
	type candidate struct {
		entity ecs.Entity
		id     uint32
	}
	var candidates []candidate

	query := g.entityFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, _, blob, _ := query.Get()

		if g.mateEligible(blob) {
			candidates = append(candidates, candidate{entity: entity, id: blob.ID})
		}
	}
	if len(candidates) < 2 {
		return
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].id < candidates[j].id
	})

	radius := float32(g.cfg.Reproduction.MatingRadius)
	radiusSq := radius * radius

	type birth struct {
		x, y float32
		gen  components.Genetics
	}
	var births []birth
	paired := make(map[uint32]bool)

	for i, a := range candidates {
		if paired[a.id] {
			continue
		}
		aPos, ok := g.prevPos[a.id]
		if !ok {
			continue
		}

		// Nearest unpaired partner in range, lowest id on ties.
		bestDistSq := radiusSq
		bestIdx := -1
		for j := i + 1; j < len(candidates); j++ {
			b := candidates[j]
			if paired[b.id] {
				continue
			}
			bPos, ok := g.prevPos[b.id]
			if !ok {
				continue
			}
			dx, dy := bPos.X-aPos.X, bPos.Y-aPos.Y
			distSq := dx*dx + dy*dy
			if distSq <= bestDistSq && (bestIdx == -1 || distSq < bestDistSq) {
				bestDistSq = distSq
				bestIdx = j
			}
		}
		if bestIdx == -1 {
			continue
		}
		b := candidates[bestIdx]
		paired[a.id] = true
		paired[b.id] = true

		aBlob := g.blobMap.Get(a.entity)
		bBlob := g.blobMap.Get(b.entity)
		aGen := g.genMap.Get(a.entity)
		bGen := g.genMap.Get(b.entity)
		if aBlob == nil || bBlob == nil || aGen == nil || bGen == nil {
			continue
		}

		aBlob.ReproCooldown = float32(g.cfg.Reproduction.ParentCooldown)
		bBlob.ReproCooldown = float32(g.cfg.Reproduction.ParentCooldown)
		aBlob.ClearTarget()
		bBlob.ClearTarget()
		aBlob.State = components.StateWandering
		bBlob.State = components.StateWandering

		bPos := g.prevPos[b.id]
		x, y := g.childPosition(aPos, bPos)
		births = append(births, birth{x: x, y: y, gen: g.crossover(aGen, bGen)})
	}

	// Spawn children outside query iteration.
	for _, b := range births {
		child := g.spawnBlob(b.x, b.y, b.gen)
		if blob := g.blobMap.Get(child); blob != nil {
			blob.ReproCooldown = float32(g.cfg.Reproduction.NewbornCooldown)
		}
		g.birthCount++
		if g.collector != nil {
			g.collector.RecordBirth()
		}
	}
}

// childPosition places a newborn at the parents' midpoint, falling back
// to the first parent's tile when the midpoint is not walkable.
func (g *Game) childPosition(a, b components.Position) (float32, float32) {
	mx := clampCoord((a.X+b.X)/2, g.cfg.Derived.MapW32)
	my := clampCoord((a.Y+b.Y)/2, g.cfg.Derived.MapH32)
	if g.terrain.WalkableAt(int(mx), int(my)) {
		return mx, my
	}
	return a.X, a.Y
}
