package game

import "github.com/mlange-42/ark/ecs"

// cleanupDead removes dead entities from the world. Collection and
// removal are separate passes; the world must not change under an open
// query.
func (g *Game) cleanupDead() {
	type deadInfo struct {
		entity ecs.Entity
		id     uint32
	}
	var toRemove []deadInfo

	query := g.entityFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, _, blob, _ := query.Get()

		if !blob.Alive {
			toRemove = append(toRemove, deadInfo{entity: entity, id: blob.ID})
		}
	}

	for _, dead := range toRemove {
		g.entityMapper.Remove(dead.entity)
		delete(g.entityByID, dead.id)
		delete(g.prevPos, dead.id)
		g.aliveCount--
		g.deathCount++
		if g.collector != nil {
			g.collector.RecordDeath()
		}
	}
}
