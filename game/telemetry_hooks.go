package game

import (
	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/telemetry"
)

// BuildSnapshot captures the full simulation state.
func (g *Game) BuildSnapshot() *telemetry.Snapshot {
	counts := g.terrain.Tiles.Counts()
	snap := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		Seed:       g.terrain.Seed,
		Tick:       g.tick,
		SimTime:    g.simTime,
		MapWidth:   g.terrain.Tiles.Width(),
		MapHeight:  g.terrain.Tiles.Height(),
		TileCounts: counts[:],
	}

	for _, obj := range g.terrain.Occupancy.Objects() {
		snap.Objects = append(snap.Objects, telemetry.ObjectState{
			Kind:       uint8(obj.Kind),
			X:          obj.X,
			Y:          obj.Y,
			Stage:      obj.Stage,
			StageTimer: obj.StageTimer,
			FlowerType: obj.FlowerType,
		})
	}

	g.ForEachBlob(func(pos *components.Position, blob *components.Blob, gen *components.Genetics) {
		snap.Blobs = append(snap.Blobs, telemetry.BlobState{
			ID:            blob.ID,
			State:         uint8(blob.State),
			X:             pos.X,
			Y:             pos.Y,
			Hunger:        blob.Hunger,
			Thirst:        blob.Thirst,
			HP:            blob.HP,
			Age:           blob.Age,
			ReproCooldown: blob.ReproCooldown,
			Intelligence:  gen.Intelligence,
			Strength:      gen.Strength,
			Speed:         gen.Speed,
			Sight:         gen.Sight,
			Lifespan:      gen.Lifespan,
		})
	})

	return snap
}

// BuildSample collects per-blob values for window statistics.
func (g *Game) BuildSample() telemetry.PopulationSample {
	var s telemetry.PopulationSample
	g.ForEachBlob(func(_ *components.Position, blob *components.Blob, gen *components.Genetics) {
		s.Hunger = append(s.Hunger, float64(blob.Hunger))
		s.Thirst = append(s.Thirst, float64(blob.Thirst))
		s.HP = append(s.HP, float64(blob.HP))
		s.Age = append(s.Age, float64(blob.Age))
		s.Speed = append(s.Speed, float64(gen.Speed))
		s.Sight = append(s.Sight, float64(gen.Sight))
		s.Strength = append(s.Strength, float64(gen.Strength))
		s.Lifespan = append(s.Lifespan, float64(gen.Lifespan))
	})
	return s
}

// FlushStats flushes the collector window if due and writes the result
// through the output manager. logStats additionally logs the window.
func (g *Game) FlushStats(om *telemetry.OutputManager, logStats bool) error {
	if g.collector == nil || !g.collector.ShouldFlush() {
		return nil
	}
	stats := g.collector.Flush(g.BuildSample())
	if logStats {
		stats.LogStats()
	}
	return om.WriteStats(stats)
}
