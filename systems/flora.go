package systems

import "github.com/pthm-cable/blobs/config"

// Berry bush growth stages.
const (
	StageSprout  uint8 = 0
	StageGrowing uint8 = 1
	StageRipe    uint8 = 2
)

// BerryLifecycle advances berry bushes through their growth stages and
// resolves harvests. It owns no state beyond the grid reference and the
// cached stage durations.
type BerryLifecycle struct {
	grid      *OccupancyGrid
	durations [2]float32
}

// NewBerryLifecycle creates a lifecycle system over the given grid.
func NewBerryLifecycle(grid *OccupancyGrid, cfg config.GrowthConfig) *BerryLifecycle {
	var l BerryLifecycle
	l.grid = grid
	for i := 0; i < 2 && i < len(cfg.StageDurations); i++ {
		l.durations[i] = float32(cfg.StageDurations[i])
	}
	return &l
}

// Update advances every berry bush by dt seconds. A bush that completes
// its stage duration moves to the next stage; ripe bushes hold at ripe.
// Leftover time carries into the next stage so growth rate is
// independent of tick size.
func (l *BerryLifecycle) Update(dt float32) {
	l.grid.mu.Lock()
	defer l.grid.mu.Unlock()
	for _, obj := range l.grid.cells {
		if obj == nil || obj.Kind != ObjectBerryBush || obj.Stage >= StageRipe {
			continue
		}
		obj.StageTimer += dt
		for obj.Stage < StageRipe && obj.StageTimer >= l.durations[obj.Stage] {
			obj.StageTimer -= l.durations[obj.Stage]
			obj.Stage++
		}
		if obj.Stage >= StageRipe {
			obj.StageTimer = 0
		}
	}
}

// Harvest atomically takes the berries from the bush at (x, y). Returns
// true if a ripe bush was harvested; the bush resets to the sprout
// stage and starts regrowing. Returns false if the tile holds no bush
// or the bush is not ripe, so of two blobs finishing a harvest on the
// same tick, exactly one succeeds.
func (l *BerryLifecycle) Harvest(x, y int) bool {
	if !l.grid.inBounds(x, y) {
		return false
	}
	l.grid.mu.Lock()
	defer l.grid.mu.Unlock()
	obj := l.grid.cells[l.grid.idx(x, y)]
	if obj == nil || obj.Kind != ObjectBerryBush || obj.Stage != StageRipe {
		return false
	}
	obj.Stage = StageSprout
	obj.StageTimer = 0
	return true
}

// Ripe reports whether the tile at (x, y) holds a ripe berry bush.
func (l *BerryLifecycle) Ripe(x, y int) bool {
	obj := l.grid.At(x, y)
	return obj != nil && obj.Kind == ObjectBerryBush && obj.Stage == StageRipe
}
