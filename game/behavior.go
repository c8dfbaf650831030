package game

import (
	"math"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/systems"
)

// Condition thresholds and factors. Each need past its threshold slows
// and weakens the blob independently, each satisfied need quickens it,
// so the factors stack; low health narrows perception.
const (
	condPoorHunger   = 80.0
	condPoorThirst   = 70.0
	condPoorSpeedDiv = 1.5
	condPoorStrength = 0.5
	condGoodNeed     = 30.0
	condGoodSpeed    = 1.1
	condGoodStrength = 2.0
	condLowHP        = 40.0
	condLowHPSight   = 0.5
)

// Wander turn timing in seconds.
const (
	wanderTurnMin = 1.0
	wanderTurnMax = 3.0
)

// updatePassive advances needs and age, applies health drains and
// regeneration, recomputes effective stats, and marks deaths. Runs
// serially in entity order.
func (g *Game) updatePassive(dt float32) {
	bc := g.cfg.Blobs

	query := g.entityFilter.Query()
	for query.Next() {
		_, _, blob, gen := query.Get()

		if !blob.Alive {
			continue
		}

		blob.Hunger = clampNeed(blob.Hunger + float32(bc.HungerRate)*dt)
		blob.Thirst = clampNeed(blob.Thirst + float32(bc.ThirstRate)*dt)
		blob.Age += dt

		if blob.Hunger > float32(bc.HungerStarvation) {
			blob.HP -= float32(bc.StarvationHPDrain) * dt
		}
		if blob.Thirst > float32(bc.ThirstStarvation) {
			blob.HP -= float32(bc.StarvationHPDrain) * dt
		}
		if blob.Hunger < float32(bc.WellFedThreshold) {
			blob.HP += float32(bc.WellFedHPRegen) * dt
		}
		if blob.Thirst < float32(bc.WellFedThreshold) {
			blob.HP += float32(bc.WellFedHPRegen) * dt
		}
		if float64(blob.Age) >= bc.OldAge.Tier2Age {
			blob.HP -= float32(bc.OldAge.Tier2HPDrain) * dt
		}
		if blob.HP > float32(bc.MaxHP) {
			blob.HP = float32(bc.MaxHP)
		}

		g.applyCondition(blob, gen)

		if blob.HP <= 0 || blob.Age >= gen.Lifespan {
			blob.Alive = false
			blob.State = components.StateDead
		}
	}
}

// applyCondition recomputes effective speed, strength, and sight from
// the genome, modulated by current needs, health, and age. Each need
// contributes its own factor; a blob starving on both needs is slowed
// twice over.
func (g *Game) applyCondition(blob *components.Blob, gen *components.Genetics) {
	speed, strength, sight := gen.Speed, gen.Strength, gen.Sight

	if blob.Hunger > condPoorHunger {
		speed /= condPoorSpeedDiv
		strength *= condPoorStrength
	}
	if blob.Thirst > condPoorThirst {
		speed /= condPoorSpeedDiv
		strength *= condPoorStrength
	}
	if blob.Hunger < condGoodNeed {
		speed *= condGoodSpeed
		strength *= condGoodStrength
	}
	if blob.Thirst < condGoodNeed {
		speed *= condGoodSpeed
		strength *= condGoodStrength
	}
	if blob.HP < condLowHP {
		sight *= condLowHPSight
	}

	oa := g.cfg.Blobs.OldAge
	switch {
	case float64(blob.Age) >= oa.Tier2Age:
		speed *= float32(oa.Tier2Speed)
		strength *= float32(oa.Tier2Strength)
		sight *= float32(oa.Tier2Sight)
	case float64(blob.Age) > oa.Tier1Age:
		speed *= float32(oa.Tier1Speed)
		strength *= float32(oa.Tier1Strength)
		sight *= float32(oa.Tier1Sight)
	}

	blob.Speed = speed
	blob.Strength = strength
	blob.Sight = sight
}

// decision is the pure output of the decide phase for one blob.
type decision struct {
	keep     bool // leave the blob's current state and target untouched
	state    components.BlobState
	target   components.TargetKind
	targetX  int32
	targetY  int32
	targetID uint32
}

// decideOne picks the next state and target for one blob. Pure with
// respect to mutable state: it reads the snapshot and the world but
// writes nothing, so it is safe to run from worker goroutines.
func (g *Game) decideOne(snap *blobSnapshot, scratch *workerScratch) decision {
	blob := &snap.Blob
	bc := g.cfg.Blobs

	// A committed interaction runs to completion unless interruption is
	// enabled and thirst has gone critical.
	if blob.State == components.StateDrinking || blob.State == components.StateHarvesting {
		if blob.InteractionTimer > 0 {
			if !bc.InterruptInteractions {
				return decision{keep: true}
			}
			if blob.State == components.StateHarvesting && float64(blob.Thirst) >= bc.ThirstCritical {
				if d, ok := g.decideWater(snap); ok {
					return d
				}
			}
			return decision{keep: true}
		}
	}

	// Priority: critical water, then food, mate, water. A search that
	// sees no target yields to the next priority rather than locking the
	// blob into a targetless seek.
	if float64(blob.Thirst) >= bc.ThirstCritical {
		if d, ok := g.decideWater(snap); ok {
			return d
		}
	}
	if float64(blob.Hunger) > bc.HungerSeekThreshold {
		if d, ok := g.decideFood(snap); ok {
			return d
		}
	}
	if g.mateSeekEligible(blob) {
		if d, ok := g.decideMate(snap, scratch); ok {
			return d
		}
	}
	if float64(blob.Thirst) > bc.ThirstSeekThreshold {
		if d, ok := g.decideWater(snap); ok {
			return d
		}
	}
	return decision{state: components.StateWandering, target: components.TargetNone}
}

// decideFood targets the nearest ripe berry bush within sight. Reports
// false when no bush is visible.
func (g *Game) decideFood(snap *blobSnapshot) (decision, bool) {
	radius := int(math.Ceil(float64(snap.Blob.Sight)))
	bestDistSq := float32(math.MaxFloat32)
	found := false
	var bx, by int

	for _, obj := range g.terrain.Occupancy.Neighbors(snap.Pos.TileX(), snap.Pos.TileY(), radius) {
		if obj.Kind != systems.ObjectBerryBush || obj.Stage != systems.StageRipe {
			continue
		}
		distSq := tileDistSq(snap.Pos, obj.X, obj.Y)
		if distSq < bestDistSq {
			bestDistSq = distSq
			bx, by = obj.X, obj.Y
			found = true
		}
	}
	if !found {
		return decision{}, false
	}

	return decision{
		state:   components.StateSeekingFood,
		target:  components.TargetFood,
		targetX: int32(bx),
		targetY: int32(by),
	}, true
}

// decideWater targets the walkable tile nearest the blob that borders
// the nearest visible shallow water. Reports false when no reachable
// water is visible.
func (g *Game) decideWater(snap *blobSnapshot) (decision, bool) {
	radius := int(math.Ceil(float64(snap.Blob.Sight)))
	cx, cy := snap.Pos.TileX(), snap.Pos.TileY()

	bestDistSq := float32(math.MaxFloat32)
	found := false
	var wx, wy int
	for ty := cy - radius; ty <= cy+radius; ty++ {
		for tx := cx - radius; tx <= cx+radius; tx++ {
			if g.terrain.Tiles.At(tx, ty) != systems.TileShallowWater {
				continue
			}
			distSq := tileDistSq(snap.Pos, tx, ty)
			if distSq < bestDistSq {
				bestDistSq = distSq
				wx, wy = tx, ty
				found = true
			}
		}
	}
	if !found {
		return decision{}, false
	}

	// Approach from the nearest walkable shore tile.
	bestDistSq = float32(math.MaxFloat32)
	found = false
	var ax, ay int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := wx+dx, wy+dy
			if !g.terrain.WalkableAt(nx, ny) {
				continue
			}
			distSq := tileDistSq(snap.Pos, nx, ny)
			if distSq < bestDistSq {
				bestDistSq = distSq
				ax, ay = nx, ny
				found = true
			}
		}
	}
	if !found {
		return decision{}, false
	}

	return decision{
		state:   components.StateSeekingWater,
		target:  components.TargetWater,
		targetX: int32(ax),
		targetY: int32(ay),
	}, true
}

// decideMate targets the nearest eligible mate within sight, lowest id
// on distance ties. Reports false when no mate is visible.
func (g *Game) decideMate(snap *blobSnapshot, scratch *workerScratch) (decision, bool) {
	scratch.Neighbors = g.spatialGrid.QueryRadiusInto(
		scratch.Neighbors[:0],
		snap.Pos.X, snap.Pos.Y, snap.Blob.Sight,
		snap.Entity, g.posMap,
	)

	bestDistSq := float32(math.MaxFloat32)
	var bestID uint32
	found := false
	for _, n := range scratch.Neighbors {
		other := g.blobMap.Get(n.E)
		if other == nil || other.ID == snap.Blob.ID || !g.mateSeekEligible(other) {
			continue
		}
		if n.DistSq < bestDistSq || (n.DistSq == bestDistSq && other.ID < bestID) {
			bestDistSq = n.DistSq
			bestID = other.ID
			found = true
		}
	}
	if !found {
		return decision{}, false
	}

	return decision{
		state:    components.StateSeekingMate,
		target:   components.TargetMate,
		targetID: bestID,
	}, true
}

// mateCondition reports whether a blob is in shape to mate: alive,
// healthy, needs under control, and off cooldown. Age is checked by the
// callers; courtship starts earlier than breeding.
func (g *Game) mateCondition(blob *components.Blob) bool {
	rc := g.cfg.Reproduction
	if !blob.Alive {
		return false
	}
	if float64(blob.HP) <= rc.MinHPFraction*g.cfg.Blobs.MaxHP {
		return false
	}
	if float64(blob.Hunger) >= rc.MaxNeed || float64(blob.Thirst) >= rc.MaxNeed {
		return false
	}
	return blob.ReproCooldown <= 0
}

// mateSeekEligible gates entering the SeekingMate state.
func (g *Game) mateSeekEligible(blob *components.Blob) bool {
	return float64(blob.Age) >= g.cfg.Reproduction.MateSeekAge && g.mateCondition(blob)
}

// mateEligible gates actual pairing; only adults breed.
func (g *Game) mateEligible(blob *components.Blob) bool {
	return float64(blob.Age) >= g.cfg.Reproduction.AdultAge && g.mateCondition(blob)
}

// actAll applies decisions: movement toward targets, arrival
// transitions, interaction timers, and wandering. Serial, in entity
// order, so random draws replay identically for a given seed.
func (g *Game) actAll(dt float32) {
	bc := g.cfg.Blobs

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, blob, _ := query.Get()

		if !blob.Alive {
			continue
		}

		if blob.ReproCooldown > 0 {
			blob.ReproCooldown -= dt
			if blob.ReproCooldown < 0 {
				blob.ReproCooldown = 0
			}
		}

		// In-progress interactions hold the blob in place.
		if blob.State == components.StateDrinking || blob.State == components.StateHarvesting {
			blob.InteractionTimer -= dt
			if blob.InteractionTimer <= 0 {
				g.completeInteraction(blob)
			}
			continue
		}

		switch blob.Target {
		case components.TargetFood, components.TargetWater:
			tx := float32(blob.TargetX) + 0.5
			ty := float32(blob.TargetY) + 0.5
			dx, dy := tx-pos.X, ty-pos.Y
			if dx*dx+dy*dy <= float32(bc.InteractionRadius*bc.InteractionRadius) {
				g.startInteraction(blob)
				continue
			}
			steer(vel, dx, dy)
		case components.TargetMate:
			matePos, ok := g.prevPos[blob.TargetID]
			if !ok {
				blob.ClearTarget()
				blob.State = components.StateWandering
				g.wander(vel, blob, dt)
				break
			}
			steer(vel, matePos.X-pos.X, matePos.Y-pos.Y)
		default:
			g.wander(vel, blob, dt)
		}

		g.move(pos, vel, blob, dt)
	}
}

// startInteraction begins drinking or harvesting at the current target.
// A bush that was harvested away while approaching drops the target.
func (g *Game) startInteraction(blob *components.Blob) {
	switch blob.Target {
	case components.TargetFood:
		if !g.berries.Ripe(int(blob.TargetX), int(blob.TargetY)) {
			blob.ClearTarget()
			blob.State = components.StateWandering
			return
		}
		blob.State = components.StateHarvesting
	case components.TargetWater:
		blob.State = components.StateDrinking
	default:
		return
	}
	blob.InteractionTimer = float32(g.cfg.Blobs.InteractionDuration)
}

// completeInteraction applies the payoff of a finished drink or harvest.
// Of two blobs finishing a harvest on the same bush in one tick, the
// atomic harvest lets exactly one collect.
func (g *Game) completeInteraction(blob *components.Blob) {
	bc := g.cfg.Blobs

	switch blob.State {
	case components.StateHarvesting:
		if g.berries.Harvest(int(blob.TargetX), int(blob.TargetY)) {
			blob.Hunger = clampNeed(blob.Hunger - float32(bc.HarvestHungerRestore))
			blob.HP += float32(bc.HarvestHPRestore)
			if blob.HP > float32(bc.MaxHP) {
				blob.HP = float32(bc.MaxHP)
			}
			if g.collector != nil {
				g.collector.RecordHarvest()
			}
		}
	case components.StateDrinking:
		blob.Thirst = clampNeed(blob.Thirst - float32(bc.DrinkThirstRestore))
		blob.HP += float32(bc.DrinkHPRestore)
		if blob.HP > float32(bc.MaxHP) {
			blob.HP = float32(bc.MaxHP)
		}
		if g.collector != nil {
			g.collector.RecordDrink()
		}
	}

	blob.InteractionTimer = 0
	blob.ClearTarget()
	blob.State = components.StateWandering
}

// wander ticks down the turn timer and picks a fresh random heading
// when it expires.
func (g *Game) wander(vel *components.Velocity, blob *components.Blob, dt float32) {
	blob.DirCooldown -= dt
	if blob.DirCooldown > 0 && (vel.DirX != 0 || vel.DirY != 0) {
		return
	}
	g.newWanderDir(vel, blob)
}

func (g *Game) newWanderDir(vel *components.Velocity, blob *components.Blob) {
	angle := g.rng.Float64() * 2 * math.Pi
	vel.DirX = float32(math.Cos(angle))
	vel.DirY = float32(math.Sin(angle))
	blob.DirCooldown = float32(wanderTurnMin + g.rng.Float64()*(wanderTurnMax-wanderTurnMin))
}

// move advances the blob along its heading, respecting walkability.
// Blocked moves slide along one axis when possible; a fully blocked
// wanderer turns instead.
func (g *Game) move(pos *components.Position, vel *components.Velocity, blob *components.Blob, dt float32) {
	step := blob.Speed * dt
	nx := clampCoord(pos.X+vel.DirX*step, g.cfg.Derived.MapW32)
	ny := clampCoord(pos.Y+vel.DirY*step, g.cfg.Derived.MapH32)

	if g.terrain.WalkableAt(int(nx), int(ny)) {
		pos.X, pos.Y = nx, ny
		return
	}
	if g.terrain.WalkableAt(int(nx), pos.TileY()) {
		pos.X = nx
		return
	}
	if g.terrain.WalkableAt(pos.TileX(), int(ny)) {
		pos.Y = ny
		return
	}
	if blob.Target == components.TargetNone {
		g.newWanderDir(vel, blob)
	}
}

// steer points the heading at (dx, dy).
func steer(vel *components.Velocity, dx, dy float32) {
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if dist == 0 {
		return
	}
	vel.DirX = dx / dist
	vel.DirY = dy / dist
}

// tileDistSq returns the squared distance from a position to the center
// of tile (tx, ty).
func tileDistSq(pos components.Position, tx, ty int) float32 {
	dx := float32(tx) + 0.5 - pos.X
	dy := float32(ty) + 0.5 - pos.Y
	return dx*dx + dy*dy
}

func clampNeed(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampCoord(v, limit float32) float32 {
	if v < 0 {
		return 0
	}
	if v >= limit {
		return limit - 0.001
	}
	return v
}
