package game

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/systems"
)

const testDT = 1.0 / 60.0

// emptyGame builds a simulation with no initial blobs so tests control
// the population directly.
func emptyGame(t *testing.T, seed int64) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Spawning.BlobProb = 0
	cfg.Spawning.MinBlobs = 0

	g := New(seed, cfg)
	t.Cleanup(g.Shutdown)
	return g
}

// walkableTile finds some walkable, unoccupied tile.
func walkableTile(t *testing.T, g *Game) (float32, float32) {
	t.Helper()
	for y := 0; y < g.terrain.Tiles.Height(); y++ {
		for x := 0; x < g.terrain.Tiles.Width(); x++ {
			if g.terrain.WalkableAt(x, y) && !g.terrain.Occupancy.IsOccupied(x, y) {
				return float32(x) + 0.5, float32(y) + 0.5
			}
		}
	}
	t.Fatal("no walkable tile in generated world")
	return 0, 0
}

// landlockedTile finds a walkable tile with no shallow water within
// the given radius, so a thirsty blob cannot reach a drink mid-test.
func landlockedTile(t *testing.T, g *Game, radius int) (float32, float32) {
	t.Helper()
	for y := 0; y < g.terrain.Tiles.Height(); y++ {
		for x := 0; x < g.terrain.Tiles.Width(); x++ {
			if !g.terrain.WalkableAt(x, y) || g.terrain.Occupancy.IsOccupied(x, y) {
				continue
			}
			if !g.terrain.Tiles.HasAdjacent(x, y, radius, systems.TileShallowWater) {
				return float32(x) + 0.5, float32(y) + 0.5
			}
		}
	}
	t.Skip("no landlocked tile in generated world")
	return 0, 0
}

func defaultGenetics() components.Genetics {
	return components.Genetics{
		Intelligence: 50,
		Strength:     50,
		Speed:        1.5,
		Sight:        6,
		Lifespan:     220,
	}
}

func TestNeedsAccumulate(t *testing.T) {
	g := emptyGame(t, 1)
	x, y := walkableTile(t, g)
	e := g.spawnBlob(x, y, defaultGenetics())
	blob := g.blobMap.Get(e)

	for i := 0; i < 60; i++ {
		g.Step(testDT)
	}

	// One second at default rates.
	if blob.Hunger < 1.9 || blob.Hunger > 2.1 {
		t.Errorf("hunger after 1s = %g, want about 2", blob.Hunger)
	}
	if blob.Thirst < 3.9 || blob.Thirst > 4.1 {
		t.Errorf("thirst after 1s = %g, want about 4", blob.Thirst)
	}
	if blob.Age < 0.99 || blob.Age > 1.01 {
		t.Errorf("age after 1s = %g, want about 1", blob.Age)
	}
}

func TestStarvationDrainsHP(t *testing.T) {
	g := emptyGame(t, 2)
	// Away from water so the blob cannot relieve its thirst mid-test.
	x, y := landlockedTile(t, g, 8)
	e := g.spawnBlob(x, y, defaultGenetics())
	blob := g.blobMap.Get(e)
	blob.Hunger = 90
	blob.Thirst = 90

	hp0 := blob.HP
	for i := 0; i < 60; i++ {
		g.Step(testDT)
	}

	// Both needs past starvation: two drains of 2 HP/s.
	lost := hp0 - blob.HP
	if lost < 3.8 || lost > 4.3 {
		t.Errorf("hp lost in 1s of double starvation = %g, want about 4", lost)
	}
}

func TestWellFedRegenCapsAtMax(t *testing.T) {
	g := emptyGame(t, 3)
	x, y := walkableTile(t, g)
	e := g.spawnBlob(x, y, defaultGenetics())
	blob := g.blobMap.Get(e)
	blob.HP = float32(g.cfg.Blobs.MaxHP) - 0.1

	for i := 0; i < 60; i++ {
		g.Step(testDT)
	}

	if blob.HP > float32(g.cfg.Blobs.MaxHP) {
		t.Errorf("hp %g exceeds max %g", blob.HP, g.cfg.Blobs.MaxHP)
	}
	if blob.HP < float32(g.cfg.Blobs.MaxHP)-0.01 {
		t.Errorf("hp %g should have regenerated to max", blob.HP)
	}
}

func TestDeathRemovesEntity(t *testing.T) {
	g := emptyGame(t, 4)
	x, y := walkableTile(t, g)
	e := g.spawnBlob(x, y, defaultGenetics())
	blob := g.blobMap.Get(e)
	id := blob.ID
	blob.HP = 0.001
	blob.Hunger = 100
	blob.Thirst = 100

	g.Step(testDT)

	if g.AliveCount() != 0 {
		t.Errorf("alive count = %d after lethal step, want 0", g.AliveCount())
	}
	if g.DeathCount() != 1 {
		t.Errorf("death count = %d, want 1", g.DeathCount())
	}
	if b, _ := g.BlobByID(id); b != nil {
		t.Error("dead blob still resolvable by id")
	}
}

func TestLifespanDeathIsImmediate(t *testing.T) {
	g := emptyGame(t, 5)
	x, y := walkableTile(t, g)
	e := g.spawnBlob(x, y, defaultGenetics())
	blob := g.blobMap.Get(e)
	gen := g.genMap.Get(e)
	blob.Age = gen.Lifespan - 0.001

	g.Step(testDT)

	if g.AliveCount() != 0 {
		t.Error("blob at its lifespan should die on the next step")
	}
}

func TestOldAgeSlowsBlob(t *testing.T) {
	g := emptyGame(t, 6)
	x, y := walkableTile(t, g)
	e := g.spawnBlob(x, y, defaultGenetics())
	blob := g.blobMap.Get(e)
	gen := g.genMap.Get(e)

	// Needs in the neutral band so no condition factor applies.
	blob.Hunger = 50
	blob.Thirst = 50

	blob.Age = 150 // tier 1
	g.Step(testDT)
	want := gen.Speed * float32(g.cfg.Blobs.OldAge.Tier1Speed)
	if diff := blob.Speed - want; diff < -0.01 || diff > 0.01 {
		t.Errorf("tier 1 effective speed = %g, want %g", blob.Speed, want)
	}

	blob.Age = 210 // tier 2
	g.Step(testDT)
	want = gen.Speed * float32(g.cfg.Blobs.OldAge.Tier2Speed)
	if diff := blob.Speed - want; diff < -0.01 || diff > 0.01 {
		t.Errorf("tier 2 effective speed = %g, want %g", blob.Speed, want)
	}
}

func TestConditionFactorsStackPerNeed(t *testing.T) {
	g := emptyGame(t, 15)
	x, y := walkableTile(t, g)
	e := g.spawnBlob(x, y, defaultGenetics())
	blob := g.blobMap.Get(e)
	gen := g.genMap.Get(e)

	// Both needs past their penalty thresholds: two slowdowns.
	blob.Hunger = 90
	blob.Thirst = 90
	g.Step(testDT)
	want := gen.Speed / (1.5 * 1.5)
	if diff := blob.Speed - want; diff < -0.01 || diff > 0.01 {
		t.Errorf("doubly starved speed = %g, want %g", blob.Speed, want)
	}

	// Both needs satisfied: two buffs.
	blob.Hunger = 0
	blob.Thirst = 0
	g.Step(testDT)
	want = gen.Speed * 1.1 * 1.1
	if diff := blob.Speed - want; diff < -0.01 || diff > 0.01 {
		t.Errorf("doubly buffed speed = %g, want %g", blob.Speed, want)
	}
	wantStr := gen.Strength * 2 * 2
	if diff := blob.Strength - wantStr; diff < -0.1 || diff > 0.1 {
		t.Errorf("doubly buffed strength = %g, want %g", blob.Strength, wantStr)
	}
}

func TestRegenPerSatisfiedNeed(t *testing.T) {
	g := emptyGame(t, 16)
	x, y := landlockedTile(t, g, 8)
	e := g.spawnBlob(x, y, defaultGenetics())
	blob := g.blobMap.Get(e)

	// Both needs below the well-fed threshold: double regen.
	blob.HP = 50
	blob.Hunger = 10
	blob.Thirst = 10
	for i := 0; i < 60; i++ {
		g.Step(testDT)
	}
	gained := blob.HP - 50
	if gained < 1.9 || gained > 2.1 {
		t.Errorf("hp gained with both needs satisfied = %g, want about 2", gained)
	}

	// Only hunger satisfied: single regen.
	blob.HP = 50
	blob.Hunger = 10
	blob.Thirst = 50
	for i := 0; i < 60; i++ {
		g.Step(testDT)
	}
	gained = blob.HP - 50
	if gained < 0.9 || gained > 1.1 {
		t.Errorf("hp gained with one need satisfied = %g, want about 1", gained)
	}
}

func TestMatePreemptsMildThirst(t *testing.T) {
	g := emptyGame(t, 17)

	// Two walkable tiles three apart: within sight, outside mating range.
	ax, ay := -1, -1
	for y := 0; y < g.terrain.Tiles.Height() && ax < 0; y++ {
		for x := 0; x+3 < g.terrain.Tiles.Width(); x++ {
			if g.terrain.WalkableAt(x, y) && !g.terrain.Occupancy.IsOccupied(x, y) &&
				g.terrain.WalkableAt(x+3, y) && !g.terrain.Occupancy.IsOccupied(x+3, y) {
				ax, ay = x, y
				break
			}
		}
	}
	if ax < 0 {
		t.Skip("no walkable tile pair in generated world")
	}

	var first ecs.Entity
	for i, px := range []int{ax, ax + 3} {
		e := g.spawnBlob(float32(px)+0.5, float32(ay)+0.5, defaultGenetics())
		if i == 0 {
			first = e
		}
		blob := g.blobMap.Get(e)
		blob.Age = float32(g.cfg.Reproduction.AdultAge) + 1
		blob.Thirst = 45 // past the seek threshold, below critical
	}

	g.Step(testDT)

	// A visible mate outranks a mild thirst.
	if blob := g.blobMap.Get(first); blob.State != components.StateSeekingMate {
		t.Errorf("state = %s with a visible mate and mild thirst, want %s",
			blob.State, components.StateSeekingMate)
	}
	if g.BirthCount() != 0 {
		t.Errorf("births = %d at distance 3, want 0", g.BirthCount())
	}
}

func TestFoodSearchFallsThroughToWater(t *testing.T) {
	g := emptyGame(t, 18)

	// A walkable shore tile. No bush is ripe this early, so a hungry and
	// thirsty blob should end up seeking water, not stuck seeking food.
	sx, sy := -1, -1
	for y := 0; y < g.terrain.Tiles.Height() && sx < 0; y++ {
		for x := 0; x < g.terrain.Tiles.Width(); x++ {
			if g.terrain.WalkableAt(x, y) && !g.terrain.Occupancy.IsOccupied(x, y) &&
				g.terrain.Tiles.HasAdjacent(x, y, 1, systems.TileShallowWater) {
				sx, sy = x, y
				break
			}
		}
	}
	if sx < 0 {
		t.Skip("no walkable shore tile in generated world")
	}

	e := g.spawnBlob(float32(sx)+0.5, float32(sy)+0.5, defaultGenetics())
	blob := g.blobMap.Get(e)
	blob.Hunger = 50
	blob.Thirst = 50

	g.Step(testDT)

	if blob.State != components.StateSeekingWater && blob.State != components.StateDrinking {
		t.Errorf("state = %s with no ripe bush and water in sight, want %s",
			blob.State, components.StateSeekingWater)
	}
	if blob.State == components.StateSeekingWater && blob.Target != components.TargetWater {
		t.Error("seeking water without a water target")
	}
}

func TestAdolescentSeeksMateButDoesNotPair(t *testing.T) {
	g := emptyGame(t, 19)
	x, y := walkableTile(t, g)

	var first ecs.Entity
	for i := 0; i < 2; i++ {
		e := g.spawnBlob(x, y, defaultGenetics())
		if i == 0 {
			first = e
		}
		g.blobMap.Get(e).Age = 15 // courting age, below breeding age
	}

	g.Step(testDT)

	if blob := g.blobMap.Get(first); blob.State != components.StateSeekingMate {
		t.Errorf("adolescent state = %s, want %s", blob.State, components.StateSeekingMate)
	}
	if g.BirthCount() != 0 {
		t.Errorf("births = %d from adolescent pair, want 0", g.BirthCount())
	}
}

func TestReproductionPairsOncePerTick(t *testing.T) {
	g := emptyGame(t, 7)
	x, y := walkableTile(t, g)

	// Three adjacent eligible adults: one pair forms, the odd blob out
	// waits.
	for i := 0; i < 3; i++ {
		e := g.spawnBlob(x, y, defaultGenetics())
		blob := g.blobMap.Get(e)
		blob.Age = float32(g.cfg.Reproduction.AdultAge) + 1
	}

	g.Step(testDT)

	if g.BirthCount() != 1 {
		t.Fatalf("births = %d after one tick with three eligible blobs, want 1", g.BirthCount())
	}
	if g.AliveCount() != 4 {
		t.Errorf("alive = %d, want 4", g.AliveCount())
	}

	// Parents are on cooldown; no further births next tick.
	g.Step(testDT)
	if g.BirthCount() != 1 {
		t.Errorf("births = %d on the following tick, want still 1", g.BirthCount())
	}
}

func TestChildTraitsWithinBounds(t *testing.T) {
	g := emptyGame(t, 8)
	x, y := walkableTile(t, g)

	a := components.Genetics{Intelligence: 100, Strength: 100, Speed: 3, Sight: 10, Lifespan: 260}
	b := components.Genetics{Intelligence: 1, Strength: 1, Speed: 0.5, Sight: 4, Lifespan: 180}
	for _, gen := range []components.Genetics{a, b} {
		e := g.spawnBlob(x, y, gen)
		blob := g.blobMap.Get(e)
		blob.Age = float32(g.cfg.Reproduction.AdultAge) + 1
	}

	g.Step(testDT)
	if g.BirthCount() != 1 {
		t.Fatalf("births = %d, want 1", g.BirthCount())
	}

	gc := g.cfg.Genetics
	g.ForEachBlob(func(_ *components.Position, blob *components.Blob, gen *components.Genetics) {
		if blob.Age > 1 {
			return // parent
		}
		if float64(gen.Speed) < gc.SpeedMin || float64(gen.Speed) > gc.SpeedMax {
			t.Errorf("child speed %g outside [%g, %g]", gen.Speed, gc.SpeedMin, gc.SpeedMax)
		}
		if float64(gen.Sight) < gc.SightMin || float64(gen.Sight) > gc.SightMax {
			t.Errorf("child sight %g outside [%g, %g]", gen.Sight, gc.SightMin, gc.SightMax)
		}
		if float64(gen.Lifespan) < gc.LifespanMin || float64(gen.Lifespan) > gc.LifespanMax {
			t.Errorf("child lifespan %g outside [%g, %g]", gen.Lifespan, gc.LifespanMin, gc.LifespanMax)
		}
		if blob.ReproCooldown < float32(g.cfg.Reproduction.NewbornCooldown)-1 {
			t.Errorf("newborn cooldown = %g, want about %g",
				blob.ReproCooldown, g.cfg.Reproduction.NewbornCooldown)
		}
	})
}

func TestHungryBlobHarvestsRipeBush(t *testing.T) {
	g := emptyGame(t, 42)

	// Two adjacent walkable tiles: one for a ripe bush, one for the blob.
	bushX, bushY := -1, -1
	var blobX, blobY int
	for y := 0; y < g.terrain.Tiles.Height() && bushX < 0; y++ {
		for x := 0; x+1 < g.terrain.Tiles.Width(); x++ {
			if g.terrain.WalkableAt(x, y) && !g.terrain.Occupancy.IsOccupied(x, y) &&
				g.terrain.WalkableAt(x+1, y) && !g.terrain.Occupancy.IsOccupied(x+1, y) {
				bushX, bushY = x, y
				blobX, blobY = x+1, y
				break
			}
		}
	}
	if bushX < 0 {
		t.Skip("no adjacent walkable tile pair in generated world")
	}
	if err := g.terrain.Occupancy.Place(&systems.WorldObject{
		Kind:  systems.ObjectBerryBush,
		X:     bushX,
		Y:     bushY,
		Stage: systems.StageRipe,
	}); err != nil {
		t.Fatalf("placing bush: %v", err)
	}

	e := g.spawnBlob(float32(blobX)+0.5, float32(blobY)+0.5, defaultGenetics())
	blob := g.blobMap.Get(e)
	blob.Hunger = 70

	sawHarvesting := false
	harvested := false
	for i := 0; i < 600; i++ {
		g.Step(testDT)
		if blob.State == components.StateHarvesting {
			sawHarvesting = true
		}
		if blob.Hunger < 30 {
			harvested = true
			break
		}
	}

	if !sawHarvesting {
		t.Error("blob never entered the harvesting state")
	}
	if !harvested {
		t.Fatalf("hunger = %g after 10s next to a ripe bush, expected a harvest", blob.Hunger)
	}
	obj := g.terrain.Occupancy.At(bushX, bushY)
	if obj == nil || obj.Stage != systems.StageSprout {
		t.Error("harvested bush should reset to the sprout stage")
	}
}

func TestDeterministicRuns(t *testing.T) {
	cfg1, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg2, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	a := New(42, cfg1)
	defer a.Shutdown()
	b := New(42, cfg2)
	defer b.Shutdown()

	for i := 0; i < 300; i++ {
		a.Step(testDT)
		b.Step(testDT)
	}

	sa, sb := a.BuildSnapshot(), b.BuildSnapshot()
	if len(sa.Blobs) != len(sb.Blobs) {
		t.Fatalf("populations diverged: %d vs %d", len(sa.Blobs), len(sb.Blobs))
	}
	for i := range sa.Blobs {
		if sa.Blobs[i] != sb.Blobs[i] {
			t.Fatalf("blob %d diverged:\n%+v\n%+v", i, sa.Blobs[i], sb.Blobs[i])
		}
	}
}

func TestLongRunInvariants(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	g := New(99, cfg)
	defer g.Shutdown()

	for i := 0; i < 1200; i++ {
		g.Step(testDT)
	}

	g.ForEachBlob(func(pos *components.Position, blob *components.Blob, _ *components.Genetics) {
		if blob.Hunger < 0 || blob.Hunger > 100 || blob.Thirst < 0 || blob.Thirst > 100 {
			t.Errorf("blob %d needs out of range: hunger=%g thirst=%g",
				blob.ID, blob.Hunger, blob.Thirst)
		}
		if blob.HP > float32(cfg.Blobs.MaxHP) {
			t.Errorf("blob %d hp %g above max", blob.ID, blob.HP)
		}
		if pos.X < 0 || pos.X >= cfg.Derived.MapW32 || pos.Y < 0 || pos.Y >= cfg.Derived.MapH32 {
			t.Errorf("blob %d out of bounds at (%g, %g)", blob.ID, pos.X, pos.Y)
		}
		if !g.terrain.Tiles.At(pos.TileX(), pos.TileY()).Walkable() {
			t.Errorf("blob %d standing on unwalkable tile (%d, %d)",
				blob.ID, pos.TileX(), pos.TileY())
		}
	})
}
