package systems

import (
	"testing"

	"github.com/pthm-cable/blobs/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := testConfig(t)

	a := Generate(42, cfg)
	b := Generate(42, cfg)

	if a.Tiles.Counts() != b.Tiles.Counts() {
		t.Error("same seed produced different tile counts")
	}
	for y := 0; y < cfg.World.MapHeight; y++ {
		for x := 0; x < cfg.World.MapWidth; x++ {
			if a.Tiles.At(x, y) != b.Tiles.At(x, y) {
				t.Fatalf("tile (%d,%d) differs between runs with the same seed", x, y)
			}
		}
	}

	objsA, objsB := a.Occupancy.Objects(), b.Occupancy.Objects()
	if len(objsA) != len(objsB) {
		t.Fatalf("object counts differ: %d vs %d", len(objsA), len(objsB))
	}
	for i := range objsA {
		if *objsA[i] != *objsB[i] {
			t.Fatalf("object %d differs: %+v vs %+v", i, *objsA[i], *objsB[i])
		}
	}

	if len(a.BlobSpawns) != len(b.BlobSpawns) {
		t.Fatalf("blob spawn counts differ: %d vs %d", len(a.BlobSpawns), len(b.BlobSpawns))
	}
	for i := range a.BlobSpawns {
		if a.BlobSpawns[i] != b.BlobSpawns[i] {
			t.Fatalf("blob spawn %d differs", i)
		}
	}
}

func TestGenerateSeedChangesWorld(t *testing.T) {
	cfg := testConfig(t)

	a := Generate(1, cfg)
	b := Generate(2, cfg)

	if a.Tiles.Counts() == b.Tiles.Counts() && a.Occupancy.Len() == b.Occupancy.Len() {
		t.Error("different seeds produced suspiciously identical worlds")
	}
}

func TestObjectsMatchTerrain(t *testing.T) {
	cfg := testConfig(t)
	w := Generate(99, cfg)

	for _, obj := range w.Occupancy.Objects() {
		tile := w.Tiles.At(obj.X, obj.Y)
		switch obj.Kind {
		case ObjectTree, ObjectMushroom:
			if tile != TileForest {
				t.Errorf("%v at (%d,%d) on %v, want forest", obj.Kind, obj.X, obj.Y, tile)
			}
		case ObjectFlower:
			if tile != TileGrass {
				t.Errorf("flower at (%d,%d) on %v, want grass", obj.X, obj.Y, tile)
			}
		case ObjectBerryBush:
			if tile != TileGrass && tile != TileForest {
				t.Errorf("bush at (%d,%d) on %v, want grass or forest", obj.X, obj.Y, tile)
			}
		case ObjectRock:
			if tile != TileGrass && tile != TileSand && tile != TileForest {
				t.Errorf("rock at (%d,%d) on %v", obj.X, obj.Y, tile)
			}
		case ObjectSugarCane:
			if tile != TileGrass && tile != TileSand {
				t.Errorf("sugar cane at (%d,%d) on %v, want grass or sand", obj.X, obj.Y, tile)
			}
			if !w.Tiles.HasAdjacent(obj.X, obj.Y, cfg.Spawning.SugarCaneWaterRadius, TileShallowWater) {
				t.Errorf("sugar cane at (%d,%d) has no shallow water within radius %d",
					obj.X, obj.Y, cfg.Spawning.SugarCaneWaterRadius)
			}
		}
	}
}

func TestBushesStartAsSprouts(t *testing.T) {
	cfg := testConfig(t)
	w := Generate(7, cfg)

	for _, obj := range w.Occupancy.Objects() {
		if obj.Kind == ObjectBerryBush && (obj.Stage != StageSprout || obj.StageTimer != 0) {
			t.Errorf("bush at (%d,%d) generated at stage %d", obj.X, obj.Y, obj.Stage)
		}
	}
}

func TestBlobSpawnsAreValid(t *testing.T) {
	cfg := testConfig(t)
	w := Generate(123, cfg)

	if len(w.BlobSpawns) < cfg.Spawning.MinBlobs {
		t.Fatalf("got %d blob spawns, want at least %d", len(w.BlobSpawns), cfg.Spawning.MinBlobs)
	}

	seen := make(map[Coord]bool)
	for _, c := range w.BlobSpawns {
		if !w.Tiles.At(c.X, c.Y).Walkable() {
			t.Errorf("blob spawn at unwalkable tile (%d,%d)", c.X, c.Y)
		}
		if w.Occupancy.IsOccupied(c.X, c.Y) {
			t.Errorf("blob spawn at occupied tile (%d,%d)", c.X, c.Y)
		}
		if seen[c] {
			t.Errorf("duplicate blob spawn at (%d,%d)", c.X, c.Y)
		}
		seen[c] = true
	}
}

func TestMinBlobsFloor(t *testing.T) {
	cfg := testConfig(t)
	cfg.Spawning.BlobProb = 0 // force the floor path

	w := Generate(5, cfg)
	if len(w.BlobSpawns) != cfg.Spawning.MinBlobs {
		t.Errorf("got %d blob spawns with zero probability, want the %d floor",
			len(w.BlobSpawns), cfg.Spawning.MinBlobs)
	}
}

func TestWalkableAtBlockingObjects(t *testing.T) {
	cfg := testConfig(t)
	w := Generate(11, cfg)

	blocked, open := 0, 0
	for _, obj := range w.Occupancy.Objects() {
		if obj.Kind.Blocking() {
			if w.WalkableAt(obj.X, obj.Y) {
				t.Errorf("%v at (%d,%d) should block movement", obj.Kind, obj.X, obj.Y)
			}
			blocked++
		} else if w.Tiles.At(obj.X, obj.Y).Walkable() {
			if !w.WalkableAt(obj.X, obj.Y) {
				t.Errorf("%v at (%d,%d) should not block movement", obj.Kind, obj.X, obj.Y)
			}
			open++
		}
	}
	if blocked == 0 || open == 0 {
		t.Skip("world too sparse to exercise both cases")
	}
}
