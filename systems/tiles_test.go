package systems

import "testing"

func TestClassifyTileThresholds(t *testing.T) {
	cases := []struct {
		noise float64
		want  TileType
	}{
		{-1.0, TileDeepWater},
		{-0.81, TileDeepWater},
		{-0.80, TileWater},
		{-0.50, TileWater},
		{-0.44, TileShallowWater},
		{-0.31, TileShallowWater},
		{-0.30, TileSand},
		{-0.17, TileSand},
		{-0.16, TileGrass},
		{0.0, TileGrass},
		{0.59, TileGrass},
		{0.60, TileForest},
		{1.0, TileForest},
	}
	for _, c := range cases {
		if got := ClassifyTile(c.noise); got != c.want {
			t.Errorf("ClassifyTile(%g) = %v, want %v", c.noise, got, c.want)
		}
	}
}

func TestWalkable(t *testing.T) {
	walkable := map[TileType]bool{
		TileDeepWater:    false,
		TileWater:        false,
		TileShallowWater: false,
		TileSand:         true,
		TileGrass:        true,
		TileForest:       true,
	}
	for tile, want := range walkable {
		if got := tile.Walkable(); got != want {
			t.Errorf("%v.Walkable() = %v, want %v", tile, got, want)
		}
	}
}

func TestTileMapOutOfBounds(t *testing.T) {
	m := NewTileMap(4, 4)
	m.set(0, 0, TileGrass)

	if m.At(-1, 0) != TileDeepWater {
		t.Error("out-of-bounds read should be deep water")
	}
	if m.At(0, 4) != TileDeepWater {
		t.Error("out-of-bounds read should be deep water")
	}
	if m.At(0, 0) != TileGrass {
		t.Error("in-bounds read lost its value")
	}
}

func TestHasAdjacentExcludesCenter(t *testing.T) {
	m := NewTileMap(5, 5)
	m.set(2, 2, TileShallowWater)

	if m.HasAdjacent(2, 2, 1, TileShallowWater) {
		t.Error("HasAdjacent should not count the center tile")
	}

	m.set(3, 2, TileShallowWater)
	if !m.HasAdjacent(2, 2, 1, TileShallowWater) {
		t.Error("HasAdjacent should find the neighboring tile")
	}
}
