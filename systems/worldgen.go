package systems

import (
	"math/rand"

	"github.com/pthm-cable/blobs/config"
)

// flowerVariants is the number of visual flower variants.
const flowerVariants = 4

// World is the generated static world: the terrain, the object layer,
// and the initial blob placement. Generation is a pure function of
// (seed, config); the same inputs always produce an identical world.
type World struct {
	Seed       int64
	Tiles      *TileMap
	Occupancy  *OccupancyGrid
	BlobSpawns []Coord
}

// Generate builds a world from the given seed. Terrain comes first,
// then objects tile by tile in row-major order, then initial blob
// placement. All randomness is drawn from a single seeded stream in a
// fixed order, so the result is reproducible.
func Generate(seed int64, cfg *config.Config) *World {
	w := &World{
		Seed:      seed,
		Tiles:     NewTileMap(cfg.World.MapWidth, cfg.World.MapHeight),
		Occupancy: NewOccupancyGrid(cfg.World.MapWidth, cfg.World.MapHeight),
	}

	noise := NewNoiseField(seed, cfg.Noise)
	for y := 0; y < cfg.World.MapHeight; y++ {
		for x := 0; x < cfg.World.MapWidth; x++ {
			w.Tiles.set(x, y, ClassifyTile(noise.Sample(float64(x), float64(y))))
		}
	}

	rng := rand.New(rand.NewSource(seed))
	spawnObjects(w, rng, cfg)
	spawnBlobs(w, rng, cfg)

	return w
}

// spawnObjects runs the per-tile spawn rolls in row-major order. Checks
// within a tile run in fixed priority (trees, rocks, bushes, mushrooms,
// sugar cane, flowers); the first success claims the tile and skips the
// rest.
func spawnObjects(w *World, rng *rand.Rand, cfg *config.Config) {
	sp := cfg.Spawning
	for y := 0; y < w.Tiles.Height(); y++ {
		for x := 0; x < w.Tiles.Width(); x++ {
			tile := w.Tiles.At(x, y)

			var obj *WorldObject
			switch tile {
			case TileForest:
				switch {
				case rng.Float64() < sp.TreeForestProb:
					obj = &WorldObject{Kind: ObjectTree, X: x, Y: y}
				case rng.Float64() < sp.RockForestProb:
					obj = &WorldObject{Kind: ObjectRock, X: x, Y: y}
				case rng.Float64() < sp.BushForestProb:
					obj = &WorldObject{Kind: ObjectBerryBush, X: x, Y: y}
				case rng.Float64() < sp.MushroomForestProb:
					obj = &WorldObject{Kind: ObjectMushroom, X: x, Y: y}
				}
			case TileGrass:
				switch {
				case rng.Float64() < sp.RockGrassSandProb:
					obj = &WorldObject{Kind: ObjectRock, X: x, Y: y}
				case rng.Float64() < sp.BushGrassProb:
					obj = &WorldObject{Kind: ObjectBerryBush, X: x, Y: y}
				case nearShallowWater(w.Tiles, x, y, sp.SugarCaneWaterRadius) &&
					rng.Float64() < sp.SugarCaneProb:
					obj = &WorldObject{Kind: ObjectSugarCane, X: x, Y: y}
				case rng.Float64() < sp.FlowerGrassProb:
					obj = &WorldObject{
						Kind:       ObjectFlower,
						X:          x,
						Y:          y,
						FlowerType: uint8(rng.Intn(flowerVariants)),
					}
				}
			case TileSand:
				switch {
				case rng.Float64() < sp.RockGrassSandProb:
					obj = &WorldObject{Kind: ObjectRock, X: x, Y: y}
				case nearShallowWater(w.Tiles, x, y, sp.SugarCaneWaterRadius) &&
					rng.Float64() < sp.SugarCaneProb:
					obj = &WorldObject{Kind: ObjectSugarCane, X: x, Y: y}
				}
			}

			if obj != nil {
				// Cannot fail: the row-major scan visits each tile once.
				_ = w.Occupancy.Place(obj)
			}
		}
	}
}

// nearShallowWater reports whether (x, y) has shallow water within the
// given Chebyshev radius.
func nearShallowWater(tiles *TileMap, x, y, radius int) bool {
	return tiles.HasAdjacent(x, y, radius, TileShallowWater)
}

// spawnBlobs picks initial blob tiles. Each walkable unoccupied tile
// rolls once in row-major order; if fewer than MinBlobs succeed, the
// population is topped up from the first remaining eligible tiles so a
// sparse roll never produces an empty world.
func spawnBlobs(w *World, rng *rand.Rand, cfg *config.Config) {
	taken := make(map[Coord]bool)
	for y := 0; y < w.Tiles.Height(); y++ {
		for x := 0; x < w.Tiles.Width(); x++ {
			if !w.Tiles.At(x, y).Walkable() || w.Occupancy.IsOccupied(x, y) {
				continue
			}
			if rng.Float64() < cfg.Spawning.BlobProb {
				c := Coord{X: x, Y: y}
				w.BlobSpawns = append(w.BlobSpawns, c)
				taken[c] = true
			}
		}
	}

	if len(w.BlobSpawns) >= cfg.Spawning.MinBlobs {
		return
	}
	for y := 0; y < w.Tiles.Height() && len(w.BlobSpawns) < cfg.Spawning.MinBlobs; y++ {
		for x := 0; x < w.Tiles.Width() && len(w.BlobSpawns) < cfg.Spawning.MinBlobs; x++ {
			c := Coord{X: x, Y: y}
			if taken[c] || !w.Tiles.At(x, y).Walkable() || w.Occupancy.IsOccupied(x, y) {
				continue
			}
			w.BlobSpawns = append(w.BlobSpawns, c)
			taken[c] = true
		}
	}
}

// WalkableAt reports whether a blob may occupy the tile at (x, y):
// the terrain must be walkable and the tile must not hold a blocking
// object.
func (w *World) WalkableAt(x, y int) bool {
	if !w.Tiles.At(x, y).Walkable() {
		return false
	}
	if obj := w.Occupancy.At(x, y); obj != nil && obj.Kind.Blocking() {
		return false
	}
	return true
}
