package systems

// TileType classifies a terrain cell. Tiles never change type after
// generation.
type TileType uint8

const (
	TileDeepWater TileType = iota
	TileWater
	TileShallowWater
	TileSand
	TileGrass
	TileForest

	NumTileTypes = 6
)

// Classification thresholds over the noise range [-1, 1], ascending.
// A noise value below a threshold maps to the corresponding tile.
const (
	deepWaterMax    = -0.80
	waterMax        = -0.44
	shallowWaterMax = -0.30
	sandMax         = -0.16
	grassMax        = 0.60
)

// ClassifyTile maps a noise value in [-1, 1] to a tile type.
func ClassifyTile(n float64) TileType {
	switch {
	case n < deepWaterMax:
		return TileDeepWater
	case n < waterMax:
		return TileWater
	case n < shallowWaterMax:
		return TileShallowWater
	case n < sandMax:
		return TileSand
	case n < grassMax:
		return TileGrass
	default:
		return TileForest
	}
}

// String returns the display name of a tile type.
func (t TileType) String() string {
	switch t {
	case TileDeepWater:
		return "deep water"
	case TileWater:
		return "water"
	case TileShallowWater:
		return "shallow water"
	case TileSand:
		return "sand"
	case TileGrass:
		return "grass"
	case TileForest:
		return "forest"
	default:
		return "unknown"
	}
}

// Walkable reports whether blobs can stand on this tile type.
func (t TileType) Walkable() bool {
	return t == TileSand || t == TileGrass || t == TileForest
}

// TileMap is the immutable per-cell classification of the world.
type TileMap struct {
	width  int
	height int
	tiles  []TileType
}

// NewTileMap allocates a tile map of the given dimensions.
func NewTileMap(width, height int) *TileMap {
	return &TileMap{
		width:  width,
		height: height,
		tiles:  make([]TileType, width*height),
	}
}

// InBounds reports whether (x, y) is a valid coordinate.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the tile type at (x, y). Out-of-bounds coordinates read as
// deep water, which is never walkable and never spawns anything.
func (m *TileMap) At(x, y int) TileType {
	if !m.InBounds(x, y) {
		return TileDeepWater
	}
	return m.tiles[y*m.width+x]
}

func (m *TileMap) set(x, y int, t TileType) {
	m.tiles[y*m.width+x] = t
}

// Width returns the map width in tiles.
func (m *TileMap) Width() int { return m.width }

// Height returns the map height in tiles.
func (m *TileMap) Height() int { return m.height }

// Counts returns the number of tiles of each type.
func (m *TileMap) Counts() [NumTileTypes]int {
	var counts [NumTileTypes]int
	for _, t := range m.tiles {
		counts[t]++
	}
	return counts
}

// HasAdjacent reports whether any tile of the given type lies within
// Chebyshev distance radius of (x, y), excluding (x, y) itself.
func (m *TileMap) HasAdjacent(x, y, radius int, t TileType) bool {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if m.InBounds(nx, ny) && m.At(nx, ny) == t {
				return true
			}
		}
	}
	return false
}
