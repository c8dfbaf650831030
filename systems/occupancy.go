package systems

import (
	"errors"
	"sync"
)

// ObjectKind identifies a world object variant.
type ObjectKind uint8

const (
	ObjectBerryBush ObjectKind = iota
	ObjectFlower
	ObjectMushroom
	ObjectSugarCane
	ObjectRock
	ObjectTree

	NumObjectKinds = 6
)

// String returns the display name of an object kind.
func (k ObjectKind) String() string {
	switch k {
	case ObjectBerryBush:
		return "berry bush"
	case ObjectFlower:
		return "flower"
	case ObjectMushroom:
		return "mushroom"
	case ObjectSugarCane:
		return "sugar cane"
	case ObjectRock:
		return "rock"
	case ObjectTree:
		return "tree"
	default:
		return "unknown"
	}
}

// Blocking reports whether this object kind blocks blob movement.
// Only rocks and trees block; flora is walkable-over.
func (k ObjectKind) Blocking() bool {
	return k == ObjectRock || k == ObjectTree
}

// WorldObject is a static world feature anchored to a single tile.
// Stage and StageTimer are only meaningful for berry bushes; FlowerType
// is only meaningful for flowers. The zero values are correct for all
// other kinds.
type WorldObject struct {
	Kind       ObjectKind
	X, Y       int
	Stage      uint8   // Berry bush growth stage, 0..2
	StageTimer float32 // Seconds elapsed in the current stage
	FlowerType uint8   // Visual variant for flowers
}

// Coord is a tile coordinate key.
type Coord struct {
	X, Y int
}

// ErrOccupied is returned by Place when the target tile already holds an
// object.
var ErrOccupied = errors.New("tile already occupied")

// OccupancyGrid tracks which tiles hold world objects. At most one
// object per tile. Safe for concurrent use.
type OccupancyGrid struct {
	mu     sync.Mutex
	width  int
	height int
	cells  []*WorldObject
	count  int
}

// NewOccupancyGrid allocates an empty grid of the given dimensions.
func NewOccupancyGrid(width, height int) *OccupancyGrid {
	return &OccupancyGrid{
		width:  width,
		height: height,
		cells:  make([]*WorldObject, width*height),
	}
}

func (g *OccupancyGrid) idx(x, y int) int {
	return y*g.width + x
}

func (g *OccupancyGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsOccupied reports whether the tile at (x, y) holds an object.
// Out-of-bounds tiles report as occupied so callers never place there.
func (g *OccupancyGrid) IsOccupied(x, y int) bool {
	if !g.inBounds(x, y) {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cells[g.idx(x, y)] != nil
}

// Place inserts an object at its (X, Y) tile. Returns ErrOccupied if
// the tile already holds an object; the existing object is untouched.
func (g *OccupancyGrid) Place(obj *WorldObject) error {
	if !g.inBounds(obj.X, obj.Y) {
		return ErrOccupied
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.idx(obj.X, obj.Y)
	if g.cells[i] != nil {
		return ErrOccupied
	}
	g.cells[i] = obj
	g.count++
	return nil
}

// Remove clears the tile at (x, y) and returns the object that was
// there, or nil if the tile was empty.
func (g *OccupancyGrid) Remove(x, y int) *WorldObject {
	if !g.inBounds(x, y) {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.idx(x, y)
	obj := g.cells[i]
	if obj != nil {
		g.cells[i] = nil
		g.count--
	}
	return obj
}

// At returns the object at (x, y), or nil. The returned pointer aliases
// grid state; mutate it only through the lifecycle systems.
func (g *OccupancyGrid) At(x, y int) *WorldObject {
	if !g.inBounds(x, y) {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cells[g.idx(x, y)]
}

// Neighbors returns every object within Chebyshev distance radius of
// (x, y), including (x, y) itself, in row-major order. The deterministic
// order matters: seek-target selection takes the nearest with row-major
// tie-breaking.
func (g *OccupancyGrid) Neighbors(x, y, radius int) []*WorldObject {
	var out []*WorldObject
	g.mu.Lock()
	defer g.mu.Unlock()
	for ny := y - radius; ny <= y+radius; ny++ {
		for nx := x - radius; nx <= x+radius; nx++ {
			if !g.inBounds(nx, ny) {
				continue
			}
			if obj := g.cells[g.idx(nx, ny)]; obj != nil {
				out = append(out, obj)
			}
		}
	}
	return out
}

// Objects returns all placed objects in row-major order.
func (g *OccupancyGrid) Objects() []*WorldObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*WorldObject, 0, g.count)
	for _, obj := range g.cells {
		if obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

// Counts returns the number of placed objects of each kind.
func (g *OccupancyGrid) Counts() [NumObjectKinds]int {
	g.mu.Lock()
	defer g.mu.Unlock()
	var counts [NumObjectKinds]int
	for _, obj := range g.cells {
		if obj != nil {
			counts[obj.Kind]++
		}
	}
	return counts
}

// Len returns the total number of placed objects.
func (g *OccupancyGrid) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}
