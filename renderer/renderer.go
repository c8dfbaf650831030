// Package renderer draws the world and its inhabitants with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/camera"
	"github.com/pthm-cable/blobs/systems"
)

// DebugFlags selects optional overlays. All off by default.
type DebugFlags struct {
	ShowGrid    bool // Tile grid lines
	ShowSight   bool // Perception radius circles
	ShowTargets bool // Lines from blobs to their current targets
	ShowStages  bool // Berry bush stage numbers
}

// Tile palette.
var tileColors = [systems.NumTileTypes]rl.Color{
	systems.TileDeepWater:    {R: 15, G: 40, B: 90, A: 255},
	systems.TileWater:        {R: 30, G: 70, B: 140, A: 255},
	systems.TileShallowWater: {R: 70, G: 130, B: 180, A: 255},
	systems.TileSand:         {R: 210, G: 190, B: 130, A: 255},
	systems.TileGrass:        {R: 90, G: 160, B: 70, A: 255},
	systems.TileForest:       {R: 40, G: 100, B: 45, A: 255},
}

var flowerColors = [4]rl.Color{
	{R: 230, G: 90, B: 120, A: 255},
	{R: 240, G: 200, B: 60, A: 255},
	{R: 180, G: 110, B: 220, A: 255},
	{R: 250, G: 250, B: 250, A: 255},
}

// Renderer draws the tile world in camera space.
type Renderer struct {
	tileSize float32
}

// New creates a renderer with the given tile size in pixels at 1x zoom.
func New(tileSize int) *Renderer {
	return &Renderer{tileSize: float32(tileSize)}
}

// TileSize returns the pixel size of one tile at 1x zoom.
func (r *Renderer) TileSize() float32 { return r.tileSize }

// tileRect returns the screen rectangle of tile (x, y).
func (r *Renderer) tileRect(cam *camera.Camera, x, y int) rl.Rectangle {
	sx, sy := cam.WorldToScreen(float32(x)*r.tileSize, float32(y)*r.tileSize)
	size := r.tileSize * cam.Zoom
	return rl.Rectangle{X: sx, Y: sy, Width: size, Height: size}
}

// visibleTiles returns the inclusive tile range currently on screen.
func (r *Renderer) visibleTiles(cam *camera.Camera, tiles *systems.TileMap) (x0, y0, x1, y1 int) {
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	x0 = int(minX / r.tileSize)
	y0 = int(minY / r.tileSize)
	x1 = int(maxX/r.tileSize) + 1
	y1 = int(maxY/r.tileSize) + 1

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= tiles.Width() {
		x1 = tiles.Width() - 1
	}
	if y1 >= tiles.Height() {
		y1 = tiles.Height() - 1
	}
	return x0, y0, x1, y1
}

// DrawTerrain draws the visible tile rectangle.
func (r *Renderer) DrawTerrain(cam *camera.Camera, tiles *systems.TileMap, flags DebugFlags) {
	x0, y0, x1, y1 := r.visibleTiles(cam, tiles)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			rect := r.tileRect(cam, x, y)
			rl.DrawRectangleRec(rect, tileColors[tiles.At(x, y)])
			if flags.ShowGrid {
				rl.DrawRectangleLinesEx(rect, 1, rl.Color{R: 0, G: 0, B: 0, A: 40})
			}
		}
	}
}

// DrawObjects draws the visible world objects over the terrain.
func (r *Renderer) DrawObjects(cam *camera.Camera, world *systems.World, flags DebugFlags) {
	x0, y0, x1, y1 := r.visibleTiles(cam, world.Tiles)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			obj := world.Occupancy.At(x, y)
			if obj == nil {
				continue
			}
			r.drawObject(cam, obj, flags)
		}
	}
}

func (r *Renderer) drawObject(cam *camera.Camera, obj *systems.WorldObject, flags DebugFlags) {
	rect := r.tileRect(cam, obj.X, obj.Y)
	cx := rect.X + rect.Width/2
	cy := rect.Y + rect.Height/2
	unit := rect.Width // one tile in pixels

	switch obj.Kind {
	case systems.ObjectTree:
		rl.DrawRectangle(int32(cx-unit*0.06), int32(cy), int32(unit*0.12), int32(unit*0.4), rl.Color{R: 100, G: 70, B: 40, A: 255})
		rl.DrawCircle(int32(cx), int32(cy-unit*0.15), unit*0.32, rl.Color{R: 25, G: 80, B: 30, A: 255})
	case systems.ObjectRock:
		rl.DrawCircle(int32(cx), int32(cy), unit*0.28, rl.Color{R: 120, G: 120, B: 125, A: 255})
	case systems.ObjectBerryBush:
		rl.DrawCircle(int32(cx), int32(cy), unit*(0.15+0.06*float32(obj.Stage)), rl.Color{R: 50, G: 120, B: 50, A: 255})
		if obj.Stage == systems.StageRipe {
			rl.DrawCircle(int32(cx-unit*0.1), int32(cy-unit*0.08), unit*0.05, rl.Red)
			rl.DrawCircle(int32(cx+unit*0.1), int32(cy), unit*0.05, rl.Red)
			rl.DrawCircle(int32(cx), int32(cy+unit*0.1), unit*0.05, rl.Red)
		}
		if flags.ShowStages {
			rl.DrawText(stageLabel(obj.Stage), int32(rect.X), int32(rect.Y), 10, rl.White)
		}
	case systems.ObjectMushroom:
		rl.DrawRectangle(int32(cx-unit*0.05), int32(cy), int32(unit*0.1), int32(unit*0.2), rl.RayWhite)
		rl.DrawCircle(int32(cx), int32(cy), unit*0.16, rl.Color{R: 200, G: 50, B: 50, A: 255})
	case systems.ObjectSugarCane:
		for i := -1; i <= 1; i++ {
			x := cx + float32(i)*unit*0.14
			rl.DrawLineEx(
				rl.Vector2{X: x, Y: cy + unit*0.3},
				rl.Vector2{X: x, Y: cy - unit*0.3},
				unit*0.06,
				rl.Color{R: 170, G: 200, B: 90, A: 255},
			)
		}
	case systems.ObjectFlower:
		rl.DrawCircle(int32(cx), int32(cy), unit*0.1, flowerColors[obj.FlowerType%4])
	}
}

func stageLabel(stage uint8) string {
	switch stage {
	case 0:
		return "0"
	case 1:
		return "1"
	default:
		return "2"
	}
}
