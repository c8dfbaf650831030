package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/camera"
	"github.com/pthm-cable/blobs/components"
)

// Blob body color by state.
var stateColors = map[components.BlobState]rl.Color{
	components.StateWandering:    {R: 240, G: 220, B: 120, A: 255},
	components.StateSeekingWater: {R: 120, G: 170, B: 240, A: 255},
	components.StateSeekingFood:  {R: 240, G: 160, B: 100, A: 255},
	components.StateSeekingMate:  {R: 240, G: 130, B: 200, A: 255},
	components.StateDrinking:     {R: 80, G: 130, B: 220, A: 255},
	components.StateHarvesting:   {R: 200, G: 120, B: 60, A: 255},
}

// DrawBlob draws one blob with its health bar and optional overlays.
// maxHP scales the health bar; selected adds a highlight ring.
func (r *Renderer) DrawBlob(cam *camera.Camera, pos *components.Position, blob *components.Blob, maxHP float32, selected bool, flags DebugFlags) {
	wx := pos.X * r.tileSize
	wy := pos.Y * r.tileSize

	radius := r.tileSize * 0.35
	if !cam.IsVisible(wx, wy, radius+r.tileSize) {
		return
	}

	sx, sy := cam.WorldToScreen(wx, wy)
	sr := radius * cam.Zoom

	color, ok := stateColors[blob.State]
	if !ok {
		color = rl.Gray
	}

	if flags.ShowSight {
		rl.DrawCircleLines(int32(sx), int32(sy), blob.Sight*r.tileSize*cam.Zoom, rl.Color{R: 255, G: 255, B: 255, A: 60})
	}
	if flags.ShowTargets && blob.Target != components.TargetNone && blob.Target != components.TargetMate {
		tx, ty := cam.WorldToScreen(
			(float32(blob.TargetX)+0.5)*r.tileSize,
			(float32(blob.TargetY)+0.5)*r.tileSize,
		)
		rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: tx, Y: ty}, rl.Color{R: 255, G: 255, B: 255, A: 90})
	}

	rl.DrawCircle(int32(sx), int32(sy), sr, color)
	rl.DrawCircleLines(int32(sx), int32(sy), sr, rl.Color{R: 30, G: 30, B: 30, A: 200})

	if selected {
		rl.DrawCircleLines(int32(sx), int32(sy), sr+3, rl.Yellow)
	}

	// Health bar above the body.
	if maxHP > 0 {
		barW := sr * 2
		barH := float32(3) * cam.Zoom
		frac := blob.HP / maxHP
		if frac < 0 {
			frac = 0
		}
		barColor := rl.Green
		if frac < 0.3 {
			barColor = rl.Red
		} else if frac < 0.6 {
			barColor = rl.Orange
		}
		bx := sx - sr
		by := sy - sr - barH - 2
		rl.DrawRectangle(int32(bx), int32(by), int32(barW), int32(barH), rl.Color{R: 40, G: 40, B: 40, A: 200})
		rl.DrawRectangle(int32(bx), int32(by), int32(barW*frac), int32(barH), barColor)
	}
}
