package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/renderer"
	"github.com/pthm-cable/blobs/systems"
)

// BlobInfo holds the selected blob's data for the inspector.
type BlobInfo struct {
	ID       uint32
	State    components.BlobState
	Hunger   float32
	Thirst   float32
	HP       float32
	MaxHP    float32
	Age      float32
	Genetics components.Genetics
}

// SidePanel renders a control and inspection panel on the right edge.
type SidePanel struct {
	width int32
}

// NewSidePanel creates a side panel of the given width.
func NewSidePanel(width int32) *SidePanel {
	return &SidePanel{width: width}
}

// Width returns the panel width in pixels.
func (p *SidePanel) Width() int32 { return p.width }

// Draw renders the panel and applies control changes in place. Returns
// true if the pointer is over the panel, so world clicks can be
// suppressed.
func (p *SidePanel) Draw(screenW, screenH int32, world *systems.World, flags *renderer.DebugFlags, paused *bool, speed *int, blob *BlobInfo) bool {
	x := float32(screenW - p.width)
	rl.DrawRectangle(screenW-p.width, 0, p.width, screenH, rl.Color{R: 20, G: 25, B: 30, A: 240})
	rl.DrawLine(screenW-p.width, 0, screenW-p.width, screenH, rl.Color{R: 60, G: 70, B: 80, A: 255})

	pad := float32(12)
	cx := x + pad
	cw := float32(p.width) - 2*pad
	y := float32(12)

	rl.DrawText("Controls", int32(cx), int32(y), 16, rl.White)
	y += 26

	label := "Pause"
	if *paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: cx, Y: y, Width: cw, Height: 26}, label) {
		*paused = !*paused
	}
	y += 34

	rl.DrawText(fmt.Sprintf("Speed: %dx", *speed), int32(cx), int32(y), 14, rl.LightGray)
	y += 18
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: cx, Y: y, Width: cw, Height: 18},
		"1", "10",
		float32(*speed), 1, 10,
	)
	*speed = int(newSpeed + 0.5)
	y += 30

	rl.DrawText("Overlays", int32(cx), int32(y), 16, rl.White)
	y += 24
	flags.ShowGrid = gui.CheckBox(rl.Rectangle{X: cx, Y: y, Width: 16, Height: 16}, "Grid", flags.ShowGrid)
	y += 24
	flags.ShowSight = gui.CheckBox(rl.Rectangle{X: cx, Y: y, Width: 16, Height: 16}, "Sight radius", flags.ShowSight)
	y += 24
	flags.ShowTargets = gui.CheckBox(rl.Rectangle{X: cx, Y: y, Width: 16, Height: 16}, "Targets", flags.ShowTargets)
	y += 24
	flags.ShowStages = gui.CheckBox(rl.Rectangle{X: cx, Y: y, Width: 16, Height: 16}, "Bush stages", flags.ShowStages)
	y += 34

	if world != nil {
		p.drawWorldCounts(cx, &y, world)
	}

	if blob != nil {
		p.drawBlobInfo(cx, &y, blob)
	} else {
		rl.DrawText("Click a blob to inspect", int32(cx), int32(y), 14, rl.Gray)
	}

	mouse := rl.GetMousePosition()
	return mouse.X >= x
}

func (p *SidePanel) drawWorldCounts(cx float32, y *float32, world *systems.World) {
	rl.DrawText("World", int32(cx), int32(*y), 16, rl.White)
	*y += 22

	counts := world.Occupancy.Counts()
	rows := []struct {
		label string
		kind  systems.ObjectKind
	}{
		{"Trees", systems.ObjectTree},
		{"Rocks", systems.ObjectRock},
		{"Bushes", systems.ObjectBerryBush},
		{"Mushrooms", systems.ObjectMushroom},
		{"Sugar cane", systems.ObjectSugarCane},
		{"Flowers", systems.ObjectFlower},
	}
	for _, row := range rows {
		rl.DrawText(fmt.Sprintf("%s: %d", row.label, counts[row.kind]), int32(cx), int32(*y), 14, rl.LightGray)
		*y += 18
	}
	*y += 8
}

func (p *SidePanel) drawBlobInfo(cx float32, y *float32, blob *BlobInfo) {
	line := func(format string, args ...interface{}) {
		rl.DrawText(fmt.Sprintf(format, args...), int32(cx), int32(*y), 14, rl.LightGray)
		*y += 18
	}

	rl.DrawText(fmt.Sprintf("Blob #%d", blob.ID), int32(cx), int32(*y), 16, rl.White)
	*y += 24

	line("State: %s", blob.State)
	line("HP: %.0f / %.0f", blob.HP, blob.MaxHP)
	line("Hunger: %.0f", blob.Hunger)
	line("Thirst: %.0f", blob.Thirst)
	line("Age: %.0fs", blob.Age)
	*y += 8

	rl.DrawText("Genetics", int32(cx), int32(*y), 16, rl.White)
	*y += 22
	line("Intelligence: %.0f", blob.Genetics.Intelligence)
	line("Strength: %.0f", blob.Genetics.Strength)
	line("Speed: %.2f", blob.Genetics.Speed)
	line("Sight: %.1f", blob.Genetics.Sight)
	line("Lifespan: %.0fs", blob.Genetics.Lifespan)
}
