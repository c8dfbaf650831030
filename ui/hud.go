// Package ui provides the heads-up display and the side panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Seed       int64
	Tick       int64
	SimTime    float64
	Population int
	Births     int
	Deaths     int
	Speed      int
	FPS        int32
	Paused     bool
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(fmt.Sprintf("Blob World (seed %d)", data.Seed), 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Blobs: %d | Births: %d | Deaths: %d", data.Population, data.Births, data.Deaths),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | t=%.1fs | Speed: %dx | FPS: %d", data.Tick, data.SimTime, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText(
		"space pause | </> speed | wheel zoom | drag pan | click inspect | g grid | s sight | t targets",
		10, screenHeight-25, 14, rl.Gray,
	)
}
