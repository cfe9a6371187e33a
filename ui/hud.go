package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the status line.
type HUDData struct {
	Episode    int
	Tick       int
	Herbivores int
	Carnivores int
	Plants     int
	FPS        float64
	Overruns   int
}

// Text formats the status line.
func (d HUDData) Text() string {
	return fmt.Sprintf("Episode %d | Tick %d | Herbivores %d | Carnivores %d | Plants %d | FPS %.0f | Late %d",
		d.Episode, d.Tick, d.Herbivores, d.Carnivores, d.Plants, d.FPS, d.Overruns)
}

// HUD renders the status line along the top of the window.
type HUD struct {
	height     float32
	background rl.Color
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		height:     20,
		background: rl.Color{R: 0, G: 0, B: 0, A: 140},
	}
}

// Draw renders the HUD across the given screen width.
func (h *HUD) Draw(data HUDData, screenWidth int32) {
	rl.DrawRectangle(0, 0, screenWidth, int32(h.height), h.background)
	gui.Label(rl.Rectangle{X: 6, Y: 0, Width: float32(screenWidth) - 12, Height: h.height}, data.Text())
}
