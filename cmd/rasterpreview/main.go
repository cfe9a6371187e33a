// Raster preview tool - interactive view of a beast's cone and body with sliders.
//
// Usage: go run ./cmd/rasterpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/renderer"
)

const (
	windowWidth  = 900
	windowHeight = 560
	previewSize  = 128 // buffer pixels, scaled up for display
	previewScale = 4
	panelWidth   = windowWidth - previewSize*previewScale - 30
)

// ShapeParams holds the drawn beast's parameters.
type ShapeParams struct {
	FOVDegrees float32
	Heading    float32 // degrees
	SightRange float32
	Radius     float32
	Carnivore  bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	palette := renderer.PaletteFromConfig(cfg.Render)

	defaults := ShapeParams{
		FOVDegrees: float32(cfg.Beast.FOVDegrees),
		SightRange: float32(cfg.Beast.SightRange),
		Radius:     float32(palette.HerbivoreRadius),
	}
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Raster Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	buf := renderer.NewBuffer(previewSize, previewSize)
	img := rl.GenImageColor(previewSize, previewSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	pixels := make([]color.RGBA, previewSize*previewSize)

	spinning := false
	needsRedraw := true

	for !rl.WindowShouldClose() {
		if spinning {
			params.Heading = float32(math.Mod(float64(params.Heading)+90*float64(rl.GetFrameTime()), 360))
			needsRedraw = true
		}

		if needsRedraw {
			drawShape(buf, params, palette)
			updateTexture(texture, pixels, buf)
			needsRedraw = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: previewSize, Height: previewSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize * previewScale, Height: previewSize * previewScale},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize*previewScale, previewSize*previewScale, rl.DarkGray)

		panelX := float32(previewSize*previewScale + 20)
		panelY := float32(10)

		rl.DrawText("Beast Shape", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		sliders := []struct {
			label    string
			value    *float32
			min, max float32
		}{
			{"Field of view (degrees)", &params.FOVDegrees, 0, 360},
			{"Heading (degrees)", &params.Heading, 0, 360},
			{"Sight range", &params.SightRange, 0, previewSize / 2},
			{"Body radius", &params.Radius, 0, 20},
		}
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf("%.0f", s.min), fmt.Sprintf("%.0f", s.max),
				*s.value, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf("%.1f", *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != *s.value {
				*s.value = v
				needsRedraw = true
			}
			panelY += 35
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(spinning, "Stop", "Spin")) {
			spinning = !spinning
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(params.Carnivore, "Herbivore", "Carnivore")) {
			params.Carnivore = !params.Carnivore
			if params.Carnivore {
				params.Radius = float32(palette.CarnivoreRadius)
			} else {
				params.Radius = float32(palette.HerbivoreRadius)
			}
			needsRedraw = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			spinning = false
			needsRedraw = true
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// drawShape paints one beast at the buffer centre the way frames draw it:
// cone first, body on top.
func drawShape(buf *renderer.Buffer, params ShapeParams, palette renderer.Palette) {
	buf.Clear(palette.Background)

	c := previewSize / 2
	fov := float64(params.FOVDegrees) * math.Pi / 180
	heading := float64(params.Heading) * math.Pi / 180
	renderer.DrawCone(buf, c, c, float64(params.SightRange), fov, heading, palette.Cone)

	body := palette.Herbivore
	if params.Carnivore {
		body = palette.Carnivore
	}
	renderer.DrawCircle(buf, c, c, int(params.Radius), body)
}

func updateTexture(texture rl.Texture2D, pixels []color.RGBA, buf *renderer.Buffer) {
	for i, p := range buf.Pix {
		pixels[i] = color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
