// Package ui presents rendered frames in a raylib window.
package ui

import (
	"errors"
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrWindowInit is returned when raylib fails to create the window.
var ErrWindowInit = errors.New("window initialization failed")

// Window is a raylib display surface for packed RGB frames.
type Window struct {
	width, height int
	texture       rl.Texture2D
	pixels        []color.RGBA
	hud           *HUD
	status        HUDData
	showHUD       bool
}

// OpenWindow creates a window of the given size. Frame pacing is left to the
// caller, so raylib's own frame limiter is not enabled.
func OpenWindow(width, height int, title string, showHUD bool) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrWindowInit, width, height)
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return nil, ErrWindowInit
	}
	rl.SetExitKey(rl.KeyEscape)

	img := rl.GenImageColor(width, height, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return &Window{
		width:   width,
		height:  height,
		texture: texture,
		pixels:  make([]color.RGBA, width*height),
		hud:     NewHUD(),
		showHUD: showHUD,
	}, nil
}

// Present uploads the frame and draws it, with the status HUD on top.
func (w *Window) Present(pix []uint32, width, height int) error {
	if err := checkFrame(pix, width, height, w.width, w.height); err != nil {
		return err
	}

	packRGBA(w.pixels, pix)
	rl.UpdateTexture(w.texture, w.pixels)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexture(w.texture, 0, 0, rl.White)
	if w.showHUD {
		w.hud.Draw(w.status, int32(w.width))
	}
	rl.EndDrawing()
	return nil
}

// SetStatus sets the HUD contents shown with the next frame.
func (w *Window) SetStatus(s HUDData) {
	w.status = s
}

// ContinueAnimation reports whether the user still wants the window open.
func (w *Window) ContinueAnimation() bool {
	return !rl.WindowShouldClose() && !rl.IsKeyDown(rl.KeyEscape)
}

// Close frees GPU resources and closes the window.
func (w *Window) Close() {
	rl.UnloadTexture(w.texture)
	rl.CloseWindow()
}

// checkFrame validates a frame against the window size.
func checkFrame(pix []uint32, width, height, wantW, wantH int) error {
	if width != wantW || height != wantH {
		return fmt.Errorf("frame size %dx%d does not match window %dx%d", width, height, wantW, wantH)
	}
	if len(pix) != width*height {
		return fmt.Errorf("frame has %d pixels, want %d", len(pix), width*height)
	}
	return nil
}

// packRGBA converts packed 0xRRGGBB pixels to opaque RGBA.
func packRGBA(dst []color.RGBA, pix []uint32) {
	for i, p := range pix {
		dst[i] = color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 255}
	}
}
