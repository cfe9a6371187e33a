package renderer

import (
	"fmt"
	"math"
	"time"

	"github.com/pthm-cable/beasts/components"
)

// Surface is the display a finished frame is presented to.
type Surface interface {
	Present(pix []uint32, w, h int) error
}

// FrameResult describes one rendered frame.
type FrameResult struct {
	Elapsed time.Duration // time from tick start to the end of presentation
	Behind  bool          // frame missed its interval
}

// FrameRenderer draws snapshots and presents them at a fixed pace.
type FrameRenderer struct {
	surface Surface
	palette Palette
	pacer   *Pacer
}

// NewFrameRenderer creates a frame renderer presenting to surface.
func NewFrameRenderer(surface Surface, palette Palette, pacer *Pacer) *FrameRenderer {
	if pacer == nil {
		pacer = NewPacer(nil)
	}
	return &FrameRenderer{surface: surface, palette: palette, pacer: pacer}
}

// Pacer returns the renderer's pacer.
func (r *FrameRenderer) Pacer() *Pacer {
	return r.pacer
}

// Draw rasterises the snapshot into buf. Entities are drawn in snapshot
// order; each beast's view cone goes down before its body.
func (r *FrameRenderer) Draw(snap components.Snapshot, buf *Buffer) {
	buf.Clear(r.palette.Background)

	for i := range snap {
		e := &snap[i]
		x, y := pixel(e.Pos)
		switch e.Kind {
		case components.KindPlant:
			if !e.Plant.Sprouted {
				continue
			}
			DrawCircle(buf, x, y, r.palette.PlantRadius, r.palette.Plant)
		case components.KindBeast:
			b := &e.Beast
			DrawCone(buf, x, y, b.SightRange, b.FOV, b.Heading, r.palette.Cone)
			color, radius := r.palette.Herbivore, r.palette.HerbivoreRadius
			if b.Type == components.Carnivore {
				color, radius = r.palette.Carnivore, r.palette.CarnivoreRadius
			}
			DrawCircle(buf, x, y, radius, color)
		}
	}
}

// Render draws the snapshot, presents the buffer and then waits out the rest
// of interval measured from start, the beginning of the tick. A presentation
// failure is returned without pacing.
func (r *FrameRenderer) Render(start time.Time, snap components.Snapshot, buf *Buffer, interval time.Duration) (FrameResult, error) {
	r.Draw(snap, buf)

	if err := r.surface.Present(buf.Pix, buf.W, buf.H); err != nil {
		return FrameResult{}, fmt.Errorf("presenting frame: %w", err)
	}

	elapsed, behind := r.pacer.Wait(start, interval)
	return FrameResult{Elapsed: elapsed, Behind: behind}, nil
}

func pixel(p components.Position) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}
