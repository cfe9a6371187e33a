package renderer

import (
	"math"

	"github.com/pthm-cable/beasts/perception"
)

// DrawCircle plots the outline of a circle of radius r centred on (cx, cy)
// using the integer midpoint algorithm. Points outside the buffer are
// skipped. A zero radius paints the centre; a negative radius draws nothing.
func DrawCircle(buf *Buffer, cx, cy, r int, color uint32) {
	if r < 0 {
		return
	}
	if r == 0 {
		buf.Set(cx, cy, color)
		return
	}

	x, y := r, 0
	err := 1 - r
	for x >= y {
		buf.Set(cx+x, cy+y, color)
		buf.Set(cx-x, cy+y, color)
		buf.Set(cx+x, cy-y, color)
		buf.Set(cx-x, cy-y, color)
		buf.Set(cx+y, cy+x, color)
		buf.Set(cx-y, cy+x, color)
		buf.Set(cx+y, cy-x, color)
		buf.Set(cx-y, cy-x, color)

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// DrawCone fills the sector of a disk of the given radius around the apex
// whose directions lie within fov/2 of heading (both in radians). Only the
// bounding square clipped to the buffer is scanned. The apex pixel has no
// direction and is always painted.
func DrawCone(buf *Buffer, apexX, apexY int, radius, fov, heading float64, color uint32) {
	if !(radius >= 0) || fov < 0 {
		return
	}

	// Past the buffer diagonal every pixel is in reach.
	reach := buf.W + buf.H
	if radius < float64(reach) {
		reach = int(math.Floor(radius))
	}
	x0, x1 := max(apexX-reach, 0), min(apexX+reach, buf.W-1)
	y0, y1 := max(apexY-reach, 0), min(apexY+reach, buf.H-1)
	rSq := radius * radius

	for y := y0; y <= y1; y++ {
		dy := float64(y - apexY)
		row := buf.Pix[y*buf.W : (y+1)*buf.W]
		for x := x0; x <= x1; x++ {
			dx := float64(x - apexX)
			if dx*dx+dy*dy > rSq {
				continue
			}
			if perception.WithinCone(dx, dy, heading, fov) {
				row[x] = color
			}
		}
	}
}
