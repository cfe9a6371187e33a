// Package renderer rasterises the simulation into a packed RGB pixel buffer
// and paces frame presentation.
package renderer

// Buffer is a row-major pixel buffer of packed 0xRRGGBB values.
type Buffer struct {
	Pix  []uint32
	W, H int
}

// NewBuffer creates a buffer with the specified dimensions.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{Pix: make([]uint32, w*h), W: w, H: h}
}

// Clear fills every pixel with color.
func (b *Buffer) Clear(color uint32) {
	if len(b.Pix) == 0 {
		return
	}
	b.Pix[0] = color
	// Exponential copy
	for filled := 1; filled < len(b.Pix); filled *= 2 {
		copy(b.Pix[filled:], b.Pix[:filled])
	}
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Set writes color at (x, y). Out-of-range writes are dropped.
func (b *Buffer) Set(x, y int, color uint32) {
	if !b.InBounds(x, y) {
		return
	}
	b.Pix[y*b.W+x] = color
}

// At returns the pixel at (x, y), or 0 when out of range.
func (b *Buffer) At(x, y int) uint32 {
	if !b.InBounds(x, y) {
		return 0
	}
	return b.Pix[y*b.W+x]
}
