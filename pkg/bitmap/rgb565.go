// Package bitmap converts host images into the panel's native pixel
// encoding: RGB565, two bytes per pixel, least significant byte first.
package bitmap

import (
	"image"
	"image/color"
)

// packRGB565 reduces 16-bit color channels to 5-6-5 with round-to-nearest,
// so channel reduction never silently floors.
func packRGB565(r, g, b uint32) uint16 {
	r5 := (r*31 + 0x7FFF) / 0xFFFF
	g6 := (g*63 + 0x7FFF) / 0xFFFF
	b5 := (b*31 + 0x7FFF) / 0xFFFF
	return uint16(r5<<11 | g6<<5 | b5)
}

// NewRGB565 allocates a native-format pixel buffer covering r.
func NewRGB565(r image.Rectangle) *RGB565 {
	return &RGB565{
		pixels: make([]byte, 2*r.Dx()*r.Dy()),
		stride: 2 * r.Dx(),
		bounds: r,
	}
}

// RGB565 is a draw.Image over the panel's wire pixel layout. The byte
// order matches the stream the panel expects, so Pixels can be framed
// without copying.
type RGB565 struct {
	pixels []byte
	stride int
	bounds image.Rectangle
}

// Pixels exposes the backing buffer in wire order.
func (d *RGB565) Pixels() []byte {
	return d.pixels
}

func (d *RGB565) Bounds() image.Rectangle {
	return d.bounds
}

func (d *RGB565) ColorModel() color.Model {
	return RGB565Model
}

func (d *RGB565) At(x, y int) color.Color {
	if !image.Pt(x, y).In(d.bounds) {
		return Color(0)
	}
	i := (y-d.bounds.Min.Y)*d.stride + 2*(x-d.bounds.Min.X)
	return Color(d.pixels[i+1])<<8 | Color(d.pixels[i])
}

func (d *RGB565) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(d.bounds) {
		return
	}
	r, g, b, _ := c.RGBA()
	v := packRGB565(r, g, b)
	i := (y-d.bounds.Min.Y)*d.stride + 2*(x-d.bounds.Min.X)
	d.pixels[i] = byte(v)
	d.pixels[i+1] = byte(v >> 8)
}

// RGB565Model converts colors to the panel encoding.
var RGB565Model color.Model = color.ModelFunc(func(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return Color(packRGB565(r, g, b))
})

// Color is one RGB565 pixel: RRRRRGGG GGGBBBBB.
type Color uint16

// RGBA widens the packed channels back to 16 bits by replicating the bit
// pattern, mapping min and max channel values exactly. Alpha is always
// opaque, the panel has no transparency.
func (c Color) RGBA() (r, g, b, a uint32) {
	rBits := uint32(c & 0xF800)
	gBits := uint32(c & 0x07E0)
	bBits := uint32(c & 0x001F)
	r = rBits | rBits>>5 | rBits>>10 | rBits>>15
	g = gBits<<5 | gBits>>1 | gBits>>7
	b = bBits<<11 | bBits<<6 | bBits<<1 | bBits>>4
	a = 0xFFFF
	return
}
