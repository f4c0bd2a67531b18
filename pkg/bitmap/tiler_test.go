package bitmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turingscreen/pkg/proto"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestTilerCoversRegionExactly(t *testing.T) {
	src := gradient(64, 48)

	tiler, err := NewTiler(src, 5, 7, 320, 480, 64*2*4)
	require.NoError(t, err)
	require.Equal(t, 12, tiler.Count())

	var got []byte
	wantY := 7
	tiles := 0
	for {
		tile, ok := tiler.Next()
		if !ok {
			break
		}
		tiles++

		assert.Equal(t, 5, tile.X)
		assert.Equal(t, wantY, tile.Y)
		assert.Equal(t, 64, tile.W)
		assert.Equal(t, 4, tile.H)
		assert.Len(t, tile.Pixels, 64*4*2)

		got = append(got, tile.Pixels...)
		wantY += tile.H
	}

	require.Equal(t, 12, tiles)
	require.Equal(t, 7+48, wantY)
	require.Len(t, got, 64*48*2)

	// reassembled tiles must equal a straight conversion of the image
	want := NewRGB565(src.Bounds())
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			want.Set(x, y, src.At(x, y))
		}
	}
	assert.Equal(t, want.Pixels(), got)
}

func TestTilerReusesBuffer(t *testing.T) {
	tiler, err := NewTiler(gradient(16, 8), 0, 0, 320, 480, 16*2*2)
	require.NoError(t, err)

	first, ok := tiler.Next()
	require.True(t, ok)
	second, ok := tiler.Next()
	require.True(t, ok)

	assert.Same(t, &first.Pixels[0], &second.Pixels[0])
}

func TestTilerRejectsOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		w, h int
	}{
		{"width overflow", 1, 0, 320, 480},
		{"height overflow", 0, 1, 320, 480},
		{"negative origin", -1, 0, 16, 16},
		{"beyond panel", 310, 470, 16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTiler(gradient(tt.w, tt.h), tt.x, tt.y, 320, 480, 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, proto.ErrRegionOutOfBounds))
		})
	}
}

func TestTilerMinimumOneRow(t *testing.T) {
	// budget below one row still produces whole-row tiles
	tiler, err := NewTiler(gradient(32, 3), 0, 0, 320, 480, 10)
	require.NoError(t, err)
	require.Equal(t, 3, tiler.Count())

	for {
		tile, ok := tiler.Next()
		if !ok {
			break
		}
		assert.Equal(t, 1, tile.H)
		assert.Len(t, tile.Pixels, 32*2)
	}
}

func TestPackRoundsToNearest(t *testing.T) {
	// 8-bit channel 7 widens to 0x0707; nearest 5-bit value is 1, where
	// plain truncation would floor to 0
	assert.Equal(t, uint16(1), packRGB565(0x0707, 0, 0)>>11)
	assert.Equal(t, uint16(0), packRGB565(0x0300, 0, 0)>>11)
	assert.Equal(t, uint16(31), packRGB565(0xFFFF, 0, 0)>>11)
	assert.Equal(t, uint16(63), (packRGB565(0, 0xFFFF, 0)>>5)&0x3F)
}

func TestColorWidensExactly(t *testing.T) {
	r, g, b, a := Color(0xFFFF).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0xFFFF), g)
	assert.Equal(t, uint32(0xFFFF), b)
	assert.Equal(t, uint32(0xFFFF), a)

	r, g, b, _ = Color(0).RGBA()
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestRGB565SetAt(t *testing.T) {
	d := NewRGB565(image.Rect(0, 0, 4, 4))
	d.Set(2, 3, color.RGBA{R: 255, A: 255})

	c := d.At(2, 3).(Color)
	assert.Equal(t, uint16(0x1F), uint16(c)>>11)

	// wire order is least significant byte first
	i := 3*d.stride + 2*2
	assert.Equal(t, byte(0x00), d.pixels[i])
	assert.Equal(t, byte(0xF8), d.pixels[i+1])
}
