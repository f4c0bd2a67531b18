package bitmap

import (
	"image"

	"github.com/pkg/errors"

	"turingscreen/pkg/proto"
)

// MaxTransferBytes is the default tile payload budget. It sits below the
// serial driver's practical buffer with headroom for the frame header.
const MaxTransferBytes = 4096

// Tile is one rectangular band of converted pixels, sized to fit a single
// transport write. Pixels is valid only until the next call to Next.
type Tile struct {
	X, Y   int
	W, H   int
	Pixels []byte
}

// Tiler converts a source image into a lazy, finite, non-restartable
// sequence of row-band tiles. Bands cover the requested region exactly,
// top to bottom, with no overlap; conversion happens one band at a time so
// peak memory stays at one tile regardless of image size.
type Tiler struct {
	src         image.Image
	posX, posY  int
	width       int
	height      int
	rowsPerTile int
	nextRow     int
	buf         []byte
}

// NewTiler validates the draw region against the panel and prepares the
// band sequence. The image is placed at (posX, posY) on a panel of
// panelW x panelH; maxPayload caps the converted bytes per tile, with a
// single row as the minimum unit.
func NewTiler(src image.Image, posX, posY, panelW, panelH, maxPayload int) (*Tiler, error) {
	size := src.Bounds().Size()

	if posX < 0 || posY < 0 || posX+size.X > panelW || posY+size.Y > panelH {
		return nil, errors.Wrapf(proto.ErrRegionOutOfBounds,
			"%dx%d at (%d,%d) on a %dx%d panel", size.X, size.Y, posX, posY, panelW, panelH)
	}

	if maxPayload <= 0 {
		maxPayload = MaxTransferBytes
	}

	rowBytes := 2 * size.X
	rows := 1
	if rowBytes > 0 && maxPayload >= rowBytes {
		rows = maxPayload / rowBytes
	}

	return &Tiler{
		src:         src,
		posX:        posX,
		posY:        posY,
		width:       size.X,
		height:      size.Y,
		rowsPerTile: rows,
	}, nil
}

// Count reports how many tiles the sequence will produce in total.
func (t *Tiler) Count() int {
	if t.width == 0 || t.height == 0 {
		return 0
	}
	return (t.height + t.rowsPerTile - 1) / t.rowsPerTile
}

// Next converts and returns the next band, or ok == false once the region
// is covered. The pixel buffer is reused between calls; consumers must
// finish with a tile before asking for the next one.
func (t *Tiler) Next() (tile Tile, ok bool) {
	if t.width == 0 || t.nextRow >= t.height {
		return Tile{}, false
	}

	rows := t.rowsPerTile
	if t.nextRow+rows > t.height {
		rows = t.height - t.nextRow
	}

	need := 2 * t.width * rows
	if cap(t.buf) < need {
		t.buf = make([]byte, need)
	}
	buf := t.buf[:need]

	b := t.src.Bounds()
	i := 0
	for y := 0; y < rows; y++ {
		sy := b.Min.Y + t.nextRow + y
		for x := 0; x < t.width; x++ {
			r, g, bb, _ := t.src.At(b.Min.X+x, sy).RGBA()
			v := packRGB565(r, g, bb)
			buf[i] = byte(v)
			buf[i+1] = byte(v >> 8)
			i += 2
		}
	}

	tile = Tile{
		X:      t.posX,
		Y:      t.posY + t.nextRow,
		W:      t.width,
		H:      rows,
		Pixels: buf,
	}
	t.nextRow += rows
	return tile, true
}
