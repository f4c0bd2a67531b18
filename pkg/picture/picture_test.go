package picture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadLocalFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	src := image.NewRGBA(image.Rect(0, 0, 10, 8))
	src.Set(3, 4, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	require.NoError(t, afero.WriteFile(fs, "meme.png", buf.Bytes(), 0644))

	loader := NewLoader(fs, zap.NewNop())
	img, err := loader.Load("meme.png")
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(afero.NewMemMapFs(), zap.NewNop())
	_, err := loader.Load("nope.png")
	require.Error(t, err)
}

func TestFitFillsExactDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1000, 600))

	got := Fit(img, 320, 480)
	assert.Equal(t, 320, got.Bounds().Dx())
	assert.Equal(t, 480, got.Bounds().Dy())

	got = Fit(img, 480, 320)
	assert.Equal(t, 480, got.Bounds().Dx())
	assert.Equal(t, 320, got.Bounds().Dy())
}
