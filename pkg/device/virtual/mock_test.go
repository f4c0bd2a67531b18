package virtual

import (
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"turingscreen/pkg/proto"
)

func TestMockImplementsControl(t *testing.T) {
	var _ proto.Control = Mock(zap.NewNop())
}

func TestSnapshotsDrawnImages(t *testing.T) {
	fs := afero.NewMemMapFs()
	dev := MockWithSnapshots(zap.NewNop(), fs)

	require.NoError(t, dev.Draw(image.NewRGBA(image.Rect(0, 0, 12, 6))))

	files, err := afero.ReadDir(fs, ".")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0].Name(), ".png"))

	f, err := fs.Open(files[0].Name())
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}
