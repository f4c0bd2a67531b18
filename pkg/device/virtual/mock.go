// Package virtual is a no-hardware stand-in for the panel: operations are
// logged, draws can be snapshotted to PNG files for inspection.
package virtual

import (
	"image"
	"image/png"

	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"turingscreen/pkg/proto"
)

func Mock(logger *zap.Logger) proto.Control {
	return &Mocker{l: logger}
}

// MockWithSnapshots also writes every drawn image as a PNG into fs, named
// by a fresh xid.
func MockWithSnapshots(logger *zap.Logger, fs afero.Fs) proto.Control {
	return &Mocker{l: logger, fs: fs}
}

type Mocker struct {
	l  *zap.Logger
	fs afero.Fs
}

func (m *Mocker) Startup() error {
	m.l.Info("startup")
	return nil
}

func (m *Mocker) Shutdown() error {
	m.l.Info("shutdown")
	return nil
}

func (m *Mocker) Restart() error {
	m.l.Info("restart")
	return nil
}

func (m *Mocker) SetBrightness(level int) error {
	m.l.With(zap.Int("level", level)).Info("set-brightness")
	return nil
}

func (m *Mocker) SetOrientation(o proto.Orientation) error {
	m.l.With(zap.String("orientation", o.String())).Info("set-orientation")
	return nil
}

func (m *Mocker) Clear() error {
	m.l.Info("clear")
	return nil
}

func (m *Mocker) Blank() error {
	m.l.Info("blank")
	return nil
}

func (m *Mocker) Draw(img image.Image) error {
	return m.DrawBitmap(0, 0, img)
}

func (m *Mocker) DrawBitmap(posX uint16, posY uint16, img image.Image) error {
	m.l.With(
		zap.Uint16("x", posX),
		zap.Uint16("y", posY),
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()),
	).Info("draw-bitmap")

	return m.snapshot(img)
}

func (m *Mocker) Close() error {
	m.l.Info("close")
	return nil
}

func (m *Mocker) snapshot(img image.Image) error {
	if m.fs == nil {
		return nil
	}

	name := xid.New().String() + ".png"
	f, err := m.fs.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := png.Encode(f, img); err != nil {
		return err
	}

	m.l.With(zap.String("file", name)).Debug("snapshot saved")
	return nil
}
