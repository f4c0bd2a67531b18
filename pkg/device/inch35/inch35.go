// Package inch35 drives the Turing 3.5" rev A USB panel. It owns the
// transport exclusively and sequences handshake, configuration and draw
// operations over it.
package inch35

import (
	"image"
	"io"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"turingscreen/pkg/bitmap"
	"turingscreen/pkg/proto"
)

// Native panel resolution in portrait orientation.
const (
	PanelWidth  = 320
	PanelHeight = 480
)

type state uint8

const (
	stateUninitialized state = iota
	stateReady
	stateIdle
	stateDrawing
	stateClosed
)

// Inch35 is the long-lived screen handle. One logical writer only: the
// wire protocol is sequential and stateful, so concurrent callers must
// wrap access in their own mutual exclusion.
type Inch35 struct {
	port   io.ReadWriteCloser
	logger *zap.Logger
	cfg    Config

	state         state
	orientation   proto.Orientation
	oriented      bool
	width, height int
}

// New opens the panel's serial port with the line settings the protocol
// requires, performs the handshake and returns a ready screen.
func New(serial *proto.Serial, logger *zap.Logger, opts ...Option) (proto.Control, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := serial.Open(&proto.Options{
		DTR:          true,
		RTS:          true,
		BaudRate:     115200,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}); err != nil {
		return nil, err
	}

	return open(serial, logger, cfg)
}

// Open adopts an already-open transport, performs the handshake and
// returns a ready screen. The transport is owned by the screen from here
// on and released by Close.
func Open(port io.ReadWriteCloser, logger *zap.Logger, opts ...Option) (proto.Control, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return open(port, logger, cfg)
}

func open(port io.ReadWriteCloser, logger *zap.Logger, cfg Config) (proto.Control, error) {
	if logger != nil {
		cfg.Logger = logger
	}

	dev := &Inch35{
		port:   port,
		logger: cfg.Logger,
		cfg:    cfg,
		state:  stateUninitialized,
		width:  PanelWidth,
		height: PanelHeight,
	}

	if err := dev.handshake(); err != nil {
		_ = port.Close()
		dev.state = stateClosed
		return nil, err
	}

	dev.state = stateReady
	return dev, nil
}

func (i *Inch35) Startup() error {
	return i.command(proto.CmdScreenOn)
}

func (i *Inch35) Shutdown() error {
	return i.command(proto.CmdScreenOff)
}

func (i *Inch35) Restart() error {
	return i.command(proto.CmdRestart)
}

// Clear fills the panel with white. The panel applies it in portrait
// addressing, so switch orientation first when needed.
func (i *Inch35) Clear() error {
	return i.command(proto.CmdClear)
}

// Blank fills the panel with black.
func (i *Inch35) Blank() error {
	return i.command(proto.CmdToBlack)
}

// SetBrightness sets the backlight level. Input is clamped to [0,100];
// out-of-range values are a device-tolerance policy, not an error, since
// brightness has no meaningful invalid value beyond range.
func (i *Inch35) SetBrightness(level int) error {
	if err := i.ensureReady(); err != nil {
		return err
	}

	level = lo.Clamp(level, 0, 100)
	f, err := proto.Encode(proto.BrightnessCommand(level))
	if err != nil {
		return err
	}

	if err := i.send(f); err != nil {
		return err
	}

	i.state = stateIdle
	return nil
}

// SetOrientation records the session orientation and reconfigures the
// panel. The logical width and height swap in landscape; every later draw
// is validated against the new dimensions. Re-setting the current value
// updates state without touching the wire.
func (i *Inch35) SetOrientation(o proto.Orientation) error {
	if err := i.ensureReady(); err != nil {
		return err
	}

	if i.oriented && o == i.orientation {
		i.state = stateIdle
		return nil
	}

	w, h := PanelWidth, PanelHeight
	if o.IsLandscape() {
		w, h = h, w
	}

	f, err := proto.Encode(proto.OrientationCommand(o, uint16(w), uint16(h)))
	if err != nil {
		return err
	}

	if err := i.send(f); err != nil {
		return err
	}

	i.orientation = o
	i.oriented = true
	i.width, i.height = w, h
	i.state = stateIdle
	return nil
}

func (i *Inch35) Draw(img image.Image) error {
	return i.DrawBitmap(0, 0, img)
}

// DrawBitmap streams img to the panel at (posX, posY), one bitmap frame
// per tile, in band order: the panel renders progressively and relies on
// sequential addressing, so tiles are not reorderable. A draw that fails
// mid-stream leaves the panel partially drawn; callers needing atomicity
// re-issue Clear plus a full Draw.
func (i *Inch35) DrawBitmap(posX uint16, posY uint16, img image.Image) error {
	if err := i.ensureReady(); err != nil {
		return err
	}

	tiler, err := bitmap.NewTiler(img, int(posX), int(posY), i.width, i.height, i.cfg.MaxTransfer)
	if err != nil {
		return err
	}

	i.state = stateDrawing
	start := time.Now()
	sent := 0

	for {
		tile, ok := tiler.Next()
		if !ok {
			break
		}

		f, err := proto.Encode(proto.Command{
			ID:      proto.CmdDisplayBitmap,
			X:       uint16(tile.X),
			Y:       uint16(tile.Y),
			EX:      uint16(tile.X + tile.W - 1),
			EY:      uint16(tile.Y + tile.H - 1),
			Payload: tile.Pixels,
		})
		if err != nil {
			i.state = stateReady
			return err
		}

		if err := i.send(f); err != nil {
			return err
		}
		sent += len(f)
	}

	i.logger.With(
		zap.Int("tiles", tiler.Count()),
		zap.String("size", bytesize.New(float64(sent)).String()),
		zap.String("cost", time.Since(start).String()),
	).Debug("bitmap sent")

	i.state = stateIdle
	return nil
}

// Close releases the transport. Every later call fails with
// ErrScreenClosed without touching the wire.
func (i *Inch35) Close() error {
	if i.state == stateClosed {
		return nil
	}

	i.state = stateClosed
	return i.port.Close()
}

func (i *Inch35) ensureReady() error {
	if i.state == stateClosed {
		return proto.ErrScreenClosed
	}
	return nil
}
