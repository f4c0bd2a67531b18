package proto

import (
	"image"
)

// Orientation selects how the panel maps incoming coordinates onto its
// native portrait 320x480 grid. Values follow the rev A wire encoding.
type Orientation byte

const (
	Portrait Orientation = iota
	ReversePortrait
	Landscape
	ReverseLandscape
)

func (o Orientation) IsLandscape() bool {
	return o == Landscape || o == ReverseLandscape
}

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case ReversePortrait:
		return "reverse-portrait"
	case Landscape:
		return "landscape"
	case ReverseLandscape:
		return "reverse-landscape"
	}
	return "unknown"
}

// ParseOrientation maps landscape/invert flags to an Orientation.
func ParseOrientation(landscape bool, invert bool) Orientation {
	switch {
	case landscape && invert:
		return ReverseLandscape
	case landscape:
		return Landscape
	case invert:
		return ReversePortrait
	}
	return Portrait
}

// Control is the host-facing surface of one screen. Implementations are
// single-writer: callers sharing an instance across goroutines must
// synchronize externally, the device itself is a sequential wire.
type Control interface {
	Startup() error
	Shutdown() error
	Restart() error

	SetBrightness(level int) error
	SetOrientation(o Orientation) error

	Clear() error
	Blank() error

	Draw(img image.Image) error
	DrawBitmap(posX uint16, posY uint16, img image.Image) error

	Close() error
}
