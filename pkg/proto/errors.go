package proto

import (
	"github.com/pkg/errors"
)

var (
	// ErrDeviceNotFound means port discovery saw no panel on any USB port.
	ErrDeviceNotFound = errors.New("usb screen not found")

	// ErrHandshakeFailed means the panel did not acknowledge the hello
	// exchange within the read timeout, or answered with garbage.
	ErrHandshakeFailed = errors.New("handshake failed")

	// ErrPayloadTooLarge means a frame payload exceeds what the protocol
	// can address. Never retried.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrRegionOutOfBounds means a draw region or packed coordinate falls
	// outside the panel. Never retried, nothing is written.
	ErrRegionOutOfBounds = errors.New("region out of bounds")

	// ErrMalformedFrame means a response read back from the panel does not
	// parse as a frame.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrCommunication is a transport failure that survived the retry
	// bound. The screen is unusable afterwards until reopened.
	ErrCommunication = errors.New("communication error")

	// ErrScreenClosed is returned by every operation after Close, or after
	// an unrecoverable ErrCommunication.
	ErrScreenClosed = errors.New("screen closed")

	// ErrTimeout is a bounded transport write that did not complete.
	ErrTimeout = errors.New("transport timeout")
)
