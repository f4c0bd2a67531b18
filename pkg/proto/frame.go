package proto

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Rev A command identifiers, one byte each.
type CommandID byte

const (
	CmdHello          CommandID = 0x45
	CmdRestart        CommandID = 101
	CmdClear          CommandID = 102
	CmdToBlack        CommandID = 103
	CmdScreenOff      CommandID = 108
	CmdScreenOn       CommandID = 109
	CmdSetBrightness  CommandID = 110
	CmdSetOrientation CommandID = 121
	CmdDisplayBitmap  CommandID = 197
)

const (
	// HeaderLen is the fixed frame header size: four packed 10-bit
	// coordinates plus the command byte.
	HeaderLen = 6

	// maxCoord is the widest value a packed coordinate field can carry.
	maxCoord = 1023

	// MaxPayload is the largest transfer the protocol can address: a full
	// panel of 16-bit pixels.
	MaxPayload = 320 * 480 * 2

	// orientationBase offsets the Orientation value on the wire.
	orientationBase = 100

	// orientationPayloadLen pads SetOrientation frames to the fixed
	// 16-byte frame the panel firmware expects.
	orientationPayloadLen = 10
)

// Command is one protocol operation before framing. Immutable once built,
// consumed exactly once by Encode.
type Command struct {
	ID      CommandID
	X       uint16
	Y       uint16
	EX      uint16
	EY      uint16
	Payload []byte
}

// Frame is one complete wire unit: the packed header followed by the
// payload bytes, written to the transport in a single call.
type Frame []byte

// Encode packs a Command into its rev A frame:
//
//	byte 0: x >> 2
//	byte 1: (x & 3) << 6 | y >> 4
//	byte 2: (y & 15) << 4 | ex >> 6
//	byte 3: (ex & 63) << 2 | ey >> 8
//	byte 4: ey & 255
//	byte 5: command id
//	byte 6..: payload
//
// Construction is atomic: on error no Frame is produced.
func Encode(cmd Command) (Frame, error) {
	for _, v := range [4]uint16{cmd.X, cmd.Y, cmd.EX, cmd.EY} {
		if v > maxCoord {
			return nil, errors.Wrapf(ErrRegionOutOfBounds, "coordinate %d exceeds packed field", v)
		}
	}

	if len(cmd.Payload) > MaxPayload {
		return nil, errors.Wrapf(ErrPayloadTooLarge, "%d bytes, protocol max %d", len(cmd.Payload), MaxPayload)
	}

	if cmd.ID == CmdDisplayBitmap {
		capacity := (int(cmd.EX-cmd.X) + 1) * (int(cmd.EY-cmd.Y) + 1) * 2
		if len(cmd.Payload) > capacity {
			return nil, errors.Wrapf(ErrPayloadTooLarge, "%d bytes for a %d byte region", len(cmd.Payload), capacity)
		}
	}

	f := make(Frame, HeaderLen+len(cmd.Payload))
	f[0] = byte(cmd.X >> 2)
	f[1] = byte((cmd.X&3)<<6 | cmd.Y>>4)
	f[2] = byte((cmd.Y&15)<<4 | cmd.EX>>6)
	f[3] = byte((cmd.EX&63)<<2 | cmd.EY>>8)
	f[4] = byte(cmd.EY & 255)
	f[5] = byte(cmd.ID)
	copy(f[HeaderLen:], cmd.Payload)
	return f, nil
}

// Decode unpacks a frame read back from the panel. Only the handshake
// response is ever read; everything else is fire and forget.
func Decode(bs []byte) (Command, error) {
	if len(bs) < HeaderLen {
		return Command{}, errors.Wrapf(ErrMalformedFrame, "%d bytes, frame header is %d", len(bs), HeaderLen)
	}

	return Command{
		X:       uint16(bs[0])<<2 | uint16(bs[1])>>6,
		Y:       uint16(bs[1]&0x3F)<<4 | uint16(bs[2])>>4,
		EX:      uint16(bs[2]&0x0F)<<6 | uint16(bs[3])>>2,
		EY:      uint16(bs[3]&0x03)<<8 | uint16(bs[4]),
		ID:      CommandID(bs[5]),
		Payload: append([]byte(nil), bs[HeaderLen:]...),
	}, nil
}

// HelloFrame is the handshake probe: the hello byte repeated across a
// whole frame. The panel answers with a frame carrying CmdHello back.
func HelloFrame() Frame {
	f := make(Frame, HeaderLen)
	for i := range f {
		f[i] = byte(CmdHello)
	}
	return f
}

// BrightnessCommand builds the SetBrightness command for a level already
// clamped to [0,100]. The panel scale is inverted: 0 is brightest.
func BrightnessCommand(level int) Command {
	wire := 255 - level*255/100
	return Command{ID: CmdSetBrightness, X: uint16(wire)}
}

// OrientationCommand builds the extended SetOrientation frame. The payload
// carries the wire orientation value plus the logical width and height the
// panel should address, big-endian, zero padded to the fixed length.
func OrientationCommand(o Orientation, width uint16, height uint16) Command {
	payload := make([]byte, orientationPayloadLen)
	payload[0] = byte(o) + orientationBase
	binary.BigEndian.PutUint16(payload[1:3], width)
	binary.BigEndian.PutUint16(payload[3:5], height)
	return Command{ID: CmdSetOrientation, Payload: payload}
}
