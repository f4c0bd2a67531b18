package proto

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{"zero", Command{ID: CmdClear}},
		{"full panel", Command{ID: CmdDisplayBitmap, EX: 319, EY: 479}},
		{"offset region", Command{ID: CmdDisplayBitmap, X: 17, Y: 42, EX: 300, EY: 450}},
		{"max coords", Command{ID: CmdScreenOn, X: 1023, Y: 1023, EX: 1023, EY: 1023}},
		{"brightness", BrightnessCommand(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Encode(tt.cmd)
			require.NoError(t, err)
			require.Len(t, f, HeaderLen+len(tt.cmd.Payload))

			got, err := Decode(f)
			require.NoError(t, err)
			assert.Equal(t, tt.cmd.ID, got.ID)
			assert.Equal(t, tt.cmd.X, got.X)
			assert.Equal(t, tt.cmd.Y, got.Y)
			assert.Equal(t, tt.cmd.EX, got.EX)
			assert.Equal(t, tt.cmd.EY, got.EY)
		})
	}
}

func TestEncodeRejectsWideCoordinates(t *testing.T) {
	_, err := Encode(Command{ID: CmdDisplayBitmap, EX: 1024})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRegionOutOfBounds))
}

func TestEncodeRejectsOversizedPayload(t *testing.T) {
	t.Run("beyond protocol max", func(t *testing.T) {
		_, err := Encode(Command{ID: CmdDisplayBitmap, EX: 319, EY: 479, Payload: make([]byte, MaxPayload+1)})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPayloadTooLarge))
	})

	t.Run("beyond region capacity", func(t *testing.T) {
		// a 2x2 region holds 8 bytes of pixels
		_, err := Encode(Command{ID: CmdDisplayBitmap, EX: 1, EY: 1, Payload: make([]byte, 9)})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPayloadTooLarge))
	})
}

func TestDecodeRejectsShortFrame(t *testing.T) {
	_, err := Decode([]byte{0x45, 0x45})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedFrame))
}

func TestHelloFrame(t *testing.T) {
	f := HelloFrame()
	require.Len(t, f, HeaderLen)
	for _, b := range f {
		assert.Equal(t, byte(CmdHello), b)
	}

	cmd, err := Decode(f)
	require.NoError(t, err)
	assert.Equal(t, CmdHello, cmd.ID)
}

func TestBrightnessCommandInvertsScale(t *testing.T) {
	tests := []struct {
		level int
		wire  uint16
	}{
		{0, 255},
		{50, 128},
		{100, 0},
	}

	for _, tt := range tests {
		cmd := BrightnessCommand(tt.level)
		assert.Equal(t, CmdSetBrightness, cmd.ID)
		assert.Equal(t, tt.wire, cmd.X, "level %d", tt.level)
	}
}

func TestOrientationCommandLayout(t *testing.T) {
	cmd := OrientationCommand(Landscape, 480, 320)
	require.Len(t, cmd.Payload, orientationPayloadLen)
	assert.Equal(t, byte(Landscape)+orientationBase, cmd.Payload[0])
	assert.Equal(t, []byte{0x01, 0xE0}, cmd.Payload[1:3])
	assert.Equal(t, []byte{0x01, 0x40}, cmd.Payload[3:5])

	f, err := Encode(cmd)
	require.NoError(t, err)
	// the firmware expects the padded fixed-size orientation frame
	assert.Len(t, f, 16)
}

func TestParseOrientation(t *testing.T) {
	assert.Equal(t, Portrait, ParseOrientation(false, false))
	assert.Equal(t, ReversePortrait, ParseOrientation(false, true))
	assert.Equal(t, Landscape, ParseOrientation(true, false))
	assert.Equal(t, ReverseLandscape, ParseOrientation(true, true))
	assert.True(t, ReverseLandscape.IsLandscape())
	assert.False(t, ReversePortrait.IsLandscape())
}
