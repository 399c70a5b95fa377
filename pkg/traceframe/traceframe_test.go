package traceframe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataFrameRoundTripWithoutOffsets(t *testing.T) {
	f := &DataFrame{}
	encoded := f.Encode([]byte("hello, world"), nil)

	payload, offsets, err := f.Decode(encoded)
	require.NoError(t, err)
	require.Nil(t, offsets)
	require.Equal(t, "hello, world", string(payload))
}

func TestDataFrameRoundTripWithOffsets(t *testing.T) {
	f := &DataFrame{}
	offsets := []uint32{0, 5, 12}
	encoded := f.Encode([]byte("hello, world"), offsets)

	payload, got, err := f.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, offsets, got)
	require.Equal(t, "hello, world", string(payload))
}

func TestDataFrameDecodeRejectsCorruptedCRC(t *testing.T) {
	f := &DataFrame{}
	encoded := f.Encode([]byte("hello"), nil)
	encoded[len(encoded)-1] ^= 0xFF

	_, _, err := f.Decode(encoded)
	require.ErrorIs(t, err, ErrCRC)
}

func TestDataFrameDecodeRejectsBadMagic(t *testing.T) {
	f := &DataFrame{}
	encoded := f.Encode([]byte("hello"), nil)
	encoded[0] ^= 0xFF

	_, _, err := f.Decode(encoded)
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestErrorFrameRoundTrip(t *testing.T) {
	f := &ErrorFrame{}
	encoded := f.Encode(7, "bad type: q")

	code, message, err := f.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, byte(7), code)
	require.Equal(t, "bad type: q", message)
}

func TestErrorFrameDecodeRejectsWrongType(t *testing.T) {
	data := &DataFrame{}
	encoded := data.Encode([]byte("x"), nil)

	errFrame := &ErrorFrame{}
	_, _, err := errFrame.Decode(encoded)
	require.ErrorIs(t, err, ErrWrongType)
}

func TestHandshakeFrameRoundTrip(t *testing.T) {
	f := &HandshakeFrame{
		VersionMask: 0b11,
		MTU:         512,
		TimeoutMS:   250,
		AlgCodes:    []byte{TypeData, TypeError},
	}
	encoded := f.Encode()

	got := &HandshakeFrame{}
	require.NoError(t, got.Decode(encoded))
	require.Equal(t, f.VersionMask, got.VersionMask)
	require.Equal(t, f.MTU, got.MTU)
	require.Equal(t, f.TimeoutMS, got.TimeoutMS)
	require.Equal(t, f.AlgCodes, got.AlgCodes)
}
