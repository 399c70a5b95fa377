package fmtlib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteAlignedLeft(t *testing.T) {
	dst := make([]byte, 8)
	buf := NewBuffer(dst)
	writeAligned(&buf, []byte("42"), 4, ' ', AlignLeft)
	require.Equal(t, "42  ", string(dst[:4]))
}

func TestWriteAlignedRight(t *testing.T) {
	dst := make([]byte, 8)
	buf := NewBuffer(dst)
	writeAligned(&buf, []byte("42"), 4, ' ', AlignRight)
	require.Equal(t, "  42", string(dst[:4]))
}

func TestWriteAlignedCenterOddPadSkewsRight(t *testing.T) {
	dst := make([]byte, 8)
	buf := NewBuffer(dst)
	writeAligned(&buf, []byte("42"), 5, ' ', AlignCenter)
	require.Equal(t, " 42  ", string(dst[:5]))
}

func TestWriteAlignedNoPaddingWhenAtOrOverWidth(t *testing.T) {
	dst := make([]byte, 8)
	buf := NewBuffer(dst)
	writeAligned(&buf, []byte("12345"), 3, ' ', AlignRight)
	require.Equal(t, "12345", string(dst[:5]))
}

func TestResolveAlignDefaults(t *testing.T) {
	require.Equal(t, AlignRight, resolveAlign(alignDefault, true))
	require.Equal(t, AlignLeft, resolveAlign(alignDefault, false))
	require.Equal(t, AlignCenter, resolveAlign(AlignCenter, true))
}
