package fmtlib

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestParseSpecifierImplicitIndex(t *testing.T) {
	implicit, count := 0, 0
	n, ps := parseSpecifier([]byte("{:d}"), 0, 16, &implicit, &count)
	require.Equal(t, 4, n)
	require.True(t, ps.valid)
	require.Equal(t, 0, ps.valueIndex)
	require.Equal(t, 1, implicit)
	require.Equal(t, 1, count)
}

func TestParseSpecifierExplicitIndex(t *testing.T) {
	implicit, count := 0, 0
	n, ps := parseSpecifier([]byte("{1:d}"), 0, 16, &implicit, &count)
	require.Equal(t, 5, n)
	require.True(t, ps.valid)
	require.Equal(t, 1, ps.valueIndex)
	require.Equal(t, 0, implicit)
	require.Equal(t, 2, count)
}

func TestParseSpecifierFillAndAlign(t *testing.T) {
	implicit, count := 0, 0
	_, ps := parseSpecifier([]byte("{:$=^17s}"), 0, 16, &implicit, &count)
	require.True(t, ps.valid)
	require.Equal(t, AlignCenter, ps.align)
	require.Equal(t, byte('='), ps.fillChar)
	require.Equal(t, "s", ps.typeTag)
}

func TestParseSpecifierBareStarWidthAdvancesImplicit(t *testing.T) {
	implicit, count := 0, 0
	_, ps := parseSpecifier([]byte("{:$.>*b}"), 0, 16, &implicit, &count)
	require.True(t, ps.valid)
	require.True(t, ps.width.isIndex)
	require.Equal(t, 1, ps.width.index)
	require.Equal(t, 2, implicit)
	require.Equal(t, 2, count)
}

func TestParseSpecifierExplicitStarIndexDoesNotAdvanceImplicit(t *testing.T) {
	implicit, count := 0, 0
	_, ps := parseSpecifier([]byte("{1:$.<*0b}"), 0, 16, &implicit, &count)
	require.True(t, ps.valid)
	require.True(t, ps.width.isIndex)
	require.Equal(t, 0, ps.width.index)
	require.Equal(t, 0, implicit)
}

func TestParseSpecifierBarePrecisionStarAdvancesImplicit(t *testing.T) {
	implicit, count := 0, 0
	_, ps := parseSpecifier([]byte("{:.*f}"), 0, 16, &implicit, &count)
	require.True(t, ps.valid)
	require.True(t, ps.precision.isIndex)
	require.True(t, ps.precision.set)
	require.Equal(t, 1, ps.precision.index)
	require.Equal(t, 2, implicit)
}

func TestParseSpecifierIndexExceedingMaxArgsIsInvalid(t *testing.T) {
	implicit, count := 0, 0
	_, ps := parseSpecifier([]byte("{99:d}"), 0, 1, &implicit, &count)
	require.False(t, ps.valid)
}

func TestParseSpecifierUnterminatedAtEndOfTemplateIsInvalid(t *testing.T) {
	implicit, count := 0, 0
	n, ps := parseSpecifier([]byte("{:d"), 0, 16, &implicit, &count)
	require.False(t, ps.valid)
	require.Equal(t, 3, n)
}

func TestParseSpecifierStructuralErrorResyncsAtNextBrace(t *testing.T) {
	implicit, count := 0, 0
	n, ps := parseSpecifier([]byte("{@:d} rest"), 0, 16, &implicit, &count)
	require.False(t, ps.valid)
	require.Equal(t, len("{@:d}"), n)
}

func TestParseSpecifierIdempotent(t *testing.T) {
	s := []byte("{1:$.<*0b}")
	condition := func() bool {
		implicitA, countA := 0, 0
		_, psA := parseSpecifier(s, 0, 16, &implicitA, &countA)
		implicitB, countB := 0, 0
		_, psB := parseSpecifier(s, 0, 16, &implicitB, &countB)
		return psA == psB
	}
	require.True(t, condition())
	require.NoError(t, quick.Check(func() bool { return condition() }, nil))
}
