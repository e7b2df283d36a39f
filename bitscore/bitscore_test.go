package bitscore_test

import (
	"testing"

	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/stretchr/testify/assert"
)

func TestAddAbsorbsNegInf(t *testing.T) {
	sum := bitscore.Finite(1.5).Add(bitscore.NegInf)
	assert.True(t, sum.IsNegInf())
}

func TestAddFinite(t *testing.T) {
	sum := bitscore.Finite(1.5).Add(bitscore.Finite(2.25))
	assert.False(t, sum.IsNegInf())
	assert.Equal(t, "3.750", sum.String())
}

func TestLessOrdersNegInfBelowFinite(t *testing.T) {
	assert.True(t, bitscore.NegInf.Less(bitscore.Finite(-1000)))
	assert.False(t, bitscore.Finite(-1000).Less(bitscore.NegInf))
	assert.False(t, bitscore.NegInf.Less(bitscore.NegInf))
}

func TestMinMax(t *testing.T) {
	a := bitscore.Finite(3)
	b := bitscore.Finite(-2)
	assert.Equal(t, b, bitscore.Min(a, b))
	assert.Equal(t, a, bitscore.Max(a, b))
	assert.Equal(t, bitscore.NegInf, bitscore.Min(a, bitscore.NegInf))
}

func TestFromLocalEntry(t *testing.T) {
	assert.True(t, bitscore.FromLocalEntry(0, false).IsNegInf())
	present := bitscore.FromLocalEntry(-4.2, true)
	assert.False(t, present.IsNegInf())
	assert.Equal(t, "-4.200", present.String())
}

func TestStringFormatsToThreeDecimals(t *testing.T) {
	assert.Equal(t, "-inf", bitscore.NegInf.String())
	assert.Equal(t, "0.000", bitscore.Finite(0).String())
}
