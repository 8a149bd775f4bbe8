package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpectrumArithmetic(t *testing.T) {
	a := NewSpectrum(0.1, 0.2, 0.3)
	b := NewSpectrum(0.4, 0.5, 0.6)

	sum := a.Add(b)
	assert.InDelta(t, 0.5, sum.R, 1e-9)
	assert.InDelta(t, 0.7, sum.G, 1e-9)
	assert.InDelta(t, 0.9, sum.B, 1e-9)
	assert.Equal(t, NewSpectrum(0.2, 0.4, 0.6), a.Scale(2))
	assert.InDelta(t, 0.04, a.Mul(b).R, 1e-9)
}

func TestSpectrumIsBlack(t *testing.T) {
	assert.True(t, Black.IsBlack())
	assert.True(t, NewSpectrum(0, 0, 0).IsBlack())
	assert.False(t, NewSpectrum(0.001, 0, 0).IsBlack())
}

func TestSpectrumBytesSaturates(t *testing.T) {
	r, g, b := NewSpectrum(0, 1, 100).Bytes()
	assert.Equal(t, uint8(0), r)
	assert.Equal(t, uint8(255), g)
	assert.Equal(t, uint8(255), b)
}

func TestSpectrumBytesGammaMidpoint(t *testing.T) {
	// A mid-grey linear value should brighten noticeably under gamma 1/2.2:
	// 0.214^(1/2.2) = 0.496, which encodes to 127 (linearly it would be 55).
	r, _, _ := NewSpectrum(0.214, 0, 0).Bytes()
	assert.Equal(t, uint8(127), r)
}
