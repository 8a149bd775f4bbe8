package scene

import (
	"testing"

	"github.com/aharden/lumen/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestMaterialIsLight(t *testing.T) {
	assert.False(t, NewDiffuse(core.NewSpectrum(1, 1, 1)).IsLight())
	assert.True(t, NewLight(core.NewSpectrum(1, 1, 1)).IsLight())
}

func TestDiffuseBSDFEvalIsReflectanceOverPi(t *testing.T) {
	mat := NewDiffuse(core.NewSpectrum(piConst, piConst, piConst))
	result := mat.BSDFEval(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	assert.InDelta(t, 1, result.R, 1e-9)
}

func TestSpecularBSDFEvalIsBlack(t *testing.T) {
	mat := NewSpecular(core.NewSpectrum(1, 1, 1))
	result := mat.BSDFEval(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	assert.True(t, result.IsBlack())
}
