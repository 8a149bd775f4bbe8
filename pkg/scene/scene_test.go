package scene

import (
	"math"
	"testing"

	"github.com/aharden/lumen/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSceneRejectsEmissiveTriangle(t *testing.T) {
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), NewLight(core.NewSpectrum(1, 1, 1)))
	_, err := NewScene([]Primitive{tri})
	assert.Error(t, err)
}

func TestNewSceneRejectsDegenerateBounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, math.NaN()), 1, NewDiffuse(core.NewSpectrum(1, 1, 1)))
	_, err := NewScene([]Primitive{sphere})
	assert.Error(t, err)
}

func TestNewSceneAllowsNoLights(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, NewDiffuse(core.NewSpectrum(1, 1, 1)))
	s, err := NewScene([]Primitive{sphere})
	require.NoError(t, err)
	assert.Empty(t, s.Lights())
}

func TestNewSceneComputesLightIndices(t *testing.T) {
	light := NewSphere(core.NewVec3(0, 0, -10), 2, NewLight(core.NewSpectrum(1, 1, 1)))
	diffuse := NewSphere(core.NewVec3(0, 0, 0), 1, NewDiffuse(core.NewSpectrum(1, 1, 1)))
	s, err := NewScene([]Primitive{diffuse, light})
	require.NoError(t, err)
	require.Len(t, s.Lights(), 1)
	assert.True(t, s.Lights()[0].Mat.IsLight())
}

func TestSceneOccludedTest(t *testing.T) {
	wall := NewSphere(core.NewVec3(0, 0, -5), 2, NewDiffuse(core.NewSpectrum(1, 1, 1)))
	light := NewSphere(core.NewVec3(0, 0, -20), 2, NewLight(core.NewSpectrum(1, 1, 1)))
	s, err := NewScene([]Primitive{wall, light})
	require.NoError(t, err)

	ray := core.NewRayPrenormalized(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	assert.True(t, s.Occluded(ray, 1e-4, 30))
}
