package scene

import (
	"testing"

	"github.com/aharden/lumen/pkg/loaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDiffuseAndSpecularPresets(t *testing.T) {
	for _, p := range []Preset{PresetDiffuse, PresetSpecular, PresetTriangle} {
		s, err := Build(p, nil, "")
		require.NoError(t, err)
		assert.NotEmpty(t, s.Primitives())
		assert.NotEmpty(t, s.Lights())
	}
}

func TestParsePresetUnknownName(t *testing.T) {
	_, err := ParsePreset("not-a-scene")
	assert.Error(t, err)
}

type stubMesh struct {
	tris []loaders.Triangle
	err  error
}

func (s stubMesh) Load(path string) ([]loaders.Triangle, error) {
	return s.tris, s.err
}

func TestBuildMeshPresetPropagatesLoadError(t *testing.T) {
	_, err := Build(PresetDragon, stubMesh{err: assertErr}, "missing.obj")
	assert.Error(t, err)
}

var assertErr = assertErrType{}

type assertErrType struct{}

func (assertErrType) Error() string { return "boom" }
