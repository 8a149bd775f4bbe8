package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempOBJ(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadTriangle(t *testing.T) {
	path := writeTempOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	tris, err := OBJLoader{}.Load(path)
	require.NoError(t, err)
	require.Len(t, tris, 1)
	assert.Equal(t, float64(0), tris[0].P1.X)
	assert.Equal(t, float64(1), tris[0].P2.X)
}

func TestLoadQuadTriangulatesAsFan(t *testing.T) {
	path := writeTempOBJ(t, `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)
	tris, err := OBJLoader{}.Load(path)
	require.NoError(t, err)
	assert.Len(t, tris, 2)
}

func TestLoadWithVertexNormals(t *testing.T) {
	path := writeTempOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vn 0 0 1
vn 0 0 1
f 1//1 2//2 3//3
`)
	tris, err := OBJLoader{}.Load(path)
	require.NoError(t, err)
	require.Len(t, tris, 1)
	assert.Equal(t, float64(1), tris[0].N1.Z)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := OBJLoader{}.Load("/nonexistent/mesh.obj")
	assert.Error(t, err)
}

func TestLoadNoFaces(t *testing.T) {
	path := writeTempOBJ(t, "v 0 0 0\n")
	_, err := OBJLoader{}.Load(path)
	assert.Error(t, err)
}
