package scene

import (
	"fmt"

	"github.com/aharden/lumen/pkg/core"
	"github.com/aharden/lumen/pkg/loaders"
)

// Preset names the fixed enumeration of scenes the CLI and viewer can
// select between.
type Preset int

const (
	PresetDiffuse Preset = iota
	PresetSpecular
	PresetDragon
	PresetTeapot
	PresetTriangle
)

// ParsePreset resolves a scene name from the CLI/config into a Preset.
func ParsePreset(name string) (Preset, error) {
	switch name {
	case "diffuse", "":
		return PresetDiffuse, nil
	case "specular":
		return PresetSpecular, nil
	case "dragon":
		return PresetDragon, nil
	case "teapot":
		return PresetTeapot, nil
	case "triangle":
		return PresetTriangle, nil
	default:
		return 0, fmt.Errorf("scene: unknown preset %q", name)
	}
}

// MeshSource loads a triangle mesh for the Dragon/Teapot presets. The
// concrete implementation lives in pkg/loaders, kept behind this
// interface so pkg/scene does not need to know about OBJ file syntax.
type MeshSource interface {
	Load(path string) ([]loaders.Triangle, error)
}

// Build constructs the Scene for a preset. meshPath is only consulted
// by Dragon/Teapot.
func Build(preset Preset, mesh MeshSource, meshPath string) (*Scene, error) {
	switch preset {
	case PresetDiffuse:
		return NewScene(append(cornellBoxPrimitives(), NewSphere(
			core.NewVec3(-8, -12, cornellZOffset-8), 8, NewDiffuse(core.NewSpectrum(0.8, 0.8, 0.3)))))
	case PresetSpecular:
		return NewScene(append(cornellBoxPrimitives(), NewSphere(
			core.NewVec3(-8, -12, cornellZOffset-8), 8, NewSpecular(core.NewSpectrum(0.9, 0.9, 0.9)))))
	case PresetDragon:
		return buildMeshScene(mesh, meshPath, 8)
	case PresetTeapot:
		return buildMeshScene(mesh, meshPath, 6)
	case PresetTriangle:
		return buildTriangleScene()
	default:
		return nil, fmt.Errorf("scene: unhandled preset %d", preset)
	}
}

func buildMeshScene(mesh MeshSource, meshPath string, scale float64) (*Scene, error) {
	tris, err := mesh.Load(meshPath)
	if err != nil {
		return nil, fmt.Errorf("scene: loading mesh %q: %w", meshPath, err)
	}

	meshMat := NewDiffuse(core.NewSpectrum(0.6, 0.6, 0.7))
	prims := cornellBoxPrimitives()
	offset := core.NewVec3(0, -cornellHalfLength, cornellZOffset-cornellHalfLength)
	for _, tri := range tris {
		p1 := tri.P1.Multiply(scale).Add(offset)
		p2 := tri.P2.Multiply(scale).Add(offset)
		p3 := tri.P3.Multiply(scale).Add(offset)
		prims = append(prims, NewTriangleSmooth(p1, p2, p3, tri.N1, tri.N2, tri.N3, meshMat))
	}
	return NewScene(prims)
}

func buildTriangleScene() (*Scene, error) {
	tri := NewTriangle(
		core.NewVec3(-10, -10, -40),
		core.NewVec3(10, -10, -40),
		core.NewVec3(0, 10, -40),
		NewDiffuse(core.NewSpectrum(0.8, 0.4, 0.2)),
	)
	light := NewSphere(core.NewVec3(0, 40, -20), 12, NewLight(core.NewSpectrum(20, 20, 20)))
	return NewScene([]Primitive{tri, light})
}
