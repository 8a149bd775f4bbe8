package scene

import (
	"fmt"

	"github.com/aharden/lumen/pkg/core"
)

// Scene owns the primitive set, its acceleration structure, and the
// derived index of light-emitting primitives. It is swapped atomically
// by the controller between renders and borrowed read-only during one.
type Scene struct {
	BVH          *BVH
	LightIndices []int
}

// NewScene builds and preprocesses a Scene from a flat primitive list.
// Triangle primitives with non-black emittance are rejected: this
// renderer only implements light sampling for spheres (see
// SPEC_FULL.md's triangle-area-light open question), so a scene that
// would need it fails at construction rather than at render time.
//
// A scene with no light primitives at all is legal: it is how an
// all-black-emittance scene is constructed for testing the zero-bounce
// estimator (spec.md §8 property 7).
func NewScene(prims []Primitive) (*Scene, error) {
	for i, p := range prims {
		if p.Mat.IsLight() && p.Kind != KindSphere {
			return nil, fmt.Errorf("scene: emissive triangle primitives are not supported, use a sphere light")
		}
		if !p.AABB().IsValid() {
			return nil, fmt.Errorf("scene: primitive %d has degenerate bounds (NaN or inverted vertex data)", i)
		}
	}

	bvh := NewBVH(prims)

	var lightIndices []int
	for i, p := range bvh.Primitives() {
		if p.Mat.IsLight() {
			lightIndices = append(lightIndices, i)
		}
	}

	return &Scene{BVH: bvh, LightIndices: lightIndices}, nil
}

// Primitives returns the scene's (BVH-reordered) primitive storage.
func (s *Scene) Primitives() []Primitive {
	return s.BVH.Primitives()
}

// Lights returns the scene's light primitives.
func (s *Scene) Lights() []*Primitive {
	prims := s.Primitives()
	lights := make([]*Primitive, len(s.LightIndices))
	for i, idx := range s.LightIndices {
		lights[i] = &prims[idx]
	}
	return lights
}

// ClosestHit finds the nearest primitive intersection along ray.
func (s *Scene) ClosestHit(ray core.Ray, tMin, tMax float64) (RayIntersection, bool) {
	return s.BVH.ClosestHit(ray, tMin, tMax)
}

// Occluded reports whether any non-emissive primitive blocks ray within
// (tMin, tMax); used for the integrator's shadow-ray test.
func (s *Scene) Occluded(ray core.Ray, tMin, tMax float64) bool {
	return s.BVH.AnyHit(ray, tMin, tMax)
}
