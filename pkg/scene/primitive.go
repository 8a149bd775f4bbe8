package scene

import (
	"fmt"
	"math"

	"github.com/aharden/lumen/pkg/core"
)

// PrimitiveKind tags which variant a Primitive holds.
type PrimitiveKind int

const (
	// KindSphere identifies the Sphere fields of a Primitive.
	KindSphere PrimitiveKind = iota
	// KindTriangle identifies the Triangle fields of a Primitive.
	KindTriangle
)

// Primitive is a tagged union of the two shapes this renderer supports.
// A single homogeneous slice of Primitive backs the BVH (pkg/scene's
// bvh.go), avoiding the vtable indirection and lifetime entanglement of
// an interface-based shape hierarchy (see SPEC_FULL.md design note
// under "Polymorphism over primitives").
type Primitive struct {
	Kind PrimitiveKind

	// Sphere fields.
	Center core.Vec3
	Radius float64

	// Triangle fields.
	P1, P2, P3    core.Vec3
	N1, N2, N3    core.Vec3 // per-vertex normals; default to the face normal
	faceNormal    core.Vec3
	faceNormalSet bool

	Mat Material
}

// NewSphere builds a sphere primitive. Radius must be > 0.
func NewSphere(center core.Vec3, radius float64, mat Material) Primitive {
	if radius <= 0 {
		panic(fmt.Sprintf("scene: sphere radius must be positive, got %g", radius))
	}
	return Primitive{Kind: KindSphere, Center: center, Radius: radius, Mat: mat}
}

// NewTriangle builds a triangle primitive with flat-shaded normals
// (all three vertex normals equal the face normal).
func NewTriangle(p1, p2, p3 core.Vec3, mat Material) Primitive {
	n := faceNormalOf(p1, p2, p3)
	return Primitive{Kind: KindTriangle, P1: p1, P2: p2, P3: p3, N1: n, N2: n, N3: n, Mat: mat}
}

// NewTriangleSmooth builds a triangle primitive with explicit
// per-vertex normals, used by the mesh loader for smooth shading.
func NewTriangleSmooth(p1, p2, p3, n1, n2, n3 core.Vec3, mat Material) Primitive {
	return Primitive{Kind: KindTriangle, P1: p1, P2: p2, P3: p3, N1: n1, N2: n2, N3: n3, Mat: mat}
}

func faceNormalOf(p1, p2, p3 core.Vec3) core.Vec3 {
	return p2.Subtract(p1).Cross(p3.Subtract(p1)).Normalize()
}

// Material returns the primitive's material.
func (p Primitive) Material() Material { return p.Mat }

// aabbEpsilon pads a triangle's bounding box by a small margin on every
// axis. Cornell-box walls are axis-aligned triangles with zero extent
// along their normal; an unpadded AABB collapses to a plane on that
// axis, and the BVH slab test's epsilon comparisons against it become
// unreliable right at the surface the triangle actually occupies.
const aabbEpsilon = 1e-4

// AABB returns the primitive's axis-aligned bounding box.
func (p Primitive) AABB() core.AABB {
	switch p.Kind {
	case KindSphere:
		r := core.NewVec3(p.Radius, p.Radius, p.Radius)
		return core.NewAABB(p.Center.Subtract(r), p.Center.Add(r))
	default: // KindTriangle
		return core.NewAABBFromPoints(p.P1, p.P2, p.P3).Expand(aabbEpsilon)
	}
}

// RayIntersection is the result of a successful closest-hit query
// against the scene.
type RayIntersection struct {
	Distance  float64
	Primitive *Primitive
	Ray       core.Ray
}

// Point returns the intersection point, biased by -epsilon along the
// ray direction to avoid immediate self-intersection on the next
// bounce (the source's convention; see SPEC_FULL.md's
// self-intersection bias note).
func (h RayIntersection) Point() core.Vec3 {
	const eps = 1e-4
	return h.Ray.At(h.Distance - eps)
}

// Normal returns the shading normal at the intersection point.
func (h RayIntersection) Normal() core.Vec3 {
	return h.Primitive.SurfaceNormal(h.Point())
}

// Intersect tests the primitive against a ray restricted to t in
// (tMin, tMax), returning the nearer of any valid roots.
func (p *Primitive) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	switch p.Kind {
	case KindSphere:
		return p.intersectSphere(ray, tMin, tMax)
	default:
		return p.intersectTriangle(ray, tMin, tMax)
	}
}

func (p *Primitive) intersectSphere(ray core.Ray, tMin, tMax float64) (float64, bool) {
	l := p.Center.Subtract(ray.Origin)
	adj := l.Dot(ray.Direction)
	d2 := l.Dot(l) - adj*adj
	r2 := p.Radius * p.Radius
	if d2 > r2 {
		return 0, false
	}
	thc := math.Sqrt(r2 - d2)
	t0 := adj - thc
	t1 := adj + thc
	if t0 < tMax && t0 > tMin {
		return t0, true
	}
	if t1 < tMax && t1 > tMin {
		return t1, true
	}
	return 0, false
}

func (p *Primitive) intersectTriangle(ray core.Ray, tMin, tMax float64) (float64, bool) {
	const epsilon = 1e-8
	e1 := p.P2.Subtract(p.P1)
	e2 := p.P3.Subtract(p.P1)
	s1 := ray.Direction.Cross(e2)
	div := e1.Dot(s1)
	if div > -epsilon && div < epsilon {
		return 0, false
	}
	inv := 1.0 / div
	s := ray.Origin.Subtract(p.P1)
	b1 := s.Dot(s1) * inv
	if b1 < 0 || b1 > 1+epsilon {
		return 0, false
	}
	s2 := s.Cross(e1)
	b2 := ray.Direction.Dot(s2) * inv
	if b2 < 0 || b1+b2 > 1+epsilon {
		return 0, false
	}
	t := e2.Dot(s2) * inv
	if t <= tMin || t >= tMax {
		return 0, false
	}
	return t, true
}

// SurfaceNormal returns the (outward-facing, unit) shading normal at a
// point on the primitive's surface.
func (p *Primitive) SurfaceNormal(point core.Vec3) core.Vec3 {
	switch p.Kind {
	case KindSphere:
		return point.Subtract(p.Center).Normalize()
	default:
		b1, b2 := p.barycentricOf(point)
		b0 := 1 - b1 - b2
		n := p.N1.Multiply(b0).Add(p.N2.Multiply(b1)).Add(p.N3.Multiply(b2))
		return n.Normalize()
	}
}

// barycentricOf re-derives (b1, b2) for a point already known to lie on
// the triangle's plane, via Cramer's rule, so SurfaceNormal can
// interpolate per-vertex normals without the caller threading
// barycentrics through from Intersect.
func (p *Primitive) barycentricOf(point core.Vec3) (b1, b2 float64) {
	e1 := p.P2.Subtract(p.P1)
	e2 := p.P3.Subtract(p.P1)
	vp := point.Subtract(p.P1)

	d00 := e1.Dot(e1)
	d01 := e1.Dot(e2)
	d11 := e2.Dot(e2)
	d20 := vp.Dot(e1)
	d21 := vp.Dot(e2)

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < 1e-20 {
		return 0, 0
	}
	b1 = (d11*d20 - d01*d21) / denom
	b2 = (d00*d21 - d01*d20) / denom
	return b1, b2
}

// SampleLight draws a direction from point toward a sample on this
// primitive, for direct-lighting shadow rays. Only spheres support
// light sampling (see SPEC_FULL.md's triangle-area-light open
// question); calling this on a non-sphere emitter is a construction
// bug caught earlier by NewScene, not a render-time concern.
func (p *Primitive) SampleLight(point core.Vec3, xi core.Vec2) LightSample {
	if p.Kind != KindSphere {
		panic("scene: SampleLight called on a non-sphere primitive")
	}

	toCenter := p.Center.Subtract(point)
	distToCenter := toCenter.Length()

	sample := p.Center.Add(core.UniformSphereSample(xi).Multiply(p.Radius))
	direction := sample.Subtract(point)
	dist := direction.Length()
	wi := direction.Normalize()

	dC := distToCenter
	r := p.Radius
	cosAlpha := (dC*dC + r*r - dist*dist) / (2 * dC * r)
	cosAlpha = math.Max(-1, math.Min(1, cosAlpha))
	pdf := 2 * piConst * (1 - cosAlpha)

	return LightSample{Wi: wi, PDF: pdf, Distance: dist}
}

// LightSample is the result of sampling a light primitive from a
// shading point.
type LightSample struct {
	Wi       core.Vec3
	PDF      float64
	Distance float64
}
