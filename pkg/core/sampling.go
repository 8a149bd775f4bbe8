package core

import (
	"math"
	"math/rand"
)

// Sampler supplies the uniform random numbers consumed by BSDF, light,
// and Russian-roulette sampling. Each worker goroutine owns its own
// Sampler so no synchronization is needed on the hot path.
type Sampler interface {
	Float64() float64
	Vec2() Vec2
}

// RandSampler is a Sampler backed by math/rand. The scheduler builds one
// per image row from a seed derived from the render seed, so renders
// are reproducible given a fixed seed.
type RandSampler struct {
	rng *rand.Rand
}

// NewRandSampler builds a RandSampler from a seed.
func NewRandSampler(seed int64) *RandSampler {
	return &RandSampler{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform random number in [0,1).
func (s *RandSampler) Float64() float64 { return s.rng.Float64() }

// Vec2 returns a pair of independent uniform random numbers in [0,1).
func (s *RandSampler) Vec2() Vec2 { return Vec2{s.rng.Float64(), s.rng.Float64()} }

// UniformHemisphereSample maps (xi1, xi2) in [0,1)^2 to a direction in
// the local +z hemisphere, uniform with respect to solid angle. Density
// is 1/(2*pi); SampleBSDF stores the reciprocal of this value (see
// SPEC_FULL.md's BSDF/pdf convention note).
func UniformHemisphereSample(xi Vec2) Vec3 {
	cosTheta := xi.X
	sinTheta := math.Sqrt(math.Max(0, 1-xi.X*xi.X))
	phi := 2 * math.Pi * xi.Y
	return Vec3{sinTheta * math.Cos(phi), sinTheta * math.Sin(phi), cosTheta}
}

// UniformSphereSample maps (xi1, xi2) to a direction uniform on the
// full unit sphere.
func UniformSphereSample(xi Vec2) Vec3 {
	theta := 2 * math.Pi * xi.X
	phi := math.Acos(1 - 2*xi.Y)
	sinPhi := math.Sin(phi)
	return Vec3{sinPhi * math.Cos(theta), sinPhi * math.Sin(theta), math.Cos(phi)}
}

// ONB is an orthonormal basis built around a surface normal, used to
// rotate a locally sampled direction (computed in the frame where the
// normal is +z) into world space.
type ONB struct {
	Tangent, Bitangent, Normal Vec3
}

// NewONB builds an orthonormal basis with Normal = n (must be unit
// length). Uses Frisvad's construction, with the degenerate
// near-south-pole case handled by an explicit branch.
func NewONB(n Vec3) ONB {
	if n.Z < -0.999999 {
		return ONB{
			Tangent:   Vec3{0, -1, 0},
			Bitangent: Vec3{-1, 0, 0},
			Normal:    n,
		}
	}
	a := 1.0 / (1.0 + n.Z)
	b := -n.X * n.Y * a
	return ONB{
		Tangent:   Vec3{1 - n.X*n.X*a, b, -n.X},
		Bitangent: Vec3{b, 1 - n.Y*n.Y*a, -n.Y},
		Normal:    n,
	}
}

// Transform maps a direction expressed in the local frame (x,y,z with z
// along Normal) into world space.
func (o ONB) Transform(local Vec3) Vec3 {
	return o.Tangent.Multiply(local.X).
		Add(o.Bitangent.Multiply(local.Y)).
		Add(o.Normal.Multiply(local.Z))
}
