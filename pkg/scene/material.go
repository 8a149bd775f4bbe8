package scene

import "github.com/aharden/lumen/pkg/core"

// BSDF identifies which scattering model a Material uses.
type BSDF int

const (
	// Diffuse scatters incoming light uniformly over the hemisphere
	// above the surface (a Lambertian reflector).
	Diffuse BSDF = iota
	// Specular reflects incoming light in a single mirror direction.
	Specular
)

// Material is a plain, non-polymorphic description of how a primitive's
// surface scatters and emits light. A primitive is a light source iff
// Emittance is not black (NewScene derives LightIndices this way).
type Material struct {
	BSDF        BSDF
	Reflectance core.Spectrum
	Emittance   core.Spectrum
}

// NewDiffuse builds a non-emissive Lambertian material.
func NewDiffuse(reflectance core.Spectrum) Material {
	return Material{BSDF: Diffuse, Reflectance: reflectance}
}

// NewSpecular builds a non-emissive mirror material.
func NewSpecular(reflectance core.Spectrum) Material {
	return Material{BSDF: Specular, Reflectance: reflectance}
}

// NewLight builds a non-reflective emissive material.
func NewLight(emittance core.Spectrum) Material {
	return Material{Emittance: emittance}
}

// IsLight reports whether the material emits light.
func (m Material) IsLight() bool {
	return !m.Emittance.IsBlack()
}

// BSDFEval returns bsdf(wi, wo): the fraction of radiance from wi
// reflected toward wo, excluding the cosine and pdf terms the caller
// applies separately. wo is unused by both models today (Diffuse is
// view-independent; Specular's contribution is delivered entirely
// through SampleBSDF) but is accepted for symmetry with the sampling
// API and in case a future non-symmetric BSDF needs it.
func (m Material) BSDFEval(wi, wo core.Vec3) core.Spectrum {
	switch m.BSDF {
	case Diffuse:
		return m.Reflectance.Scale(1 / piConst)
	default: // Specular
		return core.Black
	}
}

const piConst = 3.14159265358979323846

// BSDFSample is the result of importance-sampling a material's BSDF at
// a surface point with shading normal n, given the incoming ray
// direction wo (pointing into the surface, per the `wo` convention
// recorded in SPEC_FULL.md's open-questions resolution).
type BSDFSample struct {
	Wi        core.Vec3
	PDF       float64
	Reflected core.Spectrum
}

// SampleBSDF draws a scattered direction wi from the material's BSDF.
// The returned PDF follows the source's reciprocal-pdf convention: it
// is the value the integrator multiplies by, not divides by.
func (m Material) SampleBSDF(wo, n core.Vec3, xi core.Vec2) BSDFSample {
	switch m.BSDF {
	case Specular:
		wi := wo.Subtract(n.Multiply(2 * wo.Dot(n)))
		cosTheta := wi.AbsDot(n)
		if cosTheta < 1e-9 {
			cosTheta = 1e-9
		}
		return BSDFSample{
			Wi:        wi,
			PDF:       1,
			Reflected: m.Reflectance.Scale(1 / cosTheta),
		}
	default: // Diffuse
		local := core.UniformHemisphereSample(xi)
		onb := core.NewONB(n)
		wi := onb.Transform(local)
		return BSDFSample{
			Wi:        wi,
			PDF:       2 * piConst,
			Reflected: m.BSDFEval(wi, wo),
		}
	}
}
