// Package integrator implements the Monte Carlo estimators that turn a
// camera ray into a radiance estimate.
package integrator

import (
	"github.com/aharden/lumen/pkg/core"
	"github.com/aharden/lumen/pkg/scene"
)

// Config bundles the per-render sampling parameters the integrator
// needs: how many shadow-ray samples to take per light, and how many
// bounces a path may take before forced termination.
type Config struct {
	LightSamples int
	MaxBounces   int
}

// russianRouletteAbsorb is the fixed probability, per bounce, that a
// path is terminated rather than continued. The source does not divide
// the surviving estimate by (1-russianRouletteAbsorb); see
// SPEC_FULL.md's Russian-roulette design note for why that bias is kept
// rather than corrected.
const russianRouletteAbsorb = 0.3

// PathTracer implements the full-quality integrator (direct lighting
// via light-importance sampling plus Russian-roulette-terminated
// indirect bounces).
type PathTracer struct {
	Config Config
}

// NewPathTracer builds a PathTracer with the given sampling parameters.
func NewPathTracer(cfg Config) *PathTracer {
	return &PathTracer{Config: cfg}
}

// CastRay estimates the radiance arriving back along ray, recursing up
// to bouncesLeft additional times.
func (pt *PathTracer) CastRay(ray core.Ray, sc *scene.Scene, sampler core.Sampler, bouncesLeft int) core.Spectrum {
	hit, ok := sc.ClosestHit(ray, 1e-4, 1e30)
	if !ok {
		return core.Black
	}

	if bouncesLeft == 0 {
		return hit.Primitive.Material().Emittance
	}

	if bouncesLeft == 1 {
		return pt.directLighting(hit, sc, sampler)
	}

	return pt.globalIllumination(hit, sc, sampler, bouncesLeft)
}

// directLighting estimates the one-bounce radiance at an intersection
// by importance-sampling every light in the scene with shadow rays
// (except the hit primitive itself, when it is a light), then adding
// the hit primitive's own emittance (so a ray that lands directly on a
// light sees it).
func (pt *PathTracer) directLighting(hit scene.RayIntersection, sc *scene.Scene, sampler core.Sampler) core.Spectrum {
	point := hit.Point()
	n := hit.Normal()
	wo := hit.Ray.Direction
	mat := hit.Primitive.Material()

	l := core.Black
	samples := pt.Config.LightSamples
	if samples < 1 {
		samples = 1
	}

	for _, light := range sc.Lights() {
		if light == hit.Primitive {
			continue
		}
		c := core.Black
		for i := 0; i < samples; i++ {
			ls := light.SampleLight(point, sampler.Vec2())
			if ls.PDF <= 0 {
				continue
			}
			shadowRay := core.NewRayPrenormalized(point, ls.Wi)
			if sc.Occluded(shadowRay, 1e-4, ls.Distance-1e-3) {
				continue
			}
			cosTheta := ls.Wi.AbsDot(n)
			bsdf := mat.BSDFEval(ls.Wi, wo)
			contribution := light.Material().Emittance.Mul(bsdf).Scale(cosTheta * ls.PDF)
			c = c.Add(contribution)
		}
		l = l.Add(c.Scale(1.0 / float64(samples)))
	}

	return l.Add(mat.Emittance)
}

// globalIllumination adds a Russian-roulette-terminated indirect
// bounce on top of the direct-lighting estimate.
func (pt *PathTracer) globalIllumination(hit scene.RayIntersection, sc *scene.Scene, sampler core.Sampler, bouncesLeft int) core.Spectrum {
	l := pt.directLighting(hit, sc, sampler)

	if sampler.Float64() < russianRouletteAbsorb {
		return l
	}

	point := hit.Point()
	n := hit.Normal()
	wo := hit.Ray.Direction
	mat := hit.Primitive.Material()

	bs := mat.SampleBSDF(wo, n, sampler.Vec2())
	nextRay := core.NewRayPrenormalized(point, bs.Wi)
	incoming := pt.CastRay(nextRay, sc, sampler, bouncesLeft-1)
	if incoming.IsBlack() {
		return l
	}

	cosTheta := bs.Wi.AbsDot(n)
	return l.Add(incoming.Mul(bs.Reflected).Scale(cosTheta * bs.PDF))
}

// DebugRay implements the cheap distance-shaded pass used for
// responsive feedback while the camera is moving.
func DebugRay(ray core.Ray, sc *scene.Scene) core.Spectrum {
	hit, ok := sc.ClosestHit(ray, 1e-4, 1e30)
	if !ok {
		return core.Black
	}
	t := hit.Distance
	if t > 100 {
		t = 100
	}
	shade := 0.7 * (1 - t/100)
	return core.NewSpectrum(shade, shade, shade)
}
