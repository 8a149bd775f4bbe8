package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformHemisphereSampleStaysInHemisphere(t *testing.T) {
	for i := 0; i < 64; i++ {
		xi := Vec2{float64(i) / 64, 0.37}
		v := UniformHemisphereSample(xi)
		assert.InDelta(t, 1.0, v.Length(), 1e-9)
		assert.GreaterOrEqual(t, v.Z, 0.0)
	}
}

func TestUniformSphereSampleIsUnitLength(t *testing.T) {
	for i := 0; i < 64; i++ {
		xi := Vec2{float64(i) / 64, 0.81}
		v := UniformSphereSample(xi)
		assert.InDelta(t, 1.0, v.Length(), 1e-9)
	}
}

func TestONBIsOrthonormal(t *testing.T) {
	normals := []Vec3{
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, -1},
		NewVec3(1, 1, 1).Normalize(),
	}
	for _, n := range normals {
		onb := NewONB(n)
		assert.InDelta(t, 1.0, onb.Tangent.Length(), 1e-5)
		assert.InDelta(t, 1.0, onb.Bitangent.Length(), 1e-5)
		assert.InDelta(t, 0.0, onb.Tangent.Dot(onb.Bitangent), 1e-5)
		assert.InDelta(t, 0.0, onb.Tangent.Dot(onb.Normal), 1e-5)
		assert.InDelta(t, 0.0, onb.Bitangent.Dot(onb.Normal), 1e-5)
	}
}

func TestONBTransformRotatesHemisphereAroundNormal(t *testing.T) {
	n := NewVec3(0, 1, 0)
	onb := NewONB(n)
	local := UniformHemisphereSample(Vec2{0.6, 0.2})
	world := onb.Transform(local)

	assert.InDelta(t, 1.0, world.Length(), 1e-5)
	assert.GreaterOrEqual(t, world.Dot(n), -1e-9)
	assert.False(t, math.IsNaN(world.X))
}

func TestRandSamplerProducesUnitInterval(t *testing.T) {
	s := NewRandSampler(1)
	for i := 0; i < 1000; i++ {
		f := s.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}
