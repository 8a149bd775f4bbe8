package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, -3, -3), a.Subtract(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.Multiply(2))
	assert.InDelta(t, 32, a.Dot(b), 1e-9)
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4)
	n := v.Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-9)

	zero := Vec3{}
	normalized := zero.Normalize()
	assert.True(t, math.IsNaN(normalized.X))
}

func TestVec3Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	assert.Equal(t, NewVec3(0, 0, 1), x.Cross(y))
}

func TestRayAt(t *testing.T) {
	r := NewRayPrenormalized(NewVec3(0, 0, 0), NewVec3(1, 0, 0))
	assert.Equal(t, NewVec3(2, 0, 0), r.At(2))
}

func TestNewRayNormalizes(t *testing.T) {
	r := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 5))
	assert.InDelta(t, 1.0, r.Direction.Length(), 1e-9)
}
