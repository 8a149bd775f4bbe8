// Package render holds the pixel buffer, camera, and scheduler that sit
// between the integrator and the outside world.
package render

import "math"

// Camera is a pinhole camera with a translation-only pose: fov-based
// screen mapping, no rotation, matching the source renderer's fixed
// forward direction (-z).
type Camera struct {
	Width, Height int
	FOVRadians    float64
	Position      Vec3

	invW, invH, start, total, aspect float64
}

// Vec3 mirrors core.Vec3's shape so pkg/render does not need to import
// pkg/core just to move a camera around; render/scheduler.go converts
// to core.Vec3 at the one place a Ray is built.
type Vec3 struct{ X, Y, Z float64 }

// NewCamera builds a camera and precomputes its screen-mapping
// constants.
func NewCamera(width, height int, fovRadians float64, position Vec3) *Camera {
	c := &Camera{Width: width, Height: height, FOVRadians: fovRadians, Position: position}
	c.recompute()
	return c
}

func (c *Camera) recompute() {
	c.invW = 1.0 / float64(c.Width)
	c.invH = 1.0 / float64(c.Height)
	c.start = math.Sin(-c.FOVRadians / 2)
	c.total = -2 * c.start
	c.aspect = float64(c.Width) / float64(c.Height)
}

// RayDirection computes the unnormalized-then-normalized world-space
// direction for pixel (i, j), per SPEC_FULL.md's §4.5 screen mapping.
func (c *Camera) RayDirection(i, j int) Vec3 {
	xi := (c.start + (float64(i)+0.5)*c.invW*c.total) * c.aspect
	yi := -c.start - (float64(j)+0.5)*c.invH*c.total
	const zPlane = 1.7
	return normalize(Vec3{xi, yi, -zPlane})
}

func normalize(v Vec3) Vec3 {
	length := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// Normalize returns v scaled to unit length. Exported for the viewer's
// key-binding layer, which re-normalizes a combined movement delta
// before scaling it by speed.
func (v Vec3) Normalize() Vec3 {
	return normalize(v)
}

// Move translates the camera position by delta, scaled by speed.
func (c *Camera) Move(delta Vec3, speed float64) {
	c.Position.X += delta.X * speed
	c.Position.Y += delta.Y * speed
	c.Position.Z += delta.Z * speed
}

// Reset returns the camera to the origin.
func (c *Camera) Reset() {
	c.Position = Vec3{}
}
