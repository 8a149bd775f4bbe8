package scene

import "github.com/aharden/lumen/pkg/core"

// Cornell box dimensions, in scene units. The box is built from eight
// corner points and ten triangles with a winding chosen so every face
// normal points inward, matching the source renderer's fixed Cornell
// geometry exactly (not a parameterized box-builder) so the four scene
// presets that share it render identically to the reference.
const (
	cornellHalfLength = 20.0
	cornellZOffset    = -48.0
	cornellZBack      = cornellZOffset - cornellHalfLength
	cornellZFront     = 1.0
)

var (
	greyWall  = NewDiffuse(core.NewSpectrum(0.7, 0.7, 0.7))
	greenWall = NewDiffuse(core.NewSpectrum(0.1, 0.7, 0.1))
	redWall   = NewDiffuse(core.NewSpectrum(0.7, 0.1, 0.1))
	blueWall  = NewDiffuse(core.NewSpectrum(0.1, 0.1, 0.7))
)

// cornellLightCenter and cornellLightRadius describe the single
// emissive sphere that lights the box.
var cornellLightCenter = core.NewVec3(0, cornellHalfLength+7*0.6, cornellZOffset-10)

const cornellLightRadius = 7.0

// cornellBoxPrimitives returns the ten fixed-geometry wall/floor/
// ceiling triangles and the ceiling-area light sphere that every
// Cornell-box preset shares.
func cornellBoxPrimitives() []Primitive {
	h := cornellHalfLength
	zf := cornellZFront
	zb := cornellZBack

	// Eight corners: floor (y=-h) and ceiling (y=+h) at the near (z=zf)
	// and far (z=zb) walls.
	flNearLeft := core.NewVec3(-h, -h, zf)
	flNearRight := core.NewVec3(h, -h, zf)
	flFarLeft := core.NewVec3(-h, -h, zb)
	flFarRight := core.NewVec3(h, -h, zb)
	ceNearLeft := core.NewVec3(-h, h, zf)
	ceNearRight := core.NewVec3(h, h, zf)
	ceFarLeft := core.NewVec3(-h, h, zb)
	ceFarRight := core.NewVec3(h, h, zb)

	prims := []Primitive{
		// Floor (grey), facing up (+y).
		NewTriangle(flFarLeft, flNearLeft, flNearRight, greyWall),
		NewTriangle(flFarLeft, flNearRight, flFarRight, greyWall),

		// Ceiling (grey), facing down (-y).
		NewTriangle(ceNearLeft, ceFarLeft, ceNearRight, greyWall),
		NewTriangle(ceFarLeft, ceFarRight, ceNearRight, greyWall),

		// Back wall (green), facing the camera (+z).
		NewTriangle(flFarLeft, flFarRight, ceFarLeft, greenWall),
		NewTriangle(ceFarLeft, flFarRight, ceFarRight, greenWall),

		// Left wall (red), facing right (+x).
		NewTriangle(flFarLeft, ceFarLeft, flNearLeft, redWall),
		NewTriangle(ceFarLeft, ceNearLeft, flNearLeft, redWall),

		// Right wall (blue), facing left (-x).
		NewTriangle(flNearRight, ceNearRight, flFarRight, blueWall),
		NewTriangle(ceNearRight, ceFarRight, flFarRight, blueWall),
	}

	prims = append(prims, NewSphere(cornellLightCenter, cornellLightRadius, NewLight(core.NewSpectrum(15, 15, 15))))
	return prims
}
