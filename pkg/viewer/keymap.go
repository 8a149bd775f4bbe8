package viewer

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/aharden/lumen/pkg/controller"
	"github.com/aharden/lumen/pkg/render"
)

// movementKeys maps each translation key to the unit-axis delta it
// contributes; WASD moves in x/z, Q/E moves in y, matching the
// engine's recognized key bindings.
var movementKeys = map[glfw.Key]render.Vec3{
	glfw.KeyW: {Z: -1},
	glfw.KeyS: {Z: 1},
	glfw.KeyA: {X: -1},
	glfw.KeyD: {X: 1},
	glfw.KeyQ: {Y: -1},
	glfw.KeyE: {Y: 1},
}

// KeyState reports which keys are currently held; *Window satisfies
// this, and tests supply a fake.
type KeyState interface {
	IsKeyPressed(key glfw.Key) bool
}

// EdgeKeys tracks keys whose handler fires once per press rather than
// once per held frame (toggles and one-shot actions).
type EdgeKeys struct {
	held map[glfw.Key]bool
}

// NewEdgeKeys builds an empty edge-key tracker.
func NewEdgeKeys() *EdgeKeys {
	return &EdgeKeys{held: make(map[glfw.Key]bool)}
}

// pressed reports a rising edge: true the first poll a key is down,
// false on every subsequent poll until it's released.
func (e *EdgeKeys) pressed(w KeyState, key glfw.Key) bool {
	down := w.IsKeyPressed(key)
	wasDown := e.held[key]
	e.held[key] = down
	return down && !wasDown
}

// PollInput translates the current key state into controller calls.
// Movement keys apply every frame they're held; R/F/C fire once per
// press.
func PollInput(w KeyState, ctrl *controller.Controller, edges *EdgeKeys) {
	var delta render.Vec3
	for key, axis := range movementKeys {
		if w.IsKeyPressed(key) {
			delta.X += axis.X
			delta.Y += axis.Y
			delta.Z += axis.Z
		}
	}
	if delta != (render.Vec3{}) {
		ctrl.InterruptRender()
		ctrl.MoveCamera(delta.Normalize())
	}

	if edges.pressed(w, glfw.KeyR) {
		ctrl.ToggleRenderingMode()
	}
	if edges.pressed(w, glfw.KeyF) {
		ctrl.InterruptRender()
		ctrl.Render(false)
	}
	if edges.pressed(w, glfw.KeyC) {
		ctrl.ToggleContinuousRender()
	}
}
