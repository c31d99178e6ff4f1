package player

import "github.com/go-gl/mathgl/mgl64"

// Body is the controller's view of the player's dynamic rigid body. The
// physics world owns it; the controller only holds a handle.
type Body interface {
	LinearVelocity() mgl64.Vec3
	SetLinearVelocity(v mgl64.Vec3)
	Position() mgl64.Vec3
}

// Grounder is implemented by bodies that know whether they rest on something.
type Grounder interface {
	Grounded() bool
}

// EyePosition is the camera position for a body at pos: lifted by eyeHeight
// on the vertical axis only.
func EyePosition(pos mgl64.Vec3, eyeHeight float64) mgl64.Vec3 {
	return mgl64.Vec3{pos.X(), pos.Y() + eyeHeight, pos.Z()}
}
