package player

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/firstperson/input"
)

// PlanMovement turns held directional keys into a horizontal movement intent
// relative to where the viewer is looking. The result has length speed, or is
// exactly zero when no direction survives cancellation.
func PlanMovement(keys input.KeyState, look input.Orientation, speed float64) mgl64.Vec3 {
	var dir mgl64.Vec3
	if keys.IsPressed(input.KeyForward) {
		dir[2] -= 1
	}
	if keys.IsPressed(input.KeyBackward) {
		dir[2] += 1
	}
	if keys.IsPressed(input.KeyLeft) {
		dir[0] -= 1
	}
	if keys.IsPressed(input.KeyRight) {
		dir[0] += 1
	}

	// Normalize would turn the zero vector into NaNs.
	if dir.Len() == 0 {
		return mgl64.Vec3{}
	}

	// Only yaw steers: pitch must not tilt or shorten a walk.
	return mgl64.Rotate3DY(look.Yaw).Mul3x1(dir.Normalize().Mul(speed))
}
