package player

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Config holds the controller tuning.
type Config struct {
	// MoveSpeed is the magnitude of the movement intent.
	MoveSpeed float64
	// VelocityScale converts intent units into physics units.
	VelocityScale float64
	// JumpForce is the vertical velocity written on a jump.
	JumpForce    float64
	JumpCooldown time.Duration
	// EyeHeight lifts the camera above the body origin.
	EyeHeight float64
	// GroundedJump additionally requires ground contact to jump.
	GroundedJump bool
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:     0.5,
		VelocityScale: 10,
		JumpForce:     5,
		JumpCooldown:  500 * time.Millisecond,
		EyeHeight:     1.3,
	}
}

// DefaultSpawn is where the body is created.
var DefaultSpawn = mgl64.Vec3{0, 1.3, 5}
