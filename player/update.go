package player

import (
	"reflect"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/firstperson/input"
)

// Frame is everything one controller step reads.
type Frame struct {
	Keys input.KeyState
	Look input.Orientation
	Body Body
	Gate *JumpGate
	DT   time.Duration
}

// Result describes what a step wrote.
type Result struct {
	Intent   mgl64.Vec3
	Velocity mgl64.Vec3
	Jumped   bool
	// Skipped is set when there was no body to drive.
	Skipped bool
}

// Update runs one controller step: the jump cooldown advances, the horizontal
// velocity follows the movement intent while the body's own vertical velocity
// is carried over, and a jump fires if the gate allows it.
func Update(cfg Config, f Frame) Result {
	f.Gate.Advance(f.DT)

	if isNilBody(f.Body) {
		return Result{Skipped: true}
	}

	intent := PlanMovement(f.Keys, f.Look, cfg.MoveSpeed)
	current := f.Body.LinearVelocity()
	next := mgl64.Vec3{
		intent.X() * cfg.VelocityScale,
		current.Y(),
		intent.Z() * cfg.VelocityScale,
	}
	f.Body.SetLinearVelocity(next)

	res := Result{Intent: intent, Velocity: next}
	if f.Gate == nil || !f.Keys.IsPressed(input.KeyJump) || !f.Gate.Ready() || !canLeaveGround(cfg, f.Body) {
		return res
	}
	f.Gate.Trigger()
	v := f.Body.LinearVelocity()
	v[1] = cfg.JumpForce
	f.Body.SetLinearVelocity(v)
	res.Velocity = v
	res.Jumped = true
	return res
}

func canLeaveGround(cfg Config, body Body) bool {
	if !cfg.GroundedJump {
		return true
	}
	g, ok := body.(Grounder)
	return !ok || g.Grounded()
}

// isNilBody also catches typed nil pointers stored in the interface.
func isNilBody(b Body) bool {
	if b == nil {
		return true
	}
	v := reflect.ValueOf(b)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
