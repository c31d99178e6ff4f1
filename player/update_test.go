package player

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/firstperson/input"
)

type fakeBody struct {
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	grounded bool
	writes   int
}

func (b *fakeBody) LinearVelocity() mgl64.Vec3 { return b.vel }
func (b *fakeBody) SetLinearVelocity(v mgl64.Vec3) {
	b.vel = v
	b.writes++
}
func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Grounded() bool       { return b.grounded }

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

// vecApprox compares componentwise with an absolute tolerance, so rotation
// noise around an expected zero still matches.
func vecApprox(a, b mgl64.Vec3) bool {
	return approx(a.X(), b.X()) && approx(a.Y(), b.Y()) && approx(a.Z(), b.Z())
}

func horizontalLen(v mgl64.Vec3) float64 {
	return math.Hypot(v.X(), v.Z())
}

func TestPlanMovementMagnitude(t *testing.T) {
	directional := []input.Key{input.KeyForward, input.KeyBackward, input.KeyLeft, input.KeyRight}
	const speed = 0.5

	for mask := 0; mask < 1<<len(directional); mask++ {
		var keys input.KeyState
		for i, k := range directional {
			if mask&(1<<i) != 0 {
				keys = keys.With(k)
			}
		}
		intent := PlanMovement(keys, input.Orientation{Yaw: 0.7}, speed)
		if intent.Y() != 0 {
			t.Fatalf("mask %04b: intent must be horizontal, got %v", mask, intent)
		}
		if math.IsNaN(intent.X()) || math.IsNaN(intent.Z()) {
			t.Fatalf("mask %04b: NaN in intent %v", mask, intent)
		}
		l := horizontalLen(intent)
		if !approx(l, 0) && !approx(l, speed) {
			t.Fatalf("mask %04b: expected magnitude 0 or %v, got %v", mask, speed, l)
		}
	}
}

func TestPlanMovementOpposingKeysCancel(t *testing.T) {
	tests := []struct {
		name string
		keys input.KeyState
		want mgl64.Vec3
	}{
		{"none", input.KeyState{}, mgl64.Vec3{}},
		{"forward_backward", input.KeyState{}.With(input.KeyForward, input.KeyBackward), mgl64.Vec3{}},
		{"left_right", input.KeyState{}.With(input.KeyLeft, input.KeyRight), mgl64.Vec3{}},
		{"all_four", input.KeyState{}.With(input.KeyForward, input.KeyBackward, input.KeyLeft, input.KeyRight), mgl64.Vec3{}},
		{"forward_backward_right", input.KeyState{}.With(input.KeyForward, input.KeyBackward, input.KeyRight), mgl64.Vec3{1, 0, 0}},
		{"left_right_forward", input.KeyState{}.With(input.KeyLeft, input.KeyRight, input.KeyForward), mgl64.Vec3{0, 0, -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PlanMovement(tc.keys, input.Orientation{}, 1)
			if !vecApprox(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPlanMovementFollowsYaw(t *testing.T) {
	forward := input.KeyState{}.With(input.KeyForward)

	straight := PlanMovement(forward, input.Orientation{}, 0.5)
	if !vecApprox(straight, mgl64.Vec3{0, 0, -0.5}) {
		t.Fatalf("expected -Z at yaw 0, got %v", straight)
	}

	turned := PlanMovement(forward, input.Orientation{Yaw: math.Pi / 2}, 0.5)
	if !vecApprox(turned, mgl64.Vec3{-0.5, 0, 0}) {
		t.Fatalf("expected -X at yaw 90deg, got %v", turned)
	}
	if !approx(horizontalLen(turned), horizontalLen(straight)) {
		t.Fatalf("rotation changed magnitude: %v vs %v", horizontalLen(turned), horizontalLen(straight))
	}
	angle := math.Acos(straight.Normalize().Dot(turned.Normalize()))
	if !approx(angle, math.Pi/2) {
		t.Fatalf("expected 90deg between headings, got %v rad", angle)
	}
}

func TestPlanMovementIgnoresPitch(t *testing.T) {
	forward := input.KeyState{}.With(input.KeyForward)
	level := PlanMovement(forward, input.Orientation{Yaw: 1}, 0.5)
	down := PlanMovement(forward, input.Orientation{Yaw: 1, Pitch: -1.2}, 0.5)
	if !vecApprox(level, down) {
		t.Fatalf("pitch changed the intent: %v vs %v", level, down)
	}
}

func TestUpdatePreservesVerticalVelocity(t *testing.T) {
	cfg := DefaultConfig()
	body := &fakeBody{vel: mgl64.Vec3{4, -3.2, 7}}

	res := Update(cfg, Frame{Body: body, Gate: NewJumpGate(cfg.JumpCooldown)})
	want := mgl64.Vec3{0, -3.2, 0}
	if body.vel != want {
		t.Fatalf("expected %v, got %v", want, body.vel)
	}
	if res.Velocity != want || res.Jumped || res.Skipped {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestUpdateScalesIntent(t *testing.T) {
	cfg := DefaultConfig()
	body := &fakeBody{vel: mgl64.Vec3{0, 1.5, 0}}
	keys := input.KeyState{}.With(input.KeyForward)

	Update(cfg, Frame{Keys: keys, Body: body, Gate: NewJumpGate(cfg.JumpCooldown)})
	want := mgl64.Vec3{0, 1.5, -cfg.MoveSpeed * cfg.VelocityScale}
	if !vecApprox(body.vel, want) {
		t.Fatalf("expected %v, got %v", want, body.vel)
	}
}

func TestUpdateJumpCooldown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JumpCooldown = 500 * time.Millisecond
	gate := NewJumpGate(cfg.JumpCooldown)
	body := &fakeBody{vel: mgl64.Vec3{1, 0, 2}}
	jump := input.KeyState{}.With(input.KeyJump)

	res := Update(cfg, Frame{Keys: jump, Body: body, Gate: gate})
	if !res.Jumped || body.vel.Y() != cfg.JumpForce {
		t.Fatalf("expected jump to set vy=%v, got %+v vel=%v", cfg.JumpForce, res, body.vel)
	}
	if gate.State() != JumpCooling {
		t.Fatalf("expected gate cooling, got %v", gate.State())
	}

	// Gravity has eaten into the jump by the time the key is pressed again.
	body.vel[1] = 3.4
	res = Update(cfg, Frame{Keys: jump, Body: body, Gate: gate, DT: 100 * time.Millisecond})
	if res.Jumped || body.vel.Y() != 3.4 {
		t.Fatalf("expected no jump while cooling, got %+v vel=%v", res, body.vel)
	}
	if gate.Remaining() != 400*time.Millisecond {
		t.Fatalf("expected 400ms left, got %v", gate.Remaining())
	}

	gate.Advance(400 * time.Millisecond)
	if gate.State() != JumpReady {
		t.Fatalf("expected gate ready after cooldown, got %v", gate.State())
	}

	body.vel[1] = -1
	res = Update(cfg, Frame{Keys: jump, Body: body, Gate: gate})
	if !res.Jumped || body.vel.Y() != cfg.JumpForce {
		t.Fatalf("expected second jump to succeed, got %+v vel=%v", res, body.vel)
	}
}

func TestUpdateJumpKeepsHorizontalVelocity(t *testing.T) {
	cfg := DefaultConfig()
	body := &fakeBody{}
	keys := input.KeyState{}.With(input.KeyRight, input.KeyJump)

	Update(cfg, Frame{Keys: keys, Body: body, Gate: NewJumpGate(cfg.JumpCooldown)})
	want := mgl64.Vec3{cfg.MoveSpeed * cfg.VelocityScale, cfg.JumpForce, 0}
	if !vecApprox(body.vel, want) {
		t.Fatalf("expected %v, got %v", want, body.vel)
	}
}

func TestUpdateMissingBody(t *testing.T) {
	cfg := DefaultConfig()
	gate := NewJumpGate(cfg.JumpCooldown)
	gate.Trigger()

	var typedNil *fakeBody
	for _, body := range []Body{nil, typedNil} {
		res := Update(cfg, Frame{Keys: input.KeyState{}.With(input.KeyJump), Body: body, Gate: gate, DT: 100 * time.Millisecond})
		if !res.Skipped || res.Jumped {
			t.Fatalf("expected skipped frame, got %+v", res)
		}
	}
	if gate.Remaining() != 300*time.Millisecond {
		t.Fatalf("expected cooldown to keep running without a body, got %v", gate.Remaining())
	}
}

func TestUpdateWithoutGateNeverJumps(t *testing.T) {
	body := &fakeBody{}
	res := Update(DefaultConfig(), Frame{Keys: input.KeyState{}.With(input.KeyJump), Body: body})
	if res.Jumped || body.vel.Y() != 0 {
		t.Fatalf("expected no jump without a gate, got %+v", res)
	}
}

func TestUpdateGroundedJump(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GroundedJump = true
	gate := NewJumpGate(cfg.JumpCooldown)
	body := &fakeBody{}
	jump := input.KeyState{}.With(input.KeyJump)

	if res := Update(cfg, Frame{Keys: jump, Body: body, Gate: gate}); res.Jumped {
		t.Fatalf("expected no jump while airborne")
	}
	if gate.State() != JumpReady {
		t.Fatalf("a refused jump must not close the gate")
	}

	body.grounded = true
	if res := Update(cfg, Frame{Keys: jump, Body: body, Gate: gate}); !res.Jumped {
		t.Fatalf("expected jump once grounded")
	}
}

func TestEyePosition(t *testing.T) {
	got := EyePosition(mgl64.Vec3{2, 1, -3}, 1.3)
	if got.X() != 2 || got.Z() != -3 || !approx(got.Y(), 2.3) {
		t.Fatalf("expected eye offset on Y only, got %v", got)
	}
}
