package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Body is a dynamic upright capsule. Chipmunk carries its horizontal state
// (cp X is world X, cp Y is world Z); the vertical axis is integrated by the
// owning World. Rotation is locked.
type Body struct {
	world   *World
	body    *cp.Body
	shape   *cp.Shape
	capsule Capsule

	y, vy    float64
	grounded bool
	landed   bool
	removed  bool
}

// LinearVelocity returns the body's velocity, or zero once removed.
func (b *Body) LinearVelocity() mgl64.Vec3 {
	if !b.live() {
		return mgl64.Vec3{}
	}
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, b.vy, v.Y}
}

// SetLinearVelocity overwrites the body's velocity. No-op once removed.
func (b *Body) SetLinearVelocity(v mgl64.Vec3) {
	if !b.live() {
		return
	}
	b.body.SetVelocity(v.X(), v.Z())
	b.vy = v.Y()
}

// Position returns the capsule centre, or zero once removed.
func (b *Body) Position() mgl64.Vec3 {
	if !b.live() {
		return mgl64.Vec3{}
	}
	p := b.body.Position()
	return mgl64.Vec3{p.X, b.y, p.Y}
}

// Teleport moves the body and clears its velocity.
func (b *Body) Teleport(pos mgl64.Vec3) {
	if !b.live() {
		return
	}
	b.body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})
	b.body.SetVelocity(0, 0)
	b.y = pos.Y()
	b.vy = 0
	b.grounded = false
}

// Grounded reports whether the last step left the body resting on a surface.
func (b *Body) Grounded() bool {
	return b.live() && b.grounded
}

// Landed reports whether the last step turned an airborne body grounded.
func (b *Body) Landed() bool {
	return b.live() && b.landed
}

func (b *Body) Capsule() Capsule {
	if b == nil {
		return Capsule{}
	}
	return b.capsule
}

func (b *Body) Removed() bool {
	return b == nil || b.removed
}

func (b *Body) live() bool {
	return b != nil && !b.removed && b.body != nil
}

func (b *Body) feet() float64 { return b.y - b.capsule.Extent() }
func (b *Body) head() float64 { return b.y + b.capsule.Extent() }

// overlapsVertically reports whether the capsule's vertical span cuts into box
// deeper than the contact slop.
func (b *Body) overlapsVertically(box Box) bool {
	overlap := min(b.head(), box.Max[1]) - max(b.feet(), box.Min[1])
	return overlap > contactSlop
}
