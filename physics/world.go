package physics

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeStatic
)

// contactSlop is how far a surface may be crossed within one step and still
// count as a contact.
const contactSlop = 0.05

// DefaultGravity is the vertical acceleration in m/s^2.
const DefaultGravity = -9.81

var ErrWorldClosed = errors.New("physics: world closed")

// World owns the static geometry and every dynamic body. A chipmunk space
// resolves horizontal collisions; World integrates gravity and resolves
// landings and head bumps itself.
type World struct {
	space         *cp.Space
	gravity       float64
	groundHalf    float64
	handlersReady bool
	closed        bool

	boxes   []Box
	statics map[*cp.Shape]Box
	shapes  map[*cp.Shape]*Body
	bodies  []*Body
}

func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	w := &World{
		space:   space,
		gravity: gravity,
		statics: make(map[*cp.Shape]Box),
		shapes:  make(map[*cp.Shape]*Body),
	}
	w.ensureHandlers()
	return w
}

func (w *World) Gravity() float64 {
	if w == nil {
		return 0
	}
	return w.gravity
}

// SetGround places a square ground plane of the given edge length at y=0,
// centred on the origin. A size of zero removes it.
func (w *World) SetGround(size float64) {
	if w == nil {
		return
	}
	w.groundHalf = math.Max(0, size/2)
}

// GroundSize returns the ground plane edge length.
func (w *World) GroundSize() float64 {
	if w == nil {
		return 0
	}
	return w.groundHalf * 2
}

// AddStaticBox adds a fixed solid.
func (w *World) AddStaticBox(box Box) error {
	if w == nil || w.closed {
		return ErrWorldClosed
	}
	if err := box.Validate(); err != nil {
		return err
	}
	bb := cp.BB{L: box.Min[0], B: box.Min[2], R: box.Max[0], T: box.Max[2]}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeStatic)
	w.space.AddShape(shape)

	w.statics[shape] = box
	w.boxes = append(w.boxes, box)
	return nil
}

// StaticBoxes returns the static geometry.
func (w *World) StaticBoxes() []Box {
	if w == nil {
		return nil
	}
	return append([]Box(nil), w.boxes...)
}

// NewBody creates a dynamic capsule whose centre is at pos.
func (w *World) NewBody(c Capsule, pos mgl64.Vec3) (*Body, error) {
	if w == nil || w.closed {
		return nil, ErrWorldClosed
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Infinite moment locks rotation.
	cpBody := cp.NewBody(c.Mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})
	cpBody.SetAngle(0)
	cpBody.SetAngularVelocity(0)

	shape := cp.NewCircle(cpBody, c.Radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeBody)

	w.space.AddBody(cpBody)
	w.space.AddShape(shape)

	b := &Body{world: w, body: cpBody, shape: shape, capsule: c, y: pos.Y()}
	w.shapes[shape] = b
	w.bodies = append(w.bodies, b)
	return b, nil
}

// RemoveBody takes b out of the simulation. Later calls on b are no-ops.
func (w *World) RemoveBody(b *Body) {
	if w == nil || b == nil || b.removed || b.world != w {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	delete(w.shapes, b.shape)
	for i, existing := range w.bodies {
		if existing == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	b.removed = true
}

// Bodies returns the number of live dynamic bodies.
func (w *World) Bodies() int {
	if w == nil {
		return 0
	}
	return len(w.bodies)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.closed || dt <= 0 {
		return
	}
	prev := make([]cp.Vector, len(w.bodies))
	for i, b := range w.bodies {
		prevFeet, prevHead := b.feet(), b.head()
		b.vy += w.gravity * dt
		b.y += b.vy * dt
		w.resolveVertical(b, prevFeet, prevHead)
		prev[i] = b.body.Position()
	}
	w.space.Step(dt)
	for i, b := range w.bodies {
		w.resolveHorizontal(b, prev[i])
	}
}

// Close removes every body and static shape.
func (w *World) Close() {
	if w == nil || w.closed {
		return
	}
	for _, b := range append([]*Body(nil), w.bodies...) {
		w.RemoveBody(b)
	}
	for shape := range w.statics {
		w.space.RemoveShape(shape)
	}
	clear(w.statics)
	w.boxes = nil
	w.closed = true
}

func (w *World) resolveVertical(b *Body, prevFeet, prevHead float64) {
	wasGrounded := b.grounded
	b.grounded = false
	b.landed = false

	p := b.body.Position()
	r := b.capsule.Radius
	ext := b.capsule.Extent()

	if b.vy <= 0 {
		support, ok := w.supportBelow(p.X, p.Y, r, prevFeet)
		if ok && b.feet() <= support {
			b.y = support + ext
			b.vy = 0
			b.grounded = true
			b.landed = !wasGrounded
		}
		return
	}

	for _, box := range w.boxes {
		if !box.footprintOverlaps(p.X, p.Y, r) {
			continue
		}
		if prevHead <= box.Min[1]+contactSlop && b.head() > box.Min[1] {
			b.y = box.Min[1] - ext
			b.vy = 0
		}
	}
}

// resolveHorizontal pushes the capsule's footprint out of every box its
// vertical span cuts into and drops the velocity component pointing into the
// box. from is the footprint centre before the chipmunk step.
func (w *World) resolveHorizontal(b *Body, from cp.Vector) {
	r := b.capsule.Radius
	for range 2 {
		moved := false
		for _, box := range w.boxes {
			p := b.body.Position()
			if !b.overlapsVertically(box) || !box.footprintOverlaps(p.X, p.Y, r) {
				continue
			}
			n, depth := box.pushOut(p.X, p.Y, from.X, from.Y, r)
			b.body.SetPosition(p.Add(n.Mult(depth)))
			if v := b.body.Velocity(); v.Dot(n) < 0 {
				b.body.SetVelocityVector(v.Sub(n.Mult(v.Dot(n))))
			}
			moved = true
		}
		if !moved {
			return
		}
	}
}

// supportBelow finds the highest surface under (x, z) that the feet were
// above at the start of the step.
func (w *World) supportBelow(x, z, r, prevFeet float64) (float64, bool) {
	best, found := math.Inf(-1), false
	if w.groundHalf > 0 && math.Abs(x) <= w.groundHalf && math.Abs(z) <= w.groundHalf && prevFeet >= -contactSlop {
		best, found = 0, true
	}
	for _, box := range w.boxes {
		top := box.Max[1]
		if top <= best || prevFeet < top-contactSlop || !box.footprintOverlaps(x, z, r) {
			continue
		}
		best, found = top, true
	}
	return best, found
}

func (w *World) ensureHandlers() {
	if w.handlersReady || w.space == nil {
		return
	}

	// Static boxes only block a body whose vertical span cuts into them, so
	// box tops can be stood on and boxes overhead can be walked under.
	handler := w.space.NewCollisionHandler(collisionTypeBody, collisionTypeStatic)
	handler.UserData = w
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		body, okBody := world.shapes[shapeA]
		box, okBox := world.statics[shapeB]
		if !okBody {
			body, okBody = world.shapes[shapeB]
			box, okBox = world.statics[shapeA]
		}
		if !okBody || !okBox {
			return true
		}
		return body.overlapsVertically(box)
	}

	w.handlersReady = true
}
