package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const step = 1.0 / 60.0

func newTestWorld(t *testing.T, boxes ...Box) *World {
	t.Helper()
	w := NewWorld(DefaultGravity)
	w.SetGround(50)
	for _, b := range boxes {
		if err := w.AddStaticBox(b); err != nil {
			t.Fatalf("add box: %v", err)
		}
	}
	t.Cleanup(w.Close)
	return w
}

func mustBody(t *testing.T, w *World, pos mgl64.Vec3) *Body {
	t.Helper()
	b, err := w.NewBody(DefaultCapsule(), pos)
	if err != nil {
		t.Fatalf("new body: %v", err)
	}
	return b
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestBodyLandsOnGround(t *testing.T) {
	w := newTestWorld(t)
	b := mustBody(t, w, mgl64.Vec3{0, 1.3, 5})

	landings := 0
	for range 60 {
		w.Step(step)
		if b.Landed() {
			landings++
		}
	}
	if !near(b.Position().Y(), 1.0, 1e-9) {
		t.Fatalf("expected capsule centre at 1.0, got %v", b.Position().Y())
	}
	if !b.Grounded() || b.LinearVelocity().Y() != 0 {
		t.Fatalf("expected grounded and at rest, grounded=%v vel=%v", b.Grounded(), b.LinearVelocity())
	}
	if landings != 1 {
		t.Fatalf("expected exactly one landing, got %d", landings)
	}
}

func TestBodyMovesHorizontally(t *testing.T) {
	w := newTestWorld(t)
	b := mustBody(t, w, mgl64.Vec3{0, 1, 0})

	b.SetLinearVelocity(mgl64.Vec3{2, 0, 0})
	for range 30 {
		w.Step(step)
	}
	p := b.Position()
	if !near(p.X(), 1.0, 1e-6) || !near(p.Z(), 0, 1e-9) {
		t.Fatalf("expected to travel 1m along +X, got %v", p)
	}
	if !near(b.LinearVelocity().X(), 2, 1e-9) {
		t.Fatalf("expected horizontal velocity kept, got %v", b.LinearVelocity())
	}
}

func TestWallBlocksBody(t *testing.T) {
	wall := NewBox(mgl64.Vec3{2, 0, -1}, mgl64.Vec3{3, 2, 1})
	w := newTestWorld(t, wall)
	b := mustBody(t, w, mgl64.Vec3{0, 1, 0})

	for range 120 {
		v := b.LinearVelocity()
		b.SetLinearVelocity(mgl64.Vec3{5, v.Y(), 0})
		w.Step(step)
	}
	x := b.Position().X()
	if !near(x, wall.Min.X()-DefaultCapsule().Radius, 1e-6) {
		t.Fatalf("expected body resting against the wall at x=1.7, x=%v", x)
	}
	if vx := b.LinearVelocity().X(); vx > 0 {
		t.Fatalf("expected velocity into the wall removed, got %v", vx)
	}
}

func TestWallSlide(t *testing.T) {
	wall := NewBox(mgl64.Vec3{2, 0, -5}, mgl64.Vec3{3, 2, 5})
	w := newTestWorld(t, wall)
	b := mustBody(t, w, mgl64.Vec3{1.5, 1, 0})

	for range 30 {
		v := b.LinearVelocity()
		b.SetLinearVelocity(mgl64.Vec3{3, v.Y(), 2})
		w.Step(step)
	}
	p := b.Position()
	if p.X() >= wall.Min.X()-DefaultCapsule().Radius+1e-6 {
		t.Fatalf("expected body kept out of the wall, x=%v", p.X())
	}
	if !near(p.Z(), 1.0, 1e-3) {
		t.Fatalf("expected to slide 1m along the wall, z=%v", p.Z())
	}
}

func TestPushOutUsesEntryFace(t *testing.T) {
	box := NewBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 1, 4})
	tests := []struct {
		name         string
		x, z         float64
		fromX, fromZ float64
		wantN        [2]float64
		wantDepth    float64
	}{
		{"outside_corner", 4.1, 4.1, 4.1, 4.1, [2]float64{math.Sqrt2 / 2, math.Sqrt2 / 2}, 0.3 - 0.1*math.Sqrt2},
		{"inside_from_left", 0.2, 2, -0.5, 2, [2]float64{-1, 0}, 0.5},
		{"inside_from_far_side_deep", 3.0, 2, 4.5, 2, [2]float64{1, 0}, 1.3},
		{"inside_from_front", 2, 3.9, 2, 4.4, [2]float64{0, 1}, 0.4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, depth := box.pushOut(tc.x, tc.z, tc.fromX, tc.fromZ, 0.3)
			if !near(n.X, tc.wantN[0], 1e-9) || !near(n.Y, tc.wantN[1], 1e-9) {
				t.Fatalf("expected normal %v, got %v", tc.wantN, n)
			}
			if !near(depth, tc.wantDepth, 1e-9) {
				t.Fatalf("expected depth %v, got %v", tc.wantDepth, depth)
			}
		})
	}
}

func TestLowBoxDoesNotBlockBodyAboveIt(t *testing.T) {
	low := NewBox(mgl64.Vec3{2, 0, -1}, mgl64.Vec3{3, 0.4, 1})
	w := newTestWorld(t, low)
	b := mustBody(t, w, mgl64.Vec3{0, 3, 0})

	for range 30 {
		v := b.LinearVelocity()
		b.SetLinearVelocity(mgl64.Vec3{5, v.Y(), 0})
		w.Step(step)
	}
	if x := b.Position().X(); x < 2.4 {
		t.Fatalf("expected airborne body to pass over the low box, x=%v", x)
	}
}

func TestBodyLandsOnBoxTop(t *testing.T) {
	block := NewBox(mgl64.Vec3{-1, 0, -1}, mgl64.Vec3{1, 0.5, 1})
	w := newTestWorld(t, block)
	b := mustBody(t, w, mgl64.Vec3{0, 3, 0})

	for range 120 {
		w.Step(step)
	}
	if !near(b.Position().Y(), 1.5, 1e-9) || !b.Grounded() {
		t.Fatalf("expected to rest on the box top at 1.5, got %v grounded=%v", b.Position(), b.Grounded())
	}
}

func TestHeadBumpsBoxUnderside(t *testing.T) {
	ceiling := NewBox(mgl64.Vec3{-1, 2.5, -1}, mgl64.Vec3{1, 3, 1})
	w := newTestWorld(t, ceiling)
	b := mustBody(t, w, mgl64.Vec3{0, 1, 0})

	w.Step(step)
	b.SetLinearVelocity(mgl64.Vec3{0, 5, 0})
	highest := 0.0
	for range 60 {
		w.Step(step)
		highest = max(highest, b.Position().Y())
	}
	if highest > 1.5+1e-9 {
		t.Fatalf("expected head to stop at the ceiling, peaked at %v", highest)
	}
	if !b.Grounded() {
		t.Fatalf("expected body back on the ground")
	}
}

func TestBodyFallsOffGroundEdge(t *testing.T) {
	w := newTestWorld(t)
	b := mustBody(t, w, mgl64.Vec3{30, 1, 0})

	for range 60 {
		w.Step(step)
	}
	if b.Position().Y() >= 0 || b.Grounded() {
		t.Fatalf("expected free fall outside the ground, got %v", b.Position())
	}
}

func TestTeleportResetsMotion(t *testing.T) {
	w := newTestWorld(t)
	b := mustBody(t, w, mgl64.Vec3{0, 1, 0})
	b.SetLinearVelocity(mgl64.Vec3{3, -8, 1})

	b.Teleport(mgl64.Vec3{4, 2, -4})
	if b.Position() != (mgl64.Vec3{4, 2, -4}) || b.LinearVelocity() != (mgl64.Vec3{}) {
		t.Fatalf("unexpected state after teleport: pos=%v vel=%v", b.Position(), b.LinearVelocity())
	}
}

func TestRemovedBodyIsInert(t *testing.T) {
	w := newTestWorld(t)
	b := mustBody(t, w, mgl64.Vec3{0, 1, 0})

	w.RemoveBody(b)
	w.RemoveBody(b)
	if w.Bodies() != 0 || !b.Removed() {
		t.Fatalf("expected body removed, bodies=%d", w.Bodies())
	}
	b.SetLinearVelocity(mgl64.Vec3{1, 1, 1})
	if b.LinearVelocity() != (mgl64.Vec3{}) || b.Position() != (mgl64.Vec3{}) {
		t.Fatalf("removed body must read as zero")
	}
	w.Step(step)
}

func TestClosedWorldRejectsBodies(t *testing.T) {
	w := NewWorld(DefaultGravity)
	w.Close()
	w.Close()
	if _, err := w.NewBody(DefaultCapsule(), mgl64.Vec3{}); err != ErrWorldClosed {
		t.Fatalf("expected ErrWorldClosed, got %v", err)
	}
	if err := w.AddStaticBox(NewBox(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})); err != ErrWorldClosed {
		t.Fatalf("expected ErrWorldClosed, got %v", err)
	}
}

func TestValidation(t *testing.T) {
	w := newTestWorld(t)
	if err := w.AddStaticBox(Box{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 0, 1}}); err == nil {
		t.Fatalf("expected flat box to be rejected")
	}
	if _, err := w.NewBody(Capsule{Radius: 0, HalfHeight: 1, Mass: 1}, mgl64.Vec3{}); err == nil {
		t.Fatalf("expected zero radius to be rejected")
	}
	if _, err := w.NewBody(Capsule{Radius: 1, HalfHeight: 1}, mgl64.Vec3{}); err == nil {
		t.Fatalf("expected massless capsule to be rejected")
	}
}

func TestWorldReportsGeometry(t *testing.T) {
	box := NewBox(mgl64.Vec3{1, 0, 1}, mgl64.Vec3{2, 1, 2})
	w := newTestWorld(t, box)
	if w.Gravity() != DefaultGravity || w.GroundSize() != 50 {
		t.Fatalf("unexpected world gravity=%v ground=%v", w.Gravity(), w.GroundSize())
	}
	statics := w.StaticBoxes()
	if len(statics) != 1 || statics[0] != box {
		t.Fatalf("expected the one static box, got %v", statics)
	}
	statics[0] = Box{}
	if w.StaticBoxes()[0] != box {
		t.Fatalf("StaticBoxes must return a copy")
	}
}
