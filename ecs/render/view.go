package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/firstperson/input"
)

// View is a perspective camera looking along its orientation.
type View struct {
	Eye    mgl64.Vec3
	Look   input.Orientation
	FOV    float64 // vertical, degrees
	Near   float64
	Far    float64
	Width  float64
	Height float64

	view mgl32.Mat4
	proj mgl32.Mat4
}

// Forward returns the unit view direction. Yaw 0 looks down -Z; positive yaw
// turns left and positive pitch looks up.
func Forward(o input.Orientation) mgl64.Vec3 {
	rot := mgl64.Rotate3DY(o.Yaw).Mul3(mgl64.Rotate3DX(o.Pitch))
	return rot.Mul3x1(mgl64.Vec3{0, 0, -1})
}

// Prepare computes the view and projection matrices. Call it after changing
// any field.
func (v *View) Prepare() {
	eye := vec32(v.Eye)
	center := eye.Add(vec32(Forward(v.Look)))
	v.view = mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0})

	aspect := float32(1)
	if v.Height > 0 {
		aspect = float32(v.Width / v.Height)
	}
	v.proj = mgl32.Perspective(mgl32.DegToRad(float32(v.FOV)), aspect, float32(v.Near), float32(v.Far))
}

// toView moves a world point into camera space, where the camera looks down -Z.
func (v *View) toView(p mgl64.Vec3) mgl32.Vec3 {
	return v.view.Mul4x1(vec32(p).Vec4(1)).Vec3()
}

func (v *View) inFront(p mgl32.Vec3) bool {
	return -p.Z() >= float32(v.Near)
}

// toScreen projects a camera-space point that lies in front of the near plane.
func (v *View) toScreen(p mgl32.Vec3) mgl32.Vec2 {
	clip := v.proj.Mul4x1(p.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl32.Vec2{
		(ndc.X() + 1) * 0.5 * float32(v.Width),
		(1 - ndc.Y()) * 0.5 * float32(v.Height),
	}
}

// Project maps a world point to screen pixels. ok is false for points behind
// the near plane.
func (v *View) Project(p mgl64.Vec3) (mgl32.Vec2, bool) {
	vp := v.toView(p)
	if !v.inFront(vp) {
		return mgl32.Vec2{}, false
	}
	return v.toScreen(vp), true
}

// Segment is a projected line in screen pixels.
type Segment struct {
	A, B mgl32.Vec2
}

// ProjectSegment clips a world segment against the near plane and projects it.
func (v *View) ProjectSegment(a, b mgl64.Vec3) (Segment, bool) {
	va, vb := v.toView(a), v.toView(b)
	aIn, bIn := v.inFront(va), v.inFront(vb)
	switch {
	case !aIn && !bIn:
		return Segment{}, false
	case !aIn:
		va = v.nearIntersect(vb, va)
	case !bIn:
		vb = v.nearIntersect(va, vb)
	}
	return Segment{A: v.toScreen(va), B: v.toScreen(vb)}, true
}

// nearIntersect returns where the segment from in (in front) to out (behind)
// crosses the near plane.
func (v *View) nearIntersect(in, out mgl32.Vec3) mgl32.Vec3 {
	near := -float32(v.Near)
	t := (near - in.Z()) / (out.Z() - in.Z())
	p := in.Add(out.Sub(in).Mul(t))
	p[2] = near
	return p
}

// clipPolygon keeps the part of a camera-space polygon in front of the near
// plane.
func (v *View) clipPolygon(pts []mgl32.Vec3) []mgl32.Vec3 {
	var out []mgl32.Vec3
	for i, cur := range pts {
		prev := pts[(i+len(pts)-1)%len(pts)]
		curIn, prevIn := v.inFront(cur), v.inFront(prev)
		if curIn != prevIn {
			if curIn {
				out = append(out, v.nearIntersect(cur, prev))
			} else {
				out = append(out, v.nearIntersect(prev, cur))
			}
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
