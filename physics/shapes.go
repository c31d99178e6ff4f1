package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Box is an axis-aligned solid block of static geometry.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewBox builds a box from any two opposite corners.
func NewBox(a, b mgl64.Vec3) Box {
	return Box{
		Min: mgl64.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])},
		Max: mgl64.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])},
	}
}

func (b Box) Validate() error {
	for i := range 3 {
		if !(b.Max[i] > b.Min[i]) {
			return fmt.Errorf("physics: degenerate box %v..%v", b.Min, b.Max)
		}
	}
	return nil
}

func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Corners returns the eight corners, bottom face first.
func (b Box) Corners() [8]mgl64.Vec3 {
	lo, hi := b.Min, b.Max
	return [8]mgl64.Vec3{
		{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], lo[1], hi[2]}, {lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]}, {hi[0], hi[1], lo[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]},
	}
}

// footprintOverlaps reports whether a circle of radius r centred at (x, z)
// intersects the box's XZ footprint.
func (b Box) footprintOverlaps(x, z, r float64) bool {
	cx := max(b.Min[0], min(x, b.Max[0]))
	cz := max(b.Min[2], min(z, b.Max[2]))
	dx, dz := x-cx, z-cz
	return dx*dx+dz*dz < r*r
}

// pushOut returns the unit XZ normal and distance that move a circle of radius
// r centred at (x, z) clear of the footprint. A centre already inside the
// footprint leaves through the face it entered by, judged from (fromX, fromZ).
func (b Box) pushOut(x, z, fromX, fromZ, r float64) (cp.Vector, float64) {
	cx := max(b.Min[0], min(x, b.Max[0]))
	cz := max(b.Min[2], min(z, b.Max[2]))
	dx, dz := x-cx, z-cz
	if d := math.Hypot(dx, dz); d > 0 {
		return cp.Vector{X: dx / d, Y: dz / d}, r - d
	}

	faces := []struct {
		n     cp.Vector
		depth float64
		came  bool
	}{
		{cp.Vector{X: -1}, x - b.Min[0] + r, fromX <= b.Min[0]},
		{cp.Vector{X: 1}, b.Max[0] - x + r, fromX >= b.Max[0]},
		{cp.Vector{Y: -1}, z - b.Min[2] + r, fromZ <= b.Min[2]},
		{cp.Vector{Y: 1}, b.Max[2] - z + r, fromZ >= b.Max[2]},
	}
	best := -1
	for i, f := range faces {
		if best < 0 || f.came && !faces[best].came || f.came == faces[best].came && f.depth < faces[best].depth {
			best = i
		}
	}
	return faces[best].n, faces[best].depth
}

// Capsule is an upright capsule collider.
type Capsule struct {
	Radius     float64
	HalfHeight float64
	Mass       float64
}

func DefaultCapsule() Capsule {
	return Capsule{Radius: 0.3, HalfHeight: 0.7, Mass: 1}
}

// Extent is the distance from the capsule centre to its top or bottom.
func (c Capsule) Extent() float64 {
	return c.HalfHeight + c.Radius
}

func (c Capsule) Validate() error {
	if c.Radius <= 0 || c.HalfHeight < 0 {
		return fmt.Errorf("physics: invalid capsule radius=%v half_height=%v", c.Radius, c.HalfHeight)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("physics: capsule mass must be positive, got %v", c.Mass)
	}
	return nil
}
