package input

import "math"

// Orientation is the viewer's look direction in radians. Yaw rotates about +Y
// (0 looks down -Z), pitch about the camera's local X axis.
type Orientation struct {
	Yaw   float64
	Pitch float64
}

// DefaultPitchLimit keeps the view just short of straight up or down.
const DefaultPitchLimit = math.Pi/2 - 0.01

// Look turns pointer motion into an Orientation while the pointer is locked.
type Look struct {
	Sensitivity float64
	PitchLimit  float64

	orientation Orientation
	locked      bool
}

func NewLook(sensitivity float64) *Look {
	if sensitivity <= 0 {
		sensitivity = 0.002
	}
	return &Look{Sensitivity: sensitivity, PitchLimit: DefaultPitchLimit}
}

// Lock starts consuming pointer motion.
func (l *Look) Lock() {
	if l != nil {
		l.locked = true
	}
}

// Unlock stops consuming pointer motion; the orientation is kept.
func (l *Look) Unlock() {
	if l != nil {
		l.locked = false
	}
}

func (l *Look) Locked() bool {
	return l != nil && l.locked
}

// Move applies a pointer delta in pixels. Moving right turns right, moving
// down looks down. Ignored while unlocked.
func (l *Look) Move(dx, dy float64) {
	if l == nil || !l.locked {
		return
	}
	l.orientation.Yaw = wrapAngle(l.orientation.Yaw - dx*l.Sensitivity)
	limit := l.PitchLimit
	if limit <= 0 {
		limit = DefaultPitchLimit
	}
	l.orientation.Pitch = math.Max(-limit, math.Min(limit, l.orientation.Pitch-dy*l.Sensitivity))
}

// Set overrides the orientation, e.g. on respawn.
func (l *Look) Set(o Orientation) {
	if l != nil {
		l.orientation = o
	}
}

func (l *Look) Orientation() Orientation {
	if l == nil {
		return Orientation{}
	}
	return l.orientation
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
