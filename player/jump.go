package player

import "time"

// cooldownSlack absorbs the rounding of frame durations such as
// time.Second/60, which is a few nanoseconds short of a true sixtieth.
const cooldownSlack = time.Microsecond

type JumpState int

const (
	JumpReady JumpState = iota
	JumpCooling
)

func (s JumpState) String() string {
	switch s {
	case JumpReady:
		return "ready"
	case JumpCooling:
		return "cooling"
	default:
		return "unknown"
	}
}

// JumpGate debounces jumps on elapsed frame time. It does not look at ground
// contact: once the cooldown lapses another jump is allowed, airborne or not.
type JumpGate struct {
	Cooldown time.Duration

	state     JumpState
	remaining time.Duration
}

func NewJumpGate(cooldown time.Duration) *JumpGate {
	return &JumpGate{Cooldown: cooldown}
}

func (g *JumpGate) State() JumpState {
	if g == nil {
		return JumpReady
	}
	return g.state
}

func (g *JumpGate) Ready() bool {
	return g == nil || g.state == JumpReady
}

// Remaining is the cooldown left before the gate reopens.
func (g *JumpGate) Remaining() time.Duration {
	if g == nil {
		return 0
	}
	return g.remaining
}

// Trigger closes the gate and arms the cooldown. It reports false, changing
// nothing, while the gate is already closed.
func (g *JumpGate) Trigger() bool {
	if g == nil || g.state != JumpReady {
		return false
	}
	g.state = JumpCooling
	g.remaining = g.Cooldown
	return true
}

// Advance runs the cooldown clock forward by dt and reopens the gate once it
// has fully elapsed.
func (g *JumpGate) Advance(dt time.Duration) {
	if g == nil || g.state != JumpCooling {
		return
	}
	g.remaining -= dt
	if g.remaining < cooldownSlack {
		g.remaining = 0
		g.state = JumpReady
	}
}

// Cancel disarms a pending cooldown and reopens the gate.
func (g *JumpGate) Cancel() {
	if g == nil {
		return
	}
	g.state = JumpReady
	g.remaining = 0
}
