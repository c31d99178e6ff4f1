package player

import (
	"testing"
	"time"
)

func TestJumpGateTransitions(t *testing.T) {
	tests := []struct {
		name      string
		steps     func(g *JumpGate) bool
		wantState JumpState
		wantOK    bool
	}{
		{
			name:      "initial_ready",
			steps:     func(g *JumpGate) bool { return g.Ready() },
			wantState: JumpReady,
			wantOK:    true,
		},
		{
			name:      "trigger_closes",
			steps:     func(g *JumpGate) bool { return g.Trigger() },
			wantState: JumpCooling,
			wantOK:    true,
		},
		{
			name: "second_trigger_refused",
			steps: func(g *JumpGate) bool {
				g.Trigger()
				g.Advance(100 * time.Millisecond)
				return g.Trigger()
			},
			wantState: JumpCooling,
			wantOK:    false,
		},
		{
			name: "refused_trigger_does_not_rearm",
			steps: func(g *JumpGate) bool {
				g.Trigger()
				g.Advance(300 * time.Millisecond)
				g.Trigger()
				g.Advance(200 * time.Millisecond)
				return g.Ready()
			},
			wantState: JumpReady,
			wantOK:    true,
		},
		{
			name: "reopens_after_cooldown",
			steps: func(g *JumpGate) bool {
				g.Trigger()
				g.Advance(499 * time.Millisecond)
				if g.Ready() {
					return false
				}
				g.Advance(time.Millisecond)
				return g.Trigger()
			},
			wantState: JumpCooling,
			wantOK:    true,
		},
		{
			name: "advance_while_ready_is_noop",
			steps: func(g *JumpGate) bool {
				g.Advance(time.Second)
				return g.Remaining() == 0
			},
			wantState: JumpReady,
			wantOK:    true,
		},
		{
			name: "cancel_reopens",
			steps: func(g *JumpGate) bool {
				g.Trigger()
				g.Cancel()
				return g.Remaining() == 0
			},
			wantState: JumpReady,
			wantOK:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewJumpGate(500 * time.Millisecond)
			if ok := tc.steps(g); ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if g.State() != tc.wantState {
				t.Fatalf("expected state %v, got %v", tc.wantState, g.State())
			}
		})
	}
}

func TestJumpGateReopensOnFrameBoundary(t *testing.T) {
	tick := time.Second / 60
	g := NewJumpGate(500 * time.Millisecond)
	g.Trigger()

	frames := 0
	for !g.Ready() && frames < 100 {
		g.Advance(tick)
		frames++
	}
	if frames != 30 {
		t.Fatalf("expected a 500ms cooldown to reopen after 30 frames, took %d", frames)
	}
	if g.Remaining() != 0 {
		t.Fatalf("expected no cooldown left, got %v", g.Remaining())
	}
}

func TestNilJumpGate(t *testing.T) {
	var g *JumpGate
	if g.Trigger() {
		t.Fatalf("nil gate must refuse")
	}
	g.Advance(time.Second)
	g.Cancel()
}
