package input

import (
	"math"
	"testing"
)

func TestLookIgnoresMotionWhileUnlocked(t *testing.T) {
	l := NewLook(0.01)
	l.Move(100, 100)
	if l.Orientation() != (Orientation{}) {
		t.Fatalf("expected no change while unlocked, got %+v", l.Orientation())
	}
}

func TestLookMove(t *testing.T) {
	l := NewLook(0.01)
	l.Lock()
	l.Move(10, 0)
	if got := l.Orientation().Yaw; math.Abs(got-(-0.1)) > 1e-9 {
		t.Fatalf("expected yaw -0.1 after moving right, got %v", got)
	}
	l.Move(0, 10)
	if got := l.Orientation().Pitch; math.Abs(got-(-0.1)) > 1e-9 {
		t.Fatalf("expected pitch -0.1 after moving down, got %v", got)
	}
}

func TestLookClampsPitchAndWrapsYaw(t *testing.T) {
	l := NewLook(1)
	l.Lock()
	l.Move(0, -100)
	if got := l.Orientation().Pitch; got != DefaultPitchLimit {
		t.Fatalf("expected pitch clamped to %v, got %v", DefaultPitchLimit, got)
	}
	l.Move(-3*math.Pi, 0)
	if yaw := l.Orientation().Yaw; yaw < -math.Pi || yaw > math.Pi {
		t.Fatalf("expected yaw wrapped into [-pi, pi], got %v", yaw)
	}
}
