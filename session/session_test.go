package session

import (
	"testing"
	"time"

	"github.com/milk9111/firstperson/telemetry"
)

func TestCloseRunsCleanupsInReverseOnce(t *testing.T) {
	s, err := Start(Options{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.ID == "" || s.Hub != nil || s.Sentry {
		t.Fatalf("expected a bare session, got %+v", s)
	}

	var order []int
	s.onClose(func() { order = append(order, 1) })
	s.onClose(func() { order = append(order, 2) })

	s.Close()
	s.Close()
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Fatalf("expected cleanups 2,1 exactly once, got %v", order)
	}
}

func TestCloseStopsTelemetryServer(t *testing.T) {
	s, err := Start(Options{TelemetryAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Hub == nil {
		t.Fatalf("expected a telemetry hub")
	}

	closed := make(chan struct{})
	go func() {
		s.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		t.Fatalf("Close did not return after stopping telemetry")
	}

	// A closed hub drops snapshots instead of blocking.
	s.Hub.Publish(telemetry.Snapshot{Frame: 1})
}

func TestNilSessionClose(t *testing.T) {
	var s *Session
	s.Close()
}
