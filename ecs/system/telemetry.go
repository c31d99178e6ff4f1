package system

import (
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/telemetry"
)

// Publisher receives one snapshot per player per frame.
type Publisher interface {
	Publish(s telemetry.Snapshot)
}

type TelemetrySystem struct {
	out     Publisher
	session string
	frame   uint64
}

func NewTelemetrySystem(out Publisher, session string) *TelemetrySystem {
	return &TelemetrySystem{out: out, session: session}
}

func (s *TelemetrySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.frame++
	if s.out == nil {
		return
	}

	events := make(map[ecs.Entity][]string)
	for _, evt := range w.Events().Items() {
		events[evt.Entity] = append(events[evt.Entity], string(evt.Kind))
	}

	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind()) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		snap := telemetry.Snapshot{
			Session:  s.session,
			Frame:    s.frame,
			Position: t.Position,
			Velocity: t.Velocity,
			Grounded: t.Grounded,
			Events:   events[e],
		}
		if look, ok := ecs.Get(w, e, component.LookComponent.Kind()); ok {
			snap.Yaw = look.Orientation.Yaw
			snap.Pitch = look.Orientation.Pitch
		}
		if jump, ok := ecs.Get(w, e, component.JumpComponent.Kind()); ok {
			snap.Jump = jump.Gate.State().String()
		}
		s.out.Publish(snap)
	}
}
