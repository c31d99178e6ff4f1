package system

import (
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
)

type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

// Update flags players that fell below their kill height and moves every
// flagged player back to spawn. It runs after physics so the teleport is not
// undone by the step.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.PlayerComponent.Kind(), component.TransformComponent.Kind()) {
		pl, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if t.Position.Y() < pl.RespawnBelow {
			_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
		}
	}

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		defer ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		pl, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			return
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Position = pl.Spawn
			t.Velocity = t.Velocity.Mul(0)
			t.Grounded = false
		}
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			pb.Body.Teleport(pl.Spawn)
		}
		if jump, ok := ecs.Get(w, e, component.JumpComponent.Kind()); ok {
			jump.Gate.Cancel()
		}

		w.Events().Push(ecs.Event{Kind: ecs.EventRespawned, Entity: e})
		common.Log.Infow("player respawned", "entity", e.String(), "spawn", pl.Spawn)
	})
}
