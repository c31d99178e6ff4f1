package system

import (
	"time"

	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/player"
)

// PlayerControllerSystem is the player's single per-frame callback: it plans
// movement, writes the body velocity and fires jumps.
type PlayerControllerSystem struct {
	dt time.Duration
}

func NewPlayerControllerSystem(dt time.Duration) *PlayerControllerSystem {
	return &PlayerControllerSystem{dt: dt}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
	)
	for _, e := range entities {
		pl, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}

		frame := player.Frame{Keys: in.Keys, DT: p.dt}
		if look, ok := ecs.Get(w, e, component.LookComponent.Kind()); ok {
			frame.Look = look.Orientation
		}
		jump, hasJump := ecs.Get(w, e, component.JumpComponent.Kind())
		if hasJump {
			frame.Gate = jump.Gate
		}
		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && bodyComp.Body != nil {
			frame.Body = bodyComp.Body
		}

		res := player.Update(pl.Config, frame)
		if !res.Jumped {
			continue
		}
		if hasJump {
			jump.Count++
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventJumped, Entity: e})
		common.Log.Debugw("player jumped", "entity", e.String(), "velocity", res.Velocity)
	}
}
