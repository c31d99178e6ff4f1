package system

import (
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/physics"
)

// PhysicsSystem owns the physics world. It registers static geometry and
// creates bodies the first time it sees them, steps the simulation and copies
// the results back into transforms.
type PhysicsSystem struct {
	world   *physics.World
	dt      float64
	statics map[ecs.Entity]struct{}
	bodies  map[ecs.Entity]*physics.Body
}

func NewPhysicsSystem(world *physics.World, dt float64) *PhysicsSystem {
	if world == nil {
		world = physics.NewWorld(common.Gravity)
	}
	return &PhysicsSystem{
		world:   world,
		dt:      dt,
		statics: make(map[ecs.Entity]struct{}),
		bodies:  make(map[ecs.Entity]*physics.Body),
	}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncStatics(w)
	ps.syncBodies(w)
	ps.world.Step(ps.dt)

	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody) {
		if pb.Body == nil || pb.Body.Removed() {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		t.Position = pb.Body.Position()
		t.Velocity = pb.Body.LinearVelocity()
		t.Grounded = pb.Body.Grounded()
		if pb.Body.Landed() {
			w.Events().Push(ecs.Event{Kind: ecs.EventLanded, Entity: e})
		}
	})
}

// Close releases every body and the world itself.
func (ps *PhysicsSystem) Close() {
	if ps == nil {
		return
	}
	ps.world.Close()
	clear(ps.bodies)
	clear(ps.statics)
}

func (ps *PhysicsSystem) syncStatics(w *ecs.World) {
	ecs.ForEach(w, component.GroundComponent.Kind(), func(e ecs.Entity, g *component.Ground) {
		if _, done := ps.statics[e]; done {
			return
		}
		ps.world.SetGround(g.Size)
		ps.statics[e] = struct{}{}
	})

	ecs.ForEach(w, component.StaticBoxComponent.Kind(), func(e ecs.Entity, sb *component.StaticBox) {
		if _, done := ps.statics[e]; done {
			return
		}
		ps.statics[e] = struct{}{}
		if err := ps.world.AddStaticBox(sb.Box); err != nil {
			common.Log.Warnw("physics: skip static box", "entity", e.String(), "error", err)
		}
	})
}

func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	for e, body := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.world.RemoveBody(body)
		delete(ps.bodies, e)
	}

	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody) {
		if pb.Body != nil {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		body, err := ps.world.NewBody(pb.Capsule(), t.Position)
		if err != nil {
			common.Log.Warnw("physics: create body", "entity", e.String(), "error", err)
			return
		}
		pb.Body = body
		ps.bodies[e] = body
		common.Log.Debugw("physics: body created", "entity", e.String(), "position", t.Position)
	})
}
