package system

import (
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/player"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update places the camera at its target's eye. Orientation is left to the
// look controls.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if !w.IsAlive(cs.camEntity) {
		cs.camEntity, _ = w.First(component.CameraComponent.Kind())
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform.Position = player.EyePosition(target.Position, cam.EyeHeight)
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	switch name {
	case "", "player":
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	case "camera":
		if e, ok := w.First(component.CameraTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
