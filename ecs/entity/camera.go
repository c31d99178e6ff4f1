package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/player"
	"github.com/milk9111/firstperson/prefabs"
)

func NewCamera(w *ecs.World, spawn mgl64.Vec3, eyeHeight float64) (ecs.Entity, error) {
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}
	return NewCameraFromSpec(w, cameraSpec, spawn, eyeHeight)
}

// NewCameraFromSpec builds the camera already placed at the eye of a body
// standing at spawn, so the first frame renders from the right place.
func NewCameraFromSpec(w *ecs.World, cameraSpec *prefabs.CameraSpec, spawn mgl64.Vec3, eyeHeight float64) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{
		Position: player.EyePosition(spawn, eyeHeight),
	}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, camera, component.LookComponent.Kind(), &component.Look{}); err != nil {
		return 0, fmt.Errorf("camera: add look: %w", err)
	}

	cam := &component.Camera{TargetName: "player", EyeHeight: eyeHeight}
	applyCameraSpec(cam, cameraSpec)
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), cam); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}

// ApplyCameraSpec updates the projection of every camera.
func ApplyCameraSpec(w *ecs.World, cameraSpec *prefabs.CameraSpec) {
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		applyCameraSpec(cam, cameraSpec)
	})
}

func applyCameraSpec(cam *component.Camera, cameraSpec *prefabs.CameraSpec) {
	cam.FOV = 75
	cam.Near = 0.1
	cam.Far = 1000
	if cameraSpec == nil {
		return
	}
	if cameraSpec.Target != "" {
		cam.TargetName = cameraSpec.Target
	}
	if cameraSpec.FOVDeg > 0 {
		cam.FOV = cameraSpec.FOVDeg
	}
	if cameraSpec.Near > 0 {
		cam.Near = cameraSpec.Near
	}
	if cameraSpec.Far > cam.Near {
		cam.Far = cameraSpec.Far
	}
}
