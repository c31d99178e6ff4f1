package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/prefabs"
)

var (
	defaultGroundColor = color.RGBA{0x66, 0x66, 0x66, 0xff}
	defaultBoxColor    = color.RGBA{0x99, 0x88, 0x77, 0xff}
	defaultBackground  = color.RGBA{0x80, 0x80, 0x80, 0xff}
)

// Scene lists the entities built for the static level.
type Scene struct {
	Ground     ecs.Entity
	Light      ecs.Entity
	Boxes      []ecs.Entity
	Background color.RGBA
}

func NewScene(w *ecs.World) (Scene, error) {
	spec, err := prefabs.LoadSceneSpec()
	if err != nil {
		return Scene{}, fmt.Errorf("scene: load spec: %w", err)
	}
	return NewSceneFromSpec(w, spec)
}

func NewSceneFromSpec(w *ecs.World, spec *prefabs.SceneSpec) (Scene, error) {
	scene := Scene{Background: spec.Background.RGBA8(defaultBackground)}

	size := spec.Ground.Size
	if size <= 0 {
		size = 50
	}
	scene.Ground = ecs.CreateEntity(w)
	if err := ecs.Add(w, scene.Ground, component.GroundComponent.Kind(), &component.Ground{
		Size:  size,
		Color: spec.Ground.Color.RGBA8(defaultGroundColor),
	}); err != nil {
		return Scene{}, fmt.Errorf("scene: add ground: %w", err)
	}

	scene.Light = ecs.CreateEntity(w)
	if err := ecs.Add(w, scene.Light, component.LightComponent.Kind(), &component.Light{
		Ambient:   spec.Light.Ambient,
		Intensity: spec.Light.Intensity,
		Position:  spec.Light.Position.Vec3(),
	}); err != nil {
		return Scene{}, fmt.Errorf("scene: add light: %w", err)
	}

	boxes, err := spec.AllBoxes()
	if err != nil {
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	for _, b := range boxes {
		box := b.Box()
		if err := box.Validate(); err != nil {
			return Scene{}, fmt.Errorf("scene: box %q: %w", b.Name, err)
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.StaticBoxComponent.Kind(), &component.StaticBox{
			Box:   box,
			Color: b.Color.RGBA8(defaultBoxColor),
		}); err != nil {
			return Scene{}, fmt.Errorf("scene: add box %q: %w", b.Name, err)
		}
		scene.Boxes = append(scene.Boxes, e)
	}

	return scene, nil
}
