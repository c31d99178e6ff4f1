package entity

import (
	"fmt"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/player"
	"github.com/milk9111/firstperson/prefabs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec)
}

// NewPlayerFromSpec builds the player at its spawn point. The physics body is
// created later by the physics system.
func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	cfg, err := spec.Config()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	spawn := spec.SpawnPoint()
	capsule := spec.Capsule()
	if err := capsule.Validate(); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		Config:       cfg,
		Spawn:        spawn,
		RespawnBelow: spec.KillHeight(),
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.LookComponent.Kind(), &component.Look{}); err != nil {
		return 0, fmt.Errorf("player: add look: %w", err)
	}
	if err := ecs.Add(w, e, component.JumpComponent.Kind(), &component.Jump{Gate: player.NewJumpGate(cfg.JumpCooldown)}); err != nil {
		return 0, fmt.Errorf("player: add jump: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: spawn}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:     capsule.Radius,
		HalfHeight: capsule.HalfHeight,
		Mass:       capsule.Mass,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	return e, nil
}

// ApplyPlayerSpec swaps in new tuning for a live player. The collider keeps
// its shape and a cooldown already running keeps its remaining time.
func ApplyPlayerSpec(w *ecs.World, e ecs.Entity, spec *prefabs.PlayerSpec) error {
	cfg, err := spec.Config()
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	pl, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("player: entity %s has no player component", e)
	}
	pl.Config = cfg
	pl.Spawn = spec.SpawnPoint()
	pl.RespawnBelow = spec.KillHeight()

	if jump, ok := ecs.Get(w, e, component.JumpComponent.Kind()); ok && jump.Gate != nil {
		jump.Gate.Cooldown = cfg.JumpCooldown
	}
	if cam, ok := w.First(component.CameraComponent.Kind()); ok {
		if c, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok {
			c.EyeHeight = cfg.EyeHeight
		}
	}
	return nil
}
