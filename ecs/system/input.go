package system

import (
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/input"
)

// KeySource reports the current logical key state.
type KeySource interface {
	State() input.KeyState
}

// InputSystem copies the key snapshot into every Input component once per
// frame so later systems see a consistent state.
type InputSystem struct {
	source KeySource
}

func NewInputSystem(source KeySource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var keys input.KeyState
	if i.source != nil {
		keys = i.source.State()
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.Keys = keys
	})
}

// OrientationSource reports the current look orientation.
type OrientationSource interface {
	Orientation() input.Orientation
}

type LookSystem struct {
	source OrientationSource
}

func NewLookSystem(source OrientationSource) *LookSystem {
	return &LookSystem{source: source}
}

func (l *LookSystem) Update(w *ecs.World) {
	if w == nil || l.source == nil {
		return
	}

	o := l.source.Orientation()
	ecs.ForEach(w, component.LookComponent.Kind(), func(_ ecs.Entity, look *component.Look) {
		look.Orientation = o
	})
}
