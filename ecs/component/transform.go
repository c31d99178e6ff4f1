package component

import "github.com/go-gl/mathgl/mgl64"

type Transform struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Grounded bool
}

var TransformComponent = NewComponent[Transform]()
