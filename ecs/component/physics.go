package component

import (
	"image/color"

	"github.com/milk9111/firstperson/physics"
)

// PhysicsBody stores the runtime capsule and its collider configuration. Body
// stays nil until the physics system creates it.
type PhysicsBody struct {
	Body       *physics.Body
	Radius     float64
	HalfHeight float64
	Mass       float64
}

func (p *PhysicsBody) Capsule() physics.Capsule {
	return physics.Capsule{Radius: p.Radius, HalfHeight: p.HalfHeight, Mass: p.Mass}
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Ground is the square floor plane at y=0.
type Ground struct {
	Size  float64
	Color color.RGBA
}

var GroundComponent = NewComponent[Ground]()

// StaticBox is one solid block of the static mesh.
type StaticBox struct {
	Box   physics.Box
	Color color.RGBA
}

var StaticBoxComponent = NewComponent[StaticBox]()
