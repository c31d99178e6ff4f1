package component

import "github.com/go-gl/mathgl/mgl64"

type Camera struct {
	TargetName string
	EyeHeight  float64
	FOV        float64
	Near       float64
	Far        float64
}

var CameraComponent = NewComponent[Camera]()

// Light describes the scene lighting used to shade box faces.
type Light struct {
	Ambient   float64
	Position  mgl64.Vec3
	Intensity float64
}

var LightComponent = NewComponent[Light]()
