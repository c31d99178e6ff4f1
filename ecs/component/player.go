package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/firstperson/player"
)

type Player struct {
	Config       player.Config
	Spawn        mgl64.Vec3
	RespawnBelow float64
}

var PlayerComponent = NewComponent[Player]()

// Jump holds the entity's jump gate and counts successful jumps.
type Jump struct {
	Gate  *player.JumpGate
	Count int
}

var JumpComponent = NewComponent[Jump]()
