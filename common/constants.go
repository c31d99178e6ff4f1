package common

import "time"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed update rate of the frame loop.
	TPS          = 60
	TickDuration = time.Second / TPS
	TickSeconds  = 1.0 / TPS

	Gravity = -9.81
)
