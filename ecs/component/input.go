package component

import "github.com/milk9111/firstperson/input"

// Input stores the logical key snapshot taken at the start of the frame.
type Input struct {
	Keys input.KeyState
}

var InputComponent = NewComponent[Input]()

// Look stores the frame's look orientation. The controller only reads it.
type Look struct {
	Orientation input.Orientation
}

var LookComponent = NewComponent[Look]()
