package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/firstperson/input"
)

// controls polls ebiten once per frame. Key transitions go to the device as
// events; pointer motion drives the look controls while the cursor is
// captured. Clicking captures the pointer and Esc releases it.
type controls struct {
	device *input.Device
	look   *input.Look
	held   map[input.Code]struct{}

	lastX, lastY int
	primed       bool
}

func newControls(device *input.Device, look *input.Look) *controls {
	return &controls{device: device, look: look, held: make(map[input.Code]struct{})}
}

func (c *controls) update() {
	if !ebiten.IsFocused() {
		c.releaseAll()
		c.unlock()
		return
	}

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		code := input.Code(k.String())
		c.held[code] = struct{}{}
		c.device.KeyDown(code)
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		code := input.Code(k.String())
		delete(c.held, code)
		c.device.KeyUp(code)
	}

	switch {
	case c.look.Locked() && (inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.CursorMode() != ebiten.CursorModeCaptured):
		c.unlock()
	case !c.look.Locked() && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		c.lock()
	}

	if !c.look.Locked() {
		return
	}
	x, y := ebiten.CursorPosition()
	if c.primed {
		c.look.Move(float64(x-c.lastX), float64(y-c.lastY))
	}
	c.lastX, c.lastY = x, y
	c.primed = true
}

func (c *controls) locked() bool {
	return c.look.Locked()
}

func (c *controls) lock() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	c.look.Lock()
	c.primed = false
}

func (c *controls) unlock() {
	if !c.look.Locked() {
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	c.look.Unlock()
}

// releaseAll sends a key-up for every held key, so nothing sticks when focus
// is lost mid-press.
func (c *controls) releaseAll() {
	for code := range c.held {
		c.device.KeyUp(code)
	}
	clear(c.held)
}
