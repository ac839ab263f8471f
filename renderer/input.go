package renderer

import (
	"earth-render/core"
	"earth-render/scene"
)

// Input is the window input an OrbitController polls. *core.Window
// satisfies it.
type Input interface {
	GetCursorPos() (float64, float64)
	IsMouseButtonPressed(button int) bool
	IsKeyPressed(key int) bool
	SetScrollCallback(cb core.ScrollCallback)
}

// OrbitController turns mouse input into orbit camera motion: dragging with
// the left button orbits, the wheel zooms and Escape quits.
type OrbitController struct {
	input  Input
	camera *scene.OrbitCamera

	RotateSpeed float32 // radians per pixel dragged
	ZoomSpeed   float32 // distance per wheel notch

	lastMouseX, lastMouseY float64
	scrollDelta            float64
	firstFrame             bool
}

func NewOrbitController(input Input, camera *scene.OrbitCamera) *OrbitController {
	c := &OrbitController{
		input:       input,
		camera:      camera,
		RotateSpeed: 0.01,
		ZoomSpeed:   0.1,
		firstFrame:  true,
	}

	input.SetScrollCallback(func(xoff, yoff float64) {
		c.scrollDelta += yoff
	})

	return c
}

// Update should be called once per frame, after events are polled.
func (c *OrbitController) Update() bool {
	x, y := c.input.GetCursorPos()
	if c.firstFrame {
		c.lastMouseX = x
		c.lastMouseY = y
		c.firstFrame = false
	}
	dx := x - c.lastMouseX
	dy := y - c.lastMouseY
	c.lastMouseX = x
	c.lastMouseY = y

	if c.input.IsMouseButtonPressed(core.MouseButtonLeft) && (dx != 0 || dy != 0) {
		// Dragging right spins the globe right, so the camera moves left.
		c.camera.Orbit(-float32(dx)*c.RotateSpeed, float32(dy)*c.RotateSpeed)
	}

	if c.scrollDelta != 0 {
		c.camera.Zoom(-float32(c.scrollDelta) * c.ZoomSpeed)
		c.scrollDelta = 0
	}

	return c.input.IsKeyPressed(core.KeyEscape)
}
