package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"earth-render/core"
	"earth-render/math"
	"earth-render/scene"
)

type fakeInput struct {
	x, y    float64
	buttons map[int]bool
	keys    map[int]bool
	scroll  core.ScrollCallback
}

func newFakeInput() *fakeInput {
	return &fakeInput{buttons: map[int]bool{}, keys: map[int]bool{}}
}

func (in *fakeInput) GetCursorPos() (float64, float64)         { return in.x, in.y }
func (in *fakeInput) IsMouseButtonPressed(button int) bool     { return in.buttons[button] }
func (in *fakeInput) IsKeyPressed(key int) bool                { return in.keys[key] }
func (in *fakeInput) SetScrollCallback(cb core.ScrollCallback) { in.scroll = cb }

func TestOrbitControllerDrag(t *testing.T) {
	in := newFakeInput()
	in.x, in.y = 100, 100
	cam := scene.NewOrbitCamera(math.Vec3Zero, 1.6, 0.8, 1)
	c := NewOrbitController(in, cam)

	// Moving without a button held does nothing.
	in.x = 150
	assert.False(t, c.Update())
	assert.Zero(t, cam.Yaw)

	in.buttons[core.MouseButtonLeft] = true
	in.x, in.y = 160, 120
	c.Update()
	assert.InDelta(t, -0.1, cam.Yaw, 1e-6)
	assert.InDelta(t, 0.2, cam.Pitch, 1e-6)
	assert.InDelta(t, 1.6, cam.Eye().Length(), 1e-5)
}

func TestOrbitControllerScrollZooms(t *testing.T) {
	in := newFakeInput()
	cam := scene.NewOrbitCamera(math.Vec3Zero, 1.6, 0.8, 1)
	c := NewOrbitController(in, cam)

	in.scroll(0, 2)
	c.Update()
	assert.InDelta(t, 1.4, cam.Distance, 1e-6)

	// The wheel delta is consumed.
	c.Update()
	assert.InDelta(t, 1.4, cam.Distance, 1e-6)
}

func TestOrbitControllerEscapeQuits(t *testing.T) {
	in := newFakeInput()
	c := NewOrbitController(in, scene.NewOrbitCamera(math.Vec3Zero, 1.6, 0.8, 1))

	assert.False(t, c.Update())
	in.keys[core.KeyEscape] = true
	assert.True(t, c.Update())
}
