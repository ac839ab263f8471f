package scene

import (
	"github.com/chewxy/math32"

	reMath "earth-render/math"
)

// MatrixUploader receives a matrix destined for a shader uniform.
// *opengl.Uniform[math.Mat4] satisfies it.
type MatrixUploader interface {
	Upload(m reMath.Mat4)
}

// Camera represents a perspective view camera looking at Target.
type Camera struct {
	Position    reMath.Vec3
	Target      reMath.Vec3
	Up          reMath.Vec3
	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	// Cached matrices
	viewMatrix       reMath.Mat4
	projectionMatrix reMath.Mat4
	dirty            bool
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Position:    reMath.Vec3Back,
		Target:      reMath.Vec3Zero,
		Up:          reMath.Vec3Up,
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		dirty:       true,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 && width/height != c.AspectRatio {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

func (c *Camera) SetPosition(pos reMath.Vec3) {
	c.Position = pos
	c.dirty = true
}

func (c *Camera) LookAt(target, up reMath.Vec3) {
	c.Target = target
	c.Up = up
	c.dirty = true
}

func (c *Camera) GetViewMatrix() reMath.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix
}

func (c *Camera) GetProjectionMatrix() reMath.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.projectionMatrix
}

// Eye returns the world-space camera position.
func (c *Camera) Eye() reMath.Vec3 {
	return c.Position
}

// NumPasses is the number of render passes the camera needs per frame.
// A mono camera renders once.
func (c *Camera) NumPasses() int {
	return 1
}

// Upload writes the projection and view matrices for the given pass.
func (c *Camera) Upload(pass int, proj, view MatrixUploader) {
	proj.Upload(c.GetProjectionMatrix())
	view.Upload(c.GetViewMatrix())
}

func (c *Camera) updateMatrices() {
	c.viewMatrix = reMath.Mat4LookAt(c.Position, c.Target, c.Up)
	c.projectionMatrix = reMath.Mat4Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
	c.dirty = false
}

// OrbitCamera is a specialized camera for orbiting around a target
type OrbitCamera struct {
	Camera
	Distance    float32
	MinDistance float32
	Yaw         float32
	Pitch       float32
}

func NewOrbitCamera(target reMath.Vec3, distance, fov, aspectRatio float32) *OrbitCamera {
	c := &OrbitCamera{
		Distance:    distance,
		MinDistance: 0.1,
	}
	c.Camera = *NewCamera(fov, aspectRatio, 0.01, 1000.0)
	c.Target = target
	c.UpdatePosition()
	return c
}

func (c *OrbitCamera) UpdatePosition() {
	// Stay clear of the poles so the up vector never lines up with the view direction
	if c.Pitch > 1.5 {
		c.Pitch = 1.5
	}
	if c.Pitch < -1.5 {
		c.Pitch = -1.5
	}

	cosPitch := math32.Cos(c.Pitch)
	sinPitch := math32.Sin(c.Pitch)
	cosYaw := math32.Cos(c.Yaw)
	sinYaw := math32.Sin(c.Yaw)

	offset := reMath.Vec3{
		X: c.Distance * cosPitch * sinYaw,
		Y: c.Distance * sinPitch,
		Z: c.Distance * cosPitch * cosYaw,
	}

	c.SetPosition(c.Target.Add(offset))
	c.LookAt(c.Target, reMath.Vec3Up)
}

func (c *OrbitCamera) Orbit(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	c.UpdatePosition()
}

func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance += delta
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	c.UpdatePosition()
}
