package core

import (
	"earth-render/math"
)

// Color is an RGBA colour with float components, usually in [0,1].
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// Mul multiplies two colours component-wise.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// Scale multiplies every component by s.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Mix linearly interpolates from c to o by t, like GLSL mix(c, o, t).
// t is not clamped.
func (c Color) Mix(o Color, t float32) Color {
	return c.MixColor(o, Color{t, t, t, t})
}

// MixColor interpolates with a per-component weight, like GLSL mix with a
// vec4 third argument.
func (c Color) MixColor(o Color, t Color) Color {
	return Color{
		R: c.R + (o.R-c.R)*t.R,
		G: c.G + (o.G-c.G)*t.G,
		B: c.B + (o.B-c.B)*t.B,
		A: c.A + (o.A-c.A)*t.A,
	}
}

// Vertex is the CPU-side vertex layout shared by every mesh.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.QuaternionIdentity(),
		Scale:    math.Vec3One,
	}
}

// Isometry returns the rotation+translation part of the transform as a
// homogeneous matrix. Scale is left out; callers that need it upload it
// separately.
func (t Transform) Isometry() math.Mat4 {
	return math.Mat4Isometry(t.Position, t.Rotation)
}
