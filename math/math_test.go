package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-5

func assertFlatEqual(t *testing.T, want mgl32.Mat4, got [16]float32) {
	t.Helper()
	for i := range got {
		assert.InDelta(t, want[i], got[i], tolerance, "element %d", i)
	}
}

func assertVec3InDelta(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, "X")
	assert.InDelta(t, want.Y, got.Y, tolerance, "Y")
	assert.InDelta(t, want.Z, got.Z, tolerance, "Z")
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, float32(32), v1.Dot(v2))

	// Right x Up = Front in a right-handed system
	assert.Equal(t, Vec3Front, Vec3Right.Cross(Vec3Up))
}

func TestVec3Normalize(t *testing.T) {
	assert.Equal(t, NewVec3(1, 0, 0), NewVec3(3, 0, 0).Normalize())
	assert.InDelta(t, 1, NewVec3(1, -2, 7).Normalize().Length(), tolerance)
	assert.Equal(t, Vec3Zero, Vec3Zero.Normalize())
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	assert.Equal(t, translation, NewVec4(0, 0, 0, 1).MulMat(m).ToVec3())
	assertFlatEqual(t, mgl32.Translate3D(1, 2, 3), m.Flat())
}

func TestMat4MulIdentity(t *testing.T) {
	m := Mat4Translation(NewVec3(4, 5, 6))
	assert.Equal(t, m, m.Mul(Mat4Identity()))
	assert.Equal(t, m, Mat4Identity().Mul(m))
}

func TestMat4PerspectiveMatchesMathgl(t *testing.T) {
	fov := float32(math32.Pi / 4)
	got := Mat4Perspective(fov, 16.0/9.0, 0.1, 100)
	assertFlatEqual(t, mgl32.Perspective(fov, 16.0/9.0, 0.1, 100), got.Flat())
}

func TestMat4LookAtMatchesMathgl(t *testing.T) {
	eye := NewVec3(1, 2, 5)
	got := Mat4LookAt(eye, Vec3Zero, Vec3Up)
	want := mgl32.LookAtV(mgl32.Vec3{1, 2, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assertFlatEqual(t, want, got.Flat())

	// The eye maps to the origin of view space.
	assertVec3InDelta(t, Vec3Zero, got.MulVec(eye.ToVec4(1)).ToVec3())
}

func TestQuaternionMatchesMathgl(t *testing.T) {
	axis := NewVec3(1, 1, 0).Normalize()
	angle := float32(0.7)

	q := QuaternionFromAxisAngle(axis, angle)
	want := mgl32.QuatRotate(angle, mgl32.Vec3{axis.X, axis.Y, axis.Z})

	v := NewVec3(0.3, -2, 1)
	r := want.Rotate(mgl32.Vec3{v.X, v.Y, v.Z})
	assertVec3InDelta(t, NewVec3(r.X(), r.Y(), r.Z()), q.RotateVector(v))
	assertFlatEqual(t, want.Mat4(), q.ToMat4().Flat())
}

func TestQuaternionRotation(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3Up, math32.Pi/2)
	assertVec3InDelta(t, NewVec3(0, 0, -1), q.RotateVector(Vec3Right))

	// Composition applies the right-hand rotation first.
	half := QuaternionFromAxisAngle(Vec3Up, math32.Pi/4)
	assertVec3InDelta(t, q.RotateVector(Vec3Front), half.Mul(half).RotateVector(Vec3Front))
}

func TestMat4IsometryMatchesMathgl(t *testing.T) {
	rot := QuaternionFromAxisAngle(Vec3Up, 0.5)
	pos := NewVec3(1, -2, 3)

	want := mgl32.Translate3D(1, -2, 3).Mul4(mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0}).Mat4())
	assertFlatEqual(t, want, Mat4Isometry(pos, rot).Flat())

	// Rotation happens before translation.
	p := NewVec4(1, 0, 0, 1).MulMat(Mat4Isometry(pos, rot)).ToVec3()
	assertVec3InDelta(t, rot.RotateVector(Vec3Right).Add(pos), p)
}

func TestMat3Diagonal(t *testing.T) {
	m := Mat3Diagonal(NewVec3(2, 3, 4))
	assert.Equal(t, NewVec3(2, 3, 4), m.MulVec3(Vec3One))
	assert.Equal(t, [9]float32{2, 0, 0, 0, 3, 0, 0, 0, 4}, m.Flat())
	assert.Equal(t, Mat3Identity(), Mat3Diagonal(Vec3One))
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Translation(NewVec3(1, 2, 3))

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
