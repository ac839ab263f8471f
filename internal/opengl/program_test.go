package opengl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earth-render/internal/opengl"
	"earth-render/internal/opengl/gltest"
	"earth-render/math"
)

func TestNewProgramLinksAndReleasesShaders(t *testing.T) {
	ctx := gltest.New(nil, nil)

	prog, err := opengl.NewProgram(ctx, "vs", "fs")
	require.NoError(t, err)
	require.NotZero(t, prog.ID())

	assert.Len(t, ctx.CallsNamed("AttachShader"), 2)
	assert.Equal(t, 2, ctx.Deleted["shader"])

	prog.Use()
	assert.Equal(t, prog.ID(), ctx.Program)

	prog.Delete()
	assert.Equal(t, 1, ctx.Deleted["program"])
	prog.Delete()
	assert.Equal(t, 1, ctx.Deleted["program"])
}

func TestNewProgramCompileFailure(t *testing.T) {
	ctx := gltest.New(nil, nil)
	ctx.CompileLog[opengl.FRAGMENT_SHADER] = "0:3: syntax error"

	_, err := opengl.NewProgram(ctx, "vs", "fs")
	require.Error(t, err)

	var ce *opengl.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "fragment", ce.Stage)
	assert.Contains(t, ce.Log, "syntax error")
	assert.Empty(t, ctx.CallsNamed("LinkProgram"))
	// Both the failed fragment shader and the compiled vertex shader are freed.
	assert.Equal(t, 2, ctx.Deleted["shader"])
}

func TestNewProgramLinkFailure(t *testing.T) {
	ctx := gltest.New(nil, nil)
	ctx.LinkLog = "varying mismatch"

	_, err := opengl.NewProgram(ctx, "vs", "fs")

	var ce *opengl.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "link", ce.Stage)
	assert.EqualError(t, err, "shader program link failed: varying mismatch")
	assert.Equal(t, 1, ctx.Deleted["program"])
}

func TestGetAttributeAndUniform(t *testing.T) {
	ctx := gltest.New([]string{"position", "tex_coord"}, []string{"time", "view"})
	prog, err := opengl.NewProgram(ctx, "vs", "fs")
	require.NoError(t, err)

	uv, err := opengl.GetAttribute[math.Vec2](prog, "tex_coord")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), uv.Location())
	assert.Equal(t, "tex_coord", uv.Name())

	_, err = opengl.GetAttribute[math.Vec3](prog, "normal")
	var be *opengl.BindingError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "attribute", be.Kind)
	assert.Equal(t, "normal", be.Name)
	assert.ErrorIs(t, err, opengl.ErrBindingNotFound)

	_, err = opengl.GetUniform[float32](prog, "lightdir")
	assert.ErrorIs(t, err, opengl.ErrBindingNotFound)
	assert.Contains(t, err.Error(), `uniform "lightdir"`)

	timeU, err := opengl.GetUniform[float32](prog, "time")
	require.NoError(t, err)
	assert.Equal(t, int32(0), timeU.Location())
}

func TestAttributeBindUsesComponentCount(t *testing.T) {
	ctx := gltest.New([]string{"position", "tex_coord"}, nil)
	prog, err := opengl.NewProgram(ctx, "vs", "fs")
	require.NoError(t, err)

	pos, err := opengl.GetAttribute[math.Vec3](prog, "position")
	require.NoError(t, err)
	uv, err := opengl.GetAttribute[math.Vec2](prog, "tex_coord")
	require.NoError(t, err)

	ctx.Reset()
	pos.Bind(7)
	uv.Bind(9)

	ptrs := ctx.CallsNamed("VertexAttribPointer")
	require.Len(t, ptrs, 2)
	// index, size, stride, offset, bound array buffer
	assert.Equal(t, []any{uint32(0), int32(3), int32(0), 0, uint32(7)}, ptrs[0].Args)
	assert.Equal(t, []any{uint32(1), int32(2), int32(0), 0, uint32(9)}, ptrs[1].Args)

	pos.Enable()
	assert.True(t, ctx.Enabled[0])
	pos.Disable()
	assert.False(t, ctx.Enabled[0])
}

func TestUniformUpload(t *testing.T) {
	ctx := gltest.New(nil, []string{"unit", "time", "eye", "scale", "view"})
	prog, err := opengl.NewProgram(ctx, "vs", "fs")
	require.NoError(t, err)

	unit, _ := opengl.GetUniform[int32](prog, "unit")
	timeU, _ := opengl.GetUniform[float32](prog, "time")
	eye, _ := opengl.GetUniform[math.Vec3](prog, "eye")
	scale, _ := opengl.GetUniform[math.Mat3](prog, "scale")
	view, _ := opengl.GetUniform[math.Mat4](prog, "view")

	unit.Upload(3)
	timeU.Upload(12)
	eye.Upload(math.NewVec3(1, 2, 3))
	scale.Upload(math.Mat3Diagonal(math.NewVec3(2, 3, 4)))
	view.Upload(math.Mat4Translation(math.NewVec3(5, 6, 7)))

	assert.Equal(t, int32(3), ctx.Ints[0])
	assert.Equal(t, float32(12), ctx.Floats[1])
	assert.Equal(t, [3]float32{1, 2, 3}, ctx.Vec3s[2])
	assert.Equal(t, [9]float32{2, 0, 0, 0, 3, 0, 0, 0, 4}, ctx.Mat3s[3])
	m := ctx.Mat4s[4]
	assert.Equal(t, []float32{5, 6, 7, 1}, m[12:16])
}
