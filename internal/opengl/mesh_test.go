package opengl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earth-render/core"
	"earth-render/internal/opengl"
	"earth-render/internal/opengl/gltest"
	"earth-render/math"
	"earth-render/scene"
)

func TestUploadMeshSplitsStreams(t *testing.T) {
	ctx := gltest.New([]string{"position", "normal", "tex_coord"}, nil)
	sphere := scene.CreateSphere(1, 16, 8)

	gpu, err := opengl.UploadMesh(ctx, sphere)
	require.NoError(t, err)

	assert.Equal(t, int32(len(sphere.Indices)), gpu.NumPoints())
	assert.Equal(t, sphere.Positions(), ctx.Buffers[gpu.PositionVBO])
	assert.Equal(t, sphere.Normals(), ctx.Buffers[gpu.NormalVBO])
	assert.Equal(t, sphere.UVs(), ctx.Buffers[gpu.UVVBO])

	faces, ok := ctx.Buffers[gpu.EBO].([]uint16)
	require.True(t, ok)
	require.Len(t, faces, len(sphere.Indices))
	for i, idx := range sphere.Indices {
		assert.Equal(t, uint16(idx), faces[i])
	}

	assert.Equal(t, gpu.EBO, ctx.ElementBuffer[gpu.VAO])
	assert.Zero(t, ctx.VertexArray)
	assert.Zero(t, ctx.ArrayBuffer)
}

func TestUploadMeshRejectsWideIndices(t *testing.T) {
	ctx := gltest.New(nil, nil)
	verts := make([]core.Vertex, opengl.MaxIndex+2)
	mesh := scene.CreateMeshFromData("big", verts, []uint32{0, 1, opengl.MaxIndex + 1})

	_, err := opengl.UploadMesh(ctx, mesh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "16-bit")
	assert.Empty(t, ctx.CallsNamed("GenBuffer"))
}

func TestUploadMeshRejectsEmpty(t *testing.T) {
	_, err := opengl.UploadMesh(gltest.New(nil, nil), scene.CreateMeshFromData("none", nil, nil))
	assert.True(t, errors.Is(err, opengl.ErrEmptyMesh))
}

func TestGPUMeshBindAndDestroy(t *testing.T) {
	ctx := gltest.New([]string{"position", "normal", "tex_coord"}, nil)
	prog, err := opengl.NewProgram(ctx, "vs", "fs")
	require.NoError(t, err)
	pos, _ := opengl.GetAttribute[math.Vec3](prog, "position")
	norm, _ := opengl.GetAttribute[math.Vec3](prog, "normal")
	uv, _ := opengl.GetAttribute[math.Vec2](prog, "tex_coord")

	gpu, err := opengl.UploadMesh(ctx, scene.CreateSphere(1, 4, 2))
	require.NoError(t, err)

	ctx.Reset()
	gpu.BindVertexArray()
	gpu.Bind(pos, norm, uv)
	gpu.BindFaces()
	assert.Equal(t, gpu.VAO, ctx.VertexArray)
	assert.Equal(t, gpu.EBO, ctx.ElementBuffer[gpu.VAO])

	ptrs := ctx.CallsNamed("VertexAttribPointer")
	require.Len(t, ptrs, 3)
	assert.Equal(t, gpu.PositionVBO, ptrs[0].Args[4])
	assert.Equal(t, gpu.NormalVBO, ptrs[1].Args[4])
	assert.Equal(t, gpu.UVVBO, ptrs[2].Args[4])

	gpu.Unbind()
	assert.Zero(t, ctx.VertexArray)
	assert.Zero(t, ctx.ArrayBuffer)

	gpu.Destroy()
	assert.Equal(t, 4, ctx.Deleted["buffer"])
	assert.Equal(t, 1, ctx.Deleted["vertexarray"])
	assert.Zero(t, gpu.VAO)
}
