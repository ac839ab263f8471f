package opengl

import (
	"errors"
	"fmt"

	"earth-render/math"
	"earth-render/scene"
)

// MaxIndex is the largest vertex index an UNSIGNED_SHORT face buffer holds.
const MaxIndex = 1<<16 - 1

// ErrEmptyMesh is returned when a mesh has no vertices or no faces.
var ErrEmptyMesh = errors.New("mesh has no geometry")

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh: one buffer
// per vertex attribute and a 16-bit face buffer.
type GPUMesh struct {
	ctx Context

	VAO         uint32
	PositionVBO uint32
	NormalVBO   uint32
	UVVBO       uint32
	EBO         uint32
	IndexCount  int32
}

// UploadMesh copies the mesh's vertex streams and faces to the GPU.
func UploadMesh(ctx Context, mesh *scene.Mesh) (*GPUMesh, error) {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("upload %q: %w", mesh.Name, ErrEmptyMesh)
	}

	faces := make([]uint16, len(mesh.Indices))
	for i, idx := range mesh.Indices {
		if idx > MaxIndex || int(idx) >= len(mesh.Vertices) {
			return nil, fmt.Errorf("upload %q: index %d out of range for %d vertices and 16-bit faces",
				mesh.Name, idx, len(mesh.Vertices))
		}
		faces[i] = uint16(idx)
	}

	gpu := &GPUMesh{
		ctx:        ctx,
		IndexCount: int32(len(faces)),
	}

	gpu.VAO = ctx.GenVertexArray()
	ctx.BindVertexArray(gpu.VAO)

	gpu.PositionVBO = uploadBuffer(ctx, ARRAY_BUFFER, mesh.Positions(), len(mesh.Vertices)*3*4)
	gpu.NormalVBO = uploadBuffer(ctx, ARRAY_BUFFER, mesh.Normals(), len(mesh.Vertices)*3*4)
	gpu.UVVBO = uploadBuffer(ctx, ARRAY_BUFFER, mesh.UVs(), len(mesh.Vertices)*2*4)
	gpu.EBO = uploadBuffer(ctx, ELEMENT_ARRAY_BUFFER, faces, len(faces)*2)

	ctx.BindBuffer(ARRAY_BUFFER, 0)
	ctx.BindVertexArray(0)
	return gpu, nil
}

func uploadBuffer(ctx Context, target uint32, data any, size int) uint32 {
	buf := ctx.GenBuffer()
	ctx.BindBuffer(target, buf)
	ctx.BufferData(target, size, data, STATIC_DRAW)
	return buf
}

// BindVertexArray makes the mesh's vertex array current. A core profile
// context needs one bound before attributes are enabled or pointed.
func (m *GPUMesh) BindVertexArray() {
	m.ctx.BindVertexArray(m.VAO)
}

// Bind points the three attributes at the mesh's vertex buffers.
func (m *GPUMesh) Bind(position, normal *Attribute[math.Vec3], uv *Attribute[math.Vec2]) {
	position.Bind(m.PositionVBO)
	normal.Bind(m.NormalVBO)
	uv.Bind(m.UVVBO)
}

// BindFaces binds the face buffer for DrawElements.
func (m *GPUMesh) BindFaces() {
	m.ctx.BindBuffer(ELEMENT_ARRAY_BUFFER, m.EBO)
}

// Unbind releases the array buffer and vertex array bindings. The face
// buffer stays attached to the vertex array.
func (m *GPUMesh) Unbind() {
	m.ctx.BindBuffer(ARRAY_BUFFER, 0)
	m.ctx.BindVertexArray(0)
}

// NumPoints is the number of indices DrawElements should consume.
func (m *GPUMesh) NumPoints() int32 {
	return m.IndexCount
}

// Destroy frees every buffer. m must not be drawn afterwards.
func (m *GPUMesh) Destroy() {
	for _, buf := range []uint32{m.PositionVBO, m.NormalVBO, m.UVVBO, m.EBO} {
		if buf != 0 {
			m.ctx.DeleteBuffer(buf)
		}
	}
	if m.VAO != 0 {
		m.ctx.DeleteVertexArray(m.VAO)
	}
	*m = GPUMesh{ctx: m.ctx}
}
