package opengl

// Context is the slice of the OpenGL 4.1 core API the renderer needs.
// glcore.Context implements it over go-gl; gltest.Context records calls so
// GPU-facing code can be tested without a window.
//
// Every method must be called on the thread that owns the GL context.
type Context interface {
	// Shaders and programs
	CreateShader(stage uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderInfo(shader uint32) (ok bool, log string)
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramInfo(program uint32) (ok bool, log string)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32

	// Vertex attributes
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size, stride int32, offset int)

	// Uniforms
	Uniform1i(location, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix3fv(location int32, m *[9]float32)
	UniformMatrix4fv(location int32, m *[16]float32)

	// Vertex arrays and buffers
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	// BufferData uploads a slice (of float32, Vec2, Vec3, uint16...) of size
	// bytes to the buffer bound at target.
	BufferData(target uint32, size int, data any, usage uint32)
	DeleteBuffer(buffer uint32)
	DrawElements(mode uint32, count int32, typ uint32, offset int)

	// Textures
	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexParameteri(target, pname uint32, param int32)
	// TexImage2D uploads tightly packed RGBA8 pixels to mip level 0.
	TexImage2D(target uint32, width, height int32, pixels []byte)
	GenerateMipmap(target uint32)
	DeleteTexture(texture uint32)
	MaxTextureSize() int32

	// Frame state
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Enable(capability uint32)
	DepthFunc(fn uint32)
}

// OpenGL enum values used through Context. They mirror the go-gl constants;
// glcore checks that they agree.
const (
	TRIANGLES = 0x0004

	UNSIGNED_SHORT = 0x1403
	FLOAT          = 0x1406

	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	STATIC_DRAW          = 0x88E4

	VERTEX_SHADER   = 0x8B31
	FRAGMENT_SHADER = 0x8B30

	TEXTURE_2D           = 0x0DE1
	TEXTURE0             = 0x84C0
	TEXTURE_WRAP_S       = 0x2802
	TEXTURE_WRAP_T       = 0x2803
	TEXTURE_MIN_FILTER   = 0x2801
	TEXTURE_MAG_FILTER   = 0x2800
	REPEAT               = 0x2901
	CLAMP_TO_EDGE        = 0x812F
	LINEAR               = 0x2601
	LINEAR_MIPMAP_LINEAR = 0x2703

	COLOR_BUFFER_BIT = 0x4000
	DEPTH_BUFFER_BIT = 0x0100
	DEPTH_TEST       = 0x0B71
	LESS             = 0x0201
	MULTISAMPLE      = 0x809D
)

// stageName labels a shader stage in errors and logs.
func stageName(stage uint32) string {
	switch stage {
	case VERTEX_SHADER:
		return "vertex"
	case FRAGMENT_SHADER:
		return "fragment"
	}
	return "unknown"
}
