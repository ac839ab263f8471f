// Package gltest provides an in-memory opengl.Context that records every
// call and tracks the binding state a real driver would.
package gltest

import (
	"fmt"

	"earth-render/internal/opengl"
)

// Call is one recorded Context method invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Draw captures a DrawElements call together with the state it ran under.
type Draw struct {
	Mode, Type    uint32
	Count         int32
	Offset        int
	Program       uint32
	VertexArray   uint32
	ElementBuffer uint32
	// Units maps texture unit index to the bound texture.
	Units map[uint32]uint32
	// Enabled lists the attribute locations enabled at draw time.
	Enabled map[uint32]bool
}

// Context implements opengl.Context without a GPU.
type Context struct {
	// Attribs and Uniforms map names to locations. Names absent from the
	// map resolve to -1, as an unknown name does in GL.
	Attribs  map[string]int32
	Uniforms map[string]int32

	// CompileLog, when set for a stage, makes that stage fail to compile.
	CompileLog map[uint32]string
	// LinkLog, when non-empty, makes linking fail.
	LinkLog string

	MaxTexture int32

	Calls []Call
	Draws []Draw

	Program       uint32
	VertexArray   uint32
	ArrayBuffer   uint32
	ActiveUnit    uint32
	Units         map[uint32]uint32
	TexParams     map[uint32]map[uint32]int32
	TexSizes      map[uint32][2]int32
	Enabled       map[uint32]bool
	Capabilities  map[uint32]bool
	Buffers       map[uint32]any
	ElementBuffer map[uint32]uint32 // vertex array -> face buffer

	Ints   map[int32]int32
	Floats map[int32]float32
	Vec3s  map[int32][3]float32
	Mat3s  map[int32][9]float32
	Mat4s  map[int32][16]float32

	Deleted map[string]int

	ViewportSize [2]int32

	stages map[uint32]uint32
	nextID uint32
}

var _ opengl.Context = (*Context)(nil)

// New returns a Context that resolves the given attribute and uniform names
// to consecutive locations starting at 0.
func New(attribs, uniforms []string) *Context {
	c := &Context{
		Attribs:       map[string]int32{},
		Uniforms:      map[string]int32{},
		CompileLog:    map[uint32]string{},
		MaxTexture:    16384,
		Units:         map[uint32]uint32{},
		TexParams:     map[uint32]map[uint32]int32{},
		TexSizes:      map[uint32][2]int32{},
		Enabled:       map[uint32]bool{},
		Capabilities:  map[uint32]bool{},
		Buffers:       map[uint32]any{},
		ElementBuffer: map[uint32]uint32{},
		Ints:          map[int32]int32{},
		Floats:        map[int32]float32{},
		Vec3s:         map[int32][3]float32{},
		Mat3s:         map[int32][9]float32{},
		Mat4s:         map[int32][16]float32{},
		Deleted:       map[string]int{},
		stages:        map[uint32]uint32{},
	}
	for i, name := range attribs {
		c.Attribs[name] = int32(i)
	}
	for i, name := range uniforms {
		c.Uniforms[name] = int32(i)
	}
	return c
}

func (c *Context) record(name string, args ...any) {
	c.Calls = append(c.Calls, Call{Name: name, Args: args})
}

func (c *Context) id() uint32 {
	c.nextID++
	return c.nextID
}

// CallsNamed returns the recorded calls with the given method name.
func (c *Context) CallsNamed(name string) []Call {
	var out []Call
	for _, call := range c.Calls {
		if call.Name == name {
			out = append(out, call)
		}
	}
	return out
}

// Reset forgets recorded calls and draws but keeps the binding state.
func (c *Context) Reset() {
	c.Calls = nil
	c.Draws = nil
}

// UniformLocation returns the location of a uniform by name, or -1.
func (c *Context) UniformLocation(name string) int32 {
	if loc, ok := c.Uniforms[name]; ok {
		return loc
	}
	return -1
}

// ── Shaders and programs ──────────────────────────────────────────────────────

func (c *Context) CreateShader(stage uint32) uint32 {
	id := c.id()
	c.stages[id] = stage
	c.record("CreateShader", stage)
	return id
}

func (c *Context) ShaderSource(shader uint32, src string) {
	c.record("ShaderSource", shader, src)
}

func (c *Context) CompileShader(shader uint32) {
	c.record("CompileShader", shader)
}

func (c *Context) ShaderInfo(shader uint32) (bool, string) {
	if log, ok := c.CompileLog[c.stages[shader]]; ok {
		return false, log
	}
	return true, ""
}

func (c *Context) DeleteShader(shader uint32) {
	c.Deleted["shader"]++
	c.record("DeleteShader", shader)
}

func (c *Context) CreateProgram() uint32 {
	id := c.id()
	c.record("CreateProgram")
	return id
}

func (c *Context) AttachShader(program, shader uint32) {
	c.record("AttachShader", program, shader)
}

func (c *Context) LinkProgram(program uint32) {
	c.record("LinkProgram", program)
}

func (c *Context) ProgramInfo(program uint32) (bool, string) {
	if c.LinkLog != "" {
		return false, c.LinkLog
	}
	return true, ""
}

func (c *Context) UseProgram(program uint32) {
	c.Program = program
	c.record("UseProgram", program)
}

func (c *Context) DeleteProgram(program uint32) {
	c.Deleted["program"]++
	c.record("DeleteProgram", program)
}

func (c *Context) GetAttribLocation(program uint32, name string) int32 {
	if loc, ok := c.Attribs[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	return c.UniformLocation(name)
}

// ── Vertex attributes ─────────────────────────────────────────────────────────

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.Enabled[index] = true
	c.record("EnableVertexAttribArray", index)
}

func (c *Context) DisableVertexAttribArray(index uint32) {
	delete(c.Enabled, index)
	c.record("DisableVertexAttribArray", index)
}

func (c *Context) VertexAttribPointer(index uint32, size, stride int32, offset int) {
	c.record("VertexAttribPointer", index, size, stride, offset, c.ArrayBuffer)
}

// ── Uniforms ──────────────────────────────────────────────────────────────────

func (c *Context) Uniform1i(location, v int32) {
	c.Ints[location] = v
	c.record("Uniform1i", location, v)
}

func (c *Context) Uniform1f(location int32, v float32) {
	c.Floats[location] = v
	c.record("Uniform1f", location, v)
}

func (c *Context) Uniform3f(location int32, x, y, z float32) {
	c.Vec3s[location] = [3]float32{x, y, z}
	c.record("Uniform3f", location, x, y, z)
}

func (c *Context) UniformMatrix3fv(location int32, m *[9]float32) {
	c.Mat3s[location] = *m
	c.record("UniformMatrix3fv", location, *m)
}

func (c *Context) UniformMatrix4fv(location int32, m *[16]float32) {
	c.Mat4s[location] = *m
	c.record("UniformMatrix4fv", location, *m)
}

// ── Vertex arrays and buffers ─────────────────────────────────────────────────

func (c *Context) GenVertexArray() uint32 {
	id := c.id()
	c.record("GenVertexArray")
	return id
}

func (c *Context) BindVertexArray(vao uint32) {
	c.VertexArray = vao
	c.record("BindVertexArray", vao)
}

func (c *Context) DeleteVertexArray(vao uint32) {
	c.Deleted["vertexarray"]++
	c.record("DeleteVertexArray", vao)
}

func (c *Context) GenBuffer() uint32 {
	id := c.id()
	c.record("GenBuffer")
	return id
}

func (c *Context) BindBuffer(target, buffer uint32) {
	switch target {
	case opengl.ARRAY_BUFFER:
		c.ArrayBuffer = buffer
	case opengl.ELEMENT_ARRAY_BUFFER:
		c.ElementBuffer[c.VertexArray] = buffer
	}
	c.record("BindBuffer", target, buffer)
}

func (c *Context) BufferData(target uint32, size int, data any, usage uint32) {
	var bound uint32
	switch target {
	case opengl.ARRAY_BUFFER:
		bound = c.ArrayBuffer
	case opengl.ELEMENT_ARRAY_BUFFER:
		bound = c.ElementBuffer[c.VertexArray]
	}
	c.Buffers[bound] = data
	c.record("BufferData", target, size, usage)
}

func (c *Context) DeleteBuffer(buffer uint32) {
	delete(c.Buffers, buffer)
	c.Deleted["buffer"]++
	c.record("DeleteBuffer", buffer)
}

func (c *Context) DrawElements(mode uint32, count int32, typ uint32, offset int) {
	units := make(map[uint32]uint32, len(c.Units))
	for k, v := range c.Units {
		units[k] = v
	}
	enabled := make(map[uint32]bool, len(c.Enabled))
	for k, v := range c.Enabled {
		enabled[k] = v
	}
	c.Draws = append(c.Draws, Draw{
		Mode:          mode,
		Type:          typ,
		Count:         count,
		Offset:        offset,
		Program:       c.Program,
		VertexArray:   c.VertexArray,
		ElementBuffer: c.ElementBuffer[c.VertexArray],
		Units:         units,
		Enabled:       enabled,
	})
	c.record("DrawElements", mode, count, typ, offset)
}

// ── Textures ──────────────────────────────────────────────────────────────────

func (c *Context) GenTexture() uint32 {
	id := c.id()
	c.record("GenTexture")
	return id
}

func (c *Context) ActiveTexture(unit uint32) {
	c.ActiveUnit = unit - opengl.TEXTURE0
	c.record("ActiveTexture", unit)
}

func (c *Context) BindTexture(target, texture uint32) {
	c.Units[c.ActiveUnit] = texture
	c.record("BindTexture", target, texture)
}

func (c *Context) TexParameteri(target, pname uint32, param int32) {
	tex := c.Units[c.ActiveUnit]
	if c.TexParams[tex] == nil {
		c.TexParams[tex] = map[uint32]int32{}
	}
	c.TexParams[tex][pname] = param
	c.record("TexParameteri", target, pname, param)
}

func (c *Context) TexImage2D(target uint32, width, height int32, pixels []byte) {
	c.TexSizes[c.Units[c.ActiveUnit]] = [2]int32{width, height}
	c.record("TexImage2D", target, width, height, len(pixels))
}

func (c *Context) GenerateMipmap(target uint32) {
	c.record("GenerateMipmap", target)
}

func (c *Context) DeleteTexture(texture uint32) {
	delete(c.TexSizes, texture)
	c.Deleted["texture"]++
	c.record("DeleteTexture", texture)
}

func (c *Context) MaxTextureSize() int32 {
	return c.MaxTexture
}

// ── Frame state ───────────────────────────────────────────────────────────────

func (c *Context) Viewport(x, y, width, height int32) {
	c.ViewportSize = [2]int32{width, height}
	c.record("Viewport", x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.record("ClearColor", r, g, b, a)
}

func (c *Context) Clear(mask uint32) {
	c.record("Clear", mask)
}

func (c *Context) Enable(capability uint32) {
	c.Capabilities[capability] = true
	c.record("Enable", capability)
}

func (c *Context) DepthFunc(fn uint32) {
	c.record("DepthFunc", fn)
}
