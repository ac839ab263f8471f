package opengl

import (
	"errors"
	"fmt"

	"earth-render/math"
)

// ErrBindingNotFound is wrapped by every BindingError.
var ErrBindingNotFound = errors.New("shader binding not found")

// CompileError reports a shader stage that failed to compile, or a program
// that failed to link (Stage "link"), with the driver's info log.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Stage == "link" {
		return fmt.Sprintf("shader program link failed: %s", e.Log)
	}
	return fmt.Sprintf("%s shader compile failed: %s", e.Stage, e.Log)
}

// BindingError reports an attribute or uniform name with no location in a
// linked program. The GLSL compiler drops inputs the shader never reads, so
// a typo and an unused input look the same here.
type BindingError struct {
	Kind string // "attribute" or "uniform"
	Name string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("%s %q not found in shader program", e.Kind, e.Name)
}

func (e *BindingError) Unwrap() error { return ErrBindingNotFound }

// Program is a linked shader program.
type Program struct {
	ctx Context
	id  uint32
}

// NewProgram compiles both stages and links them. The shader objects are
// released whether or not linking succeeds.
func NewProgram(ctx Context, vertSrc, fragSrc string) (*Program, error) {
	vert, err := compileShader(ctx, vertSrc, VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer ctx.DeleteShader(vert)

	frag, err := compileShader(ctx, fragSrc, FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer ctx.DeleteShader(frag)

	prog := ctx.CreateProgram()
	ctx.AttachShader(prog, vert)
	ctx.AttachShader(prog, frag)
	ctx.LinkProgram(prog)

	if ok, log := ctx.ProgramInfo(prog); !ok {
		ctx.DeleteProgram(prog)
		return nil, &CompileError{Stage: "link", Log: log}
	}
	return &Program{ctx: ctx, id: prog}, nil
}

func compileShader(ctx Context, src string, stage uint32) (uint32, error) {
	shader := ctx.CreateShader(stage)
	ctx.ShaderSource(shader, src)
	ctx.CompileShader(shader)

	if ok, log := ctx.ShaderInfo(shader); !ok {
		ctx.DeleteShader(shader)
		return 0, &CompileError{Stage: stageName(stage), Log: log}
	}
	return shader, nil
}

// ID returns the GL program object name.
func (p *Program) ID() uint32 { return p.id }

// Use makes p the current program.
func (p *Program) Use() {
	p.ctx.UseProgram(p.id)
}

// Delete frees the program. p must not be used afterwards.
func (p *Program) Delete() {
	if p.id != 0 {
		p.ctx.DeleteProgram(p.id)
		p.id = 0
	}
}

// ── Attributes ────────────────────────────────────────────────────────────────

// AttributeType lists the vertex attribute element types a program can take.
type AttributeType interface {
	math.Vec2 | math.Vec3
}

// Attribute is a typed handle on a vertex shader input.
type Attribute[T AttributeType] struct {
	ctx      Context
	name     string
	location uint32
}

// GetAttribute resolves the attribute name in p.
func GetAttribute[T AttributeType](p *Program, name string) (*Attribute[T], error) {
	loc := p.ctx.GetAttribLocation(p.id, name)
	if loc < 0 {
		return nil, &BindingError{Kind: "attribute", Name: name}
	}
	return &Attribute[T]{ctx: p.ctx, name: name, location: uint32(loc)}, nil
}

func (a *Attribute[T]) Name() string     { return a.name }
func (a *Attribute[T]) Location() uint32 { return a.location }

func (a *Attribute[T]) Enable() {
	a.ctx.EnableVertexAttribArray(a.location)
}

func (a *Attribute[T]) Disable() {
	a.ctx.DisableVertexAttribArray(a.location)
}

// Bind points the attribute at a tightly packed float buffer holding one T
// per vertex.
func (a *Attribute[T]) Bind(buffer uint32) {
	a.ctx.BindBuffer(ARRAY_BUFFER, buffer)
	a.ctx.VertexAttribPointer(a.location, components[T](), 0, 0)
}

func components[T AttributeType]() int32 {
	var zero T
	switch any(zero).(type) {
	case math.Vec2:
		return 2
	default:
		return 3
	}
}

// ── Uniforms ──────────────────────────────────────────────────────────────────

// UniformType lists the uniform value types a program can take. Samplers
// are int32 texture unit indices.
type UniformType interface {
	int32 | float32 | math.Vec3 | math.Mat3 | math.Mat4
}

// Uniform is a typed handle on a shader uniform.
type Uniform[T UniformType] struct {
	ctx      Context
	name     string
	location int32
}

// GetUniform resolves the uniform name in p.
func GetUniform[T UniformType](p *Program, name string) (*Uniform[T], error) {
	loc := p.ctx.GetUniformLocation(p.id, name)
	if loc < 0 {
		return nil, &BindingError{Kind: "uniform", Name: name}
	}
	return &Uniform[T]{ctx: p.ctx, name: name, location: loc}, nil
}

func (u *Uniform[T]) Name() string    { return u.name }
func (u *Uniform[T]) Location() int32 { return u.location }

// Upload writes v to the uniform of the current program.
func (u *Uniform[T]) Upload(v T) {
	switch x := any(v).(type) {
	case int32:
		u.ctx.Uniform1i(u.location, x)
	case float32:
		u.ctx.Uniform1f(u.location, x)
	case math.Vec3:
		u.ctx.Uniform3f(u.location, x.X, x.Y, x.Z)
	case math.Mat3:
		flat := x.Flat()
		u.ctx.UniformMatrix3fv(u.location, &flat)
	case math.Mat4:
		flat := x.Flat()
		u.ctx.UniformMatrix4fv(u.location, &flat)
	}
}
