package materials

import (
	"fmt"

	"go.uber.org/zap"

	"earth-render/core"
	"earth-render/internal/logger"
	"earth-render/internal/opengl"
	"earth-render/math"
	"earth-render/renderer"
	"earth-render/scene"
)

// Registry keys of the five Earth textures.
const (
	TextureEarth    = "earth"
	TextureBump     = "bump"
	TextureSpecular = "specular"
	TextureCloud    = "cloud"
	TextureNights   = "nights"
)

// Texture units the Earth program samples from.
const (
	unitAlbedo int32 = iota
	unitBump
	unitSpecular
	unitCloud
	unitNight
)

// TextureSource looks textures up by registry key.
// *textures.TextureManager satisfies it.
type TextureSource interface {
	Get(name string) (*scene.Texture, error)
}

// Earth shades a sphere as the Earth: albedo, relief, ocean glints, a
// scrolling cloud layer, city lights on the night side and a reddish
// terminator, lit by a sun that circles once every DayLength frames.
//
// Render mutates the shared GL binding state; materials must not render
// concurrently.
type Earth struct {
	ctx    opengl.Context
	shader *opengl.Program

	position *opengl.Attribute[math.Vec3]
	normal   *opengl.Attribute[math.Vec3]
	texCoord *opengl.Attribute[math.Vec2]

	view      *opengl.Uniform[math.Mat4]
	proj      *opengl.Uniform[math.Mat4]
	transform *opengl.Uniform[math.Mat4]
	scale     *opengl.Uniform[math.Mat3]

	glTextureMap  *opengl.Uniform[int32]
	glHeightMap   *opengl.Uniform[int32]
	glSpecularMap *opengl.Uniform[int32]
	glCloudMap    *opengl.Uniform[int32]
	glNightMap    *opengl.Uniform[int32]

	glCameraPosition *opengl.Uniform[math.Vec3]
	glLightDir       *opengl.Uniform[math.Vec3]
	glTime           *opengl.Uniform[float32]

	textureMap  *scene.Texture
	heightMap   *scene.Texture
	specularMap *scene.Texture
	cloudMap    *scene.Texture
	nightMap    *scene.Texture

	time float32
}

var _ renderer.Material = (*Earth)(nil)

// NewEarth compiles the Earth program, resolves every attribute and uniform
// it declares and fetches the five textures from the registry. Any missing
// piece is an error; nothing is left allocated on failure.
func NewEarth(ctx opengl.Context, registry TextureSource) (*Earth, error) {
	shader, err := opengl.NewProgram(ctx, earthVertSrc, earthFragSrc)
	if err != nil {
		return nil, fmt.Errorf("earth material: %w", err)
	}

	m := &Earth{ctx: ctx, shader: shader}
	if err := m.resolve(registry); err != nil {
		shader.Delete()
		return nil, fmt.Errorf("earth material: %w", err)
	}

	logger.Log.Debug("earth material ready", zap.Uint32("program", shader.ID()))
	return m, nil
}

// binder resolves shader inputs in sequence and keeps the first error.
type binder struct {
	prog *opengl.Program
	err  error
}

func attribute[T opengl.AttributeType](b *binder, name string) *opengl.Attribute[T] {
	if b.err != nil {
		return nil
	}
	a, err := opengl.GetAttribute[T](b.prog, name)
	b.err = err
	return a
}

func uniform[T opengl.UniformType](b *binder, name string) *opengl.Uniform[T] {
	if b.err != nil {
		return nil
	}
	u, err := opengl.GetUniform[T](b.prog, name)
	b.err = err
	return u
}

func (m *Earth) resolve(registry TextureSource) error {
	b := &binder{prog: m.shader}

	m.position = attribute[math.Vec3](b, "position")
	m.normal = attribute[math.Vec3](b, "normal")
	m.texCoord = attribute[math.Vec2](b, "tex_coord")

	m.transform = uniform[math.Mat4](b, "transform")
	m.scale = uniform[math.Mat3](b, "scale")
	m.view = uniform[math.Mat4](b, "view")
	m.proj = uniform[math.Mat4](b, "proj")
	m.glCameraPosition = uniform[math.Vec3](b, "camera_position")

	m.glTextureMap = uniform[int32](b, "texture_map")
	m.glHeightMap = uniform[int32](b, "height_map")
	m.glSpecularMap = uniform[int32](b, "specular_map")
	m.glCloudMap = uniform[int32](b, "cloud_map")
	m.glNightMap = uniform[int32](b, "night_map")

	m.glTime = uniform[float32](b, "time")
	m.glLightDir = uniform[math.Vec3](b, "lightdir")
	if b.err != nil {
		return b.err
	}

	var err error
	for _, slot := range []struct {
		name string
		dst  **scene.Texture
	}{
		{TextureEarth, &m.textureMap},
		{TextureBump, &m.heightMap},
		{TextureSpecular, &m.specularMap},
		{TextureCloud, &m.cloudMap},
		{TextureNights, &m.nightMap},
	} {
		if *slot.dst, err = registry.Get(slot.name); err != nil {
			return err
		}
	}
	return nil
}

// Time is the number of Render calls so far. It drives the sun and clouds.
func (m *Earth) Time() float32 {
	return m.time
}

// Render draws mesh for one camera pass. transform places the body (its
// scale is ignored) and scale is applied in model space before it.
func (m *Earth) Render(pass int, transform core.Transform, scale math.Vec3, camera renderer.Camera, mesh *opengl.GPUMesh) {
	m.shader.Use()

	mesh.BindVertexArray()
	defer mesh.Unbind()

	m.position.Enable()
	m.normal.Enable()
	m.texCoord.Enable()
	defer func() {
		m.position.Disable()
		m.normal.Disable()
		m.texCoord.Disable()
	}()

	camera.Upload(pass, m.proj, m.view)
	m.glCameraPosition.Upload(camera.Eye())

	m.transform.Upload(transform.Isometry())
	m.scale.Upload(math.Mat3Diagonal(scale))

	mesh.Bind(m.position, m.normal, m.texCoord)
	mesh.BindFaces()

	opengl.BindTextureUnit(m.ctx, uint32(unitAlbedo), m.textureMap)
	m.glTextureMap.Upload(unitAlbedo)

	opengl.BindTextureUnit(m.ctx, uint32(unitBump), m.heightMap)
	m.glHeightMap.Upload(unitBump)

	opengl.BindTextureUnit(m.ctx, uint32(unitSpecular), m.specularMap)
	m.glSpecularMap.Upload(unitSpecular)

	// The cloud layer scrolls horizontally past u = 1.
	opengl.BindTextureUnit(m.ctx, uint32(unitCloud), m.cloudMap)
	m.ctx.TexParameteri(opengl.TEXTURE_2D, opengl.TEXTURE_WRAP_S, opengl.REPEAT)
	m.glCloudMap.Upload(unitCloud)

	opengl.BindTextureUnit(m.ctx, uint32(unitNight), m.nightMap)
	m.glNightMap.Upload(unitNight)

	m.time += 1.0
	m.glTime.Upload(m.time)

	m.glLightDir.Upload(LightDirection(m.time))

	m.ctx.DrawElements(opengl.TRIANGLES, mesh.NumPoints(), opengl.UNSIGNED_SHORT, 0)
}

// Destroy frees the shader program. Textures belong to the registry.
func (m *Earth) Destroy() {
	m.shader.Delete()
}
