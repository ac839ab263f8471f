package renderer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"earth-render/core"
	"earth-render/internal/logger"
	"earth-render/internal/opengl"
	"earth-render/math"
	"earth-render/scene"
)

// Camera is what a material needs from the active camera.
type Camera interface {
	// Upload writes the projection and view matrices of the given pass.
	Upload(pass int, proj, view scene.MatrixUploader)
	Eye() math.Vec3
	NumPasses() int
}

// Material draws one object. transform is the object's world placement
// (rotation and translation) and scale its per-axis model scale.
type Material interface {
	Render(pass int, transform core.Transform, scale math.Vec3, camera Camera, mesh *opengl.GPUMesh)
}

// Surface is the window the engine presents to. *core.Window satisfies it.
type Surface interface {
	ShouldClose() bool
	SetShouldClose(value bool)
	PollEvents()
	SwapBuffers()
	GetFramebufferSize() (int, int)
	SetTitle(title string)
}

// Controller reacts to input once per frame. Update returns true when the
// user asked to quit.
type Controller interface {
	Update() bool
}

// Object is a scene node drawn with a material.
type Object struct {
	Node     *scene.Node
	Material Material
	Mesh     *opengl.GPUMesh
}

// RenderEngine owns the frame loop: it polls the window, clears, lets every
// object's material draw and presents the frame.
type RenderEngine struct {
	ctx        opengl.Context
	surface    Surface
	Scene      *scene.Scene
	Controller Controller

	// Title is the base window title; the frame rate is appended once a second.
	Title string

	objects []*Object

	now           func() time.Time
	frames        int
	fpsFrames     int
	fpsLastTime   time.Time
	lastFPS       float64
	lastTriangles int
}

// NewRenderEngine prepares GL state for rendering sc into surface.
// sc must have a camera.
func NewRenderEngine(ctx opengl.Context, surface Surface, sc *scene.Scene) (*RenderEngine, error) {
	if sc == nil || sc.Camera == nil {
		return nil, fmt.Errorf("no scene or camera")
	}

	ctx.Enable(opengl.DEPTH_TEST)
	ctx.DepthFunc(opengl.LESS)
	ctx.Enable(opengl.MULTISAMPLE)

	w, h := surface.GetFramebufferSize()
	ctx.Viewport(0, 0, int32(w), int32(h))

	re := &RenderEngine{
		ctx:     ctx,
		surface: surface,
		Scene:   sc,
		now:     time.Now,
	}
	re.fpsLastTime = re.now()

	logger.Log.Info("render engine initialized", zap.Int("width", w), zap.Int("height", h))
	return re, nil
}

// AddObject uploads node's mesh, adds the node to the scene and draws it with
// mat from the next frame on.
func (re *RenderEngine) AddObject(node *scene.Node, mat Material) (*Object, error) {
	if node.Mesh == nil {
		return nil, fmt.Errorf("node %q has no mesh", node.Name)
	}
	gpu, err := opengl.UploadMesh(re.ctx, node.Mesh)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", node.Name, err)
	}

	if node.Parent == nil {
		re.Scene.AddNode(node)
	}
	obj := &Object{Node: node, Material: mat, Mesh: gpu}
	re.objects = append(re.objects, obj)

	logger.Log.Debug("object added",
		zap.String("node", node.Name),
		zap.Int("vertices", len(node.Mesh.Vertices)),
		zap.Int32("indices", gpu.NumPoints()))
	return obj, nil
}

// Render draws one frame. It returns false, without drawing, once the window
// has been asked to close.
func (re *RenderEngine) Render() bool {
	if re.surface.ShouldClose() {
		return false
	}
	re.surface.PollEvents()
	if re.Controller != nil && re.Controller.Update() {
		re.surface.SetShouldClose(true)
	}
	if re.surface.ShouldClose() {
		return false
	}

	cam := re.Scene.Camera
	if w, h := re.surface.GetFramebufferSize(); w > 0 && h > 0 {
		re.ctx.Viewport(0, 0, int32(w), int32(h))
		cam.UpdateAspectRatio(float32(w), float32(h))
	}

	sky := re.Scene.SkyColor
	re.ctx.ClearColor(sky.R, sky.G, sky.B, sky.A)
	re.ctx.Clear(opengl.COLOR_BUFFER_BIT | opengl.DEPTH_BUFFER_BIT)

	triangles := 0
	for pass := 0; pass < cam.NumPasses(); pass++ {
		for _, obj := range re.objects {
			if !obj.Node.Visible {
				continue
			}
			obj.Material.Render(pass, obj.Node.WorldTransform(), obj.Node.Transform.Scale, cam, obj.Mesh)
			triangles += int(obj.Mesh.NumPoints()) / 3
		}
	}
	re.lastTriangles = triangles

	re.surface.SwapBuffers()
	re.tick()
	return true
}

// tick counts the frame and refreshes the FPS in the title once a second.
func (re *RenderEngine) tick() {
	re.frames++
	re.fpsFrames++

	now := re.now()
	elapsed := now.Sub(re.fpsLastTime)
	if elapsed < time.Second {
		return
	}
	re.lastFPS = float64(re.fpsFrames) / elapsed.Seconds()
	re.fpsFrames = 0
	re.fpsLastTime = now

	if re.Title != "" {
		re.surface.SetTitle(fmt.Sprintf("%s | FPS: %.0f", re.Title, re.lastFPS))
	}
	logger.Log.Debug("frame stats",
		zap.Int("frame", re.frames),
		zap.Float64("fps", re.lastFPS),
		zap.Int("triangles", re.lastTriangles))
}

// Frames is the number of frames presented so far.
func (re *RenderEngine) Frames() int { return re.frames }

// FPS is the frame rate measured over the last full second.
func (re *RenderEngine) FPS() float64 { return re.lastFPS }

// Objects lists the objects in draw order.
func (re *RenderEngine) Objects() []*Object { return re.objects }

// Destroy releases every GPU mesh. Materials and textures are owned elsewhere.
func (re *RenderEngine) Destroy() {
	for _, obj := range re.objects {
		obj.Mesh.Destroy()
	}
	re.objects = nil
}
