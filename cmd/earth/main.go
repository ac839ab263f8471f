package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"earth-render/core"
	"earth-render/internal/config"
	"earth-render/internal/logger"
	"earth-render/internal/opengl/glcore"
	"earth-render/materials"
	"earth-render/math"
	"earth-render/renderer"
	"earth-render/scene"
	"earth-render/textures"
)

// textureOrder is the registry load order.
var textureOrder = []string{
	materials.TextureEarth,
	materials.TextureBump,
	materials.TextureSpecular,
	materials.TextureCloud,
	materials.TextureNights,
}

func main() {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "earth: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		fmt.Fprintf(os.Stderr, "earth: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Log.Error("startup failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg config.Config) error {
	window, err := core.NewWindow(cfg.CoreWindowConfig())
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	ctx, err := glcore.New()
	if err != nil {
		return err
	}
	logger.Log.Info("OpenGL context ready",
		zap.String("version", ctx.Version),
		zap.String("renderer", ctx.Renderer))

	registry := textures.NewTextureManager(ctx)
	defer registry.DestroyAll()

	paths := cfg.TexturePaths()
	for _, name := range textureOrder {
		if _, err := registry.Add(paths[name], name); err != nil {
			return err
		}
	}

	mesh, err := bodyMesh(cfg.Mesh)
	if err != nil {
		return err
	}

	sc := scene.NewScene()
	sc.SetCamera(scene.NewOrbitCamera(math.Vec3Zero, cfg.Camera.Distance, cfg.Camera.FOV,
		float32(cfg.Window.Width)/float32(cfg.Window.Height)))
	// The Earth material lights itself; the scene light only follows the camera.
	sc.Light.Mode = scene.LightStickToCamera

	engine, err := renderer.NewRenderEngine(ctx, window, sc)
	if err != nil {
		return fmt.Errorf("failed to create render engine: %w", err)
	}
	defer engine.Destroy()
	if cfg.Window.ShowFPS {
		engine.Title = cfg.Window.Title
	}
	engine.Controller = renderer.NewOrbitController(window, sc.Camera)

	earth, err := materials.NewEarth(ctx, registry)
	if err != nil {
		return err
	}
	defer earth.Destroy()

	body := scene.NewNode("Earth")
	body.Mesh = mesh
	if _, err := engine.AddObject(body, earth); err != nil {
		return err
	}

	logger.Log.Info("rendering",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Indices)/3))

	for engine.Render() {
	}

	logger.Log.Info("window closed", zap.Int("frames", engine.Frames()))
	return nil
}

// bodyMesh loads the configured glTF mesh, or builds the UV sphere.
func bodyMesh(cfg config.MeshConfig) (*scene.Mesh, error) {
	if cfg.GLTF != "" {
		return scene.LoadGLTFMesh(cfg.GLTF)
	}
	return scene.CreateSphere(cfg.Diameter, cfg.Segments, cfg.Rings), nil
}
