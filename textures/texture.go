package textures

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"earth-render/internal/logger"
	"earth-render/internal/opengl"
	"earth-render/scene"
)

// NotFoundError is returned by Get for a name that was never added.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("texture %q not registered", e.Name)
}

// TextureManager is the process-wide texture registry. Textures are uploaded
// to the GPU as they are added and looked up by name afterwards.
type TextureManager struct {
	textures map[string]*scene.Texture
	mu       sync.RWMutex
	ctx      opengl.Context
}

// NewTextureManager creates a registry that uploads through ctx.
func NewTextureManager(ctx opengl.Context) *TextureManager {
	return &TextureManager{
		textures: make(map[string]*scene.Texture),
		ctx:      ctx,
	}
}

// Add loads the image at path and registers it under name. Adding a name
// that is already present returns the registered texture without reloading.
func (tm *TextureManager) Add(path, name string) (*scene.Texture, error) {
	tm.mu.RLock()
	if tex, ok := tm.textures[name]; ok {
		tm.mu.RUnlock()
		return tex, nil
	}
	tm.mu.RUnlock()

	tex, err := scene.LoadTexture(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", name, err)
	}
	tex.Name = name

	if err := tm.AddTexture(tex); err != nil {
		return nil, err
	}
	logger.Log.Info("texture loaded",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height))
	return tex, nil
}

// AddTexture uploads an already decoded texture and registers it under
// tex.Name. Images larger than the driver's limit are downscaled first. The
// CPU pixels are dropped once the GPU has them.
func (tm *TextureManager) AddTexture(tex *scene.Texture) error {
	if limit := int(tm.ctx.MaxTextureSize()); limit > 0 && (tex.Width > limit || tex.Height > limit) {
		logger.Log.Warn("texture exceeds GL_MAX_TEXTURE_SIZE, downscaling",
			zap.String("name", tex.Name),
			zap.Int("width", tex.Width),
			zap.Int("height", tex.Height),
			zap.Int("limit", limit))
		tex = tex.Downscale(limit)
	}

	if err := opengl.UploadTexture(tm.ctx, tex); err != nil {
		return fmt.Errorf("failed to upload texture %s: %w", tex.Name, err)
	}
	tex.ReleasePixels()

	tm.mu.Lock()
	defer tm.mu.Unlock()
	if old, ok := tm.textures[tex.Name]; ok {
		opengl.DeleteTexture(tm.ctx, old)
	}
	tm.textures[tex.Name] = tex
	return nil
}

// Get returns the texture registered under name.
func (tm *TextureManager) Get(name string) (*scene.Texture, error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	tex, ok := tm.textures[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return tex, nil
}

// Names lists the registered names in sorted order.
func (tm *TextureManager) Names() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	names := make([]string, 0, len(tm.textures))
	for name := range tm.textures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DestroyAll frees every GPU texture and empties the registry.
func (tm *TextureManager) DestroyAll() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for _, tex := range tm.textures {
		opengl.DeleteTexture(tm.ctx, tex)
	}
	tm.textures = make(map[string]*scene.Texture)
}
