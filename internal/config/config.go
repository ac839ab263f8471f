// Package config holds the demo settings. Defaults cover everything; an
// optional TOML file overrides any subset of them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"earth-render/core"
)

// DefaultFile is looked up in the working directory.
const DefaultFile = "earth.toml"

type Config struct {
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Mesh   MeshConfig   `toml:"mesh"`
	Assets AssetsConfig `toml:"assets"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
	VSync     bool   `toml:"vsync"`
	Samples   int    `toml:"samples"`
	ShowFPS   bool   `toml:"show_fps"`
}

type CameraConfig struct {
	Distance float32 `toml:"distance"`
	FOV      float32 `toml:"fov"` // radians
}

// MeshConfig selects the body mesh. When GLTF is empty a UV sphere is
// generated.
type MeshConfig struct {
	GLTF     string  `toml:"gltf"`
	Diameter float32 `toml:"diameter"`
	Segments int     `toml:"segments"`
	Rings    int     `toml:"rings"`
}

// AssetsConfig names the five texture files, relative to Dir.
type AssetsConfig struct {
	Dir      string `toml:"dir"`
	Earth    string `toml:"earth"`
	Bump     string `toml:"bump"`
	Specular string `toml:"specular"`
	Cloud    string `toml:"cloud"`
	Nights   string `toml:"nights"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

func Default() Config {
	w := core.DefaultWindowConfig()
	return Config{
		Window: WindowConfig{
			Width:     w.Width,
			Height:    w.Height,
			Title:     w.Title,
			Resizable: w.Resizable,
			VSync:     w.VSync,
			Samples:   w.Samples,
			ShowFPS:   true,
		},
		Camera: CameraConfig{
			Distance: 1.6,
			FOV:      0.785398, // 45°
		},
		Mesh: MeshConfig{
			Diameter: 1.0,
			Segments: 128,
			Rings:    128,
		},
		Assets: AssetsConfig{
			Dir:      ".",
			Earth:    "8081_earthmap4k.jpg",
			Bump:     "8081_earthbump4k.jpg",
			Specular: "8081_earthspec4k.jpg",
			Cloud:    "Clouds.jpg",
			Nights:   "night_lights_modified.jpg",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the renderer cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Camera.Distance <= 0:
		return fmt.Errorf("camera distance %v must be positive", c.Camera.Distance)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 3.14159:
		return fmt.Errorf("camera fov %v must be in (0, π)", c.Camera.FOV)
	case c.Mesh.GLTF == "" && c.Mesh.Diameter <= 0:
		return fmt.Errorf("mesh diameter %v must be positive", c.Mesh.Diameter)
	case c.Mesh.GLTF == "" && (c.Mesh.Segments+1)*(c.Mesh.Rings+1) > 1<<16:
		return fmt.Errorf("mesh %dx%d has too many vertices for 16-bit indices", c.Mesh.Segments, c.Mesh.Rings)
	}
	return nil
}

// CoreWindowConfig converts the window section for core.NewWindow.
func (c Config) CoreWindowConfig() core.WindowConfig {
	w := core.DefaultWindowConfig()
	w.Width = c.Window.Width
	w.Height = c.Window.Height
	w.Title = c.Window.Title
	w.Resizable = c.Window.Resizable
	w.VSync = c.Window.VSync
	w.Samples = c.Window.Samples
	return w
}

// TexturePaths maps registry keys to image paths.
func (c Config) TexturePaths() map[string]string {
	a := c.Assets
	return map[string]string{
		"earth":    filepath.Join(a.Dir, a.Earth),
		"bump":     filepath.Join(a.Dir, a.Bump),
		"specular": filepath.Join(a.Dir, a.Specular),
		"cloud":    filepath.Join(a.Dir, a.Cloud),
		"nights":   filepath.Join(a.Dir, a.Nights),
	}
}
