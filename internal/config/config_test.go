package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Earth", cfg.Window.Title)
	assert.Equal(t, float32(1), cfg.Mesh.Diameter)
	assert.Equal(t, 128, cfg.Mesh.Segments)
	assert.Equal(t, 128, cfg.Mesh.Rings)
	assert.Equal(t, filepath.Join(".", "Clouds.jpg"), cfg.TexturePaths()["cloud"])
	assert.Len(t, cfg.TexturePaths(), 5)
}

func TestLoadOverridesSubset(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "Blue Marble"
width = 1280

[assets]
dir = "/srv/earth"
nights = "lights.png"

[log]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Blue Marble", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "untouched keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join("/srv/earth", "lights.png"), cfg.TexturePaths()["nights"])
	assert.Equal(t, filepath.Join("/srv/earth", "8081_earthmap4k.jpg"), cfg.TexturePaths()["earth"])

	w := cfg.CoreWindowConfig()
	assert.Equal(t, 1280, w.Width)
	assert.Equal(t, "Blue Marble", w.Title)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[window\ntitle = "))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, "[mesh]\nsegments = 512\nrings = 512\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "16-bit")

	_, err = Load(writeConfig(t, "[camera]\ndistance = -1.0\n"))
	assert.Error(t, err)
}

func TestGLTFMeshSkipsSphereChecks(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[mesh]\ngltf = \"earth.glb\"\ndiameter = 0.0\n"))
	require.NoError(t, err)
	assert.Equal(t, "earth.glb", cfg.Mesh.GLTF)
}
