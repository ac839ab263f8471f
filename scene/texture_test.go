package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeTextureKeepsTopLeftFirst(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 1, color.NRGBA{B: 255, A: 255})

	tex, err := DecodeTexture("quad", bytes.NewReader(encodePNG(t, img)))
	require.NoError(t, err)

	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 2, tex.Height)
	require.Len(t, tex.Pixels, 2*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, tex.Pixels[0:4])
	assert.Equal(t, []byte{0, 0, 255, 255}, tex.Pixels[12:16])
}

func TestDecodeTextureRejectsGarbage(t *testing.T) {
	_, err := DecodeTexture("junk", bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestLoadTextureMissingFile(t *testing.T) {
	_, err := LoadTexture(filepath.Join(t.TempDir(), "absent.jpg"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTextureFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.png")
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	require.NoError(t, os.WriteFile(path, encodePNG(t, img), 0o644))

	tex, err := LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Width)
	assert.Equal(t, 1, tex.Height)
}

func TestTextureDownscale(t *testing.T) {
	tex := NewTextureFromImage("wide", image.NewRGBA(image.Rect(0, 0, 400, 100)))

	small := tex.Downscale(100)
	assert.Equal(t, 100, small.Width)
	assert.Equal(t, 25, small.Height)
	assert.Len(t, small.Pixels, 100*25*4)
	assert.Equal(t, "wide", small.Name)

	assert.Same(t, tex, tex.Downscale(400), "fitting textures are returned as is")
	assert.Same(t, tex, tex.Downscale(0))
}

func TestTextureReleasePixels(t *testing.T) {
	tex := NewSolidTexture("white", 255, 255, 255, 255)
	require.Len(t, tex.Pixels, 4)
	tex.ReleasePixels()
	assert.Nil(t, tex.Pixels)
	assert.Equal(t, 1, tex.Width)
}
