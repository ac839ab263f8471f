package opengl

import (
	"fmt"

	"earth-render/scene"
)

// UploadTexture uploads a scene.Texture to the GPU and sets its GLID field.
// The texture repeats in both directions and is mipmapped.
func UploadTexture(ctx Context, tex *scene.Texture) error {
	if tex == nil {
		return fmt.Errorf("nil texture")
	}
	if len(tex.Pixels) == 0 {
		return fmt.Errorf("texture %q has no pixel data", tex.Name)
	}
	if len(tex.Pixels) != tex.Width*tex.Height*4 {
		return fmt.Errorf("texture %q: %d bytes for %dx%d RGBA", tex.Name, len(tex.Pixels), tex.Width, tex.Height)
	}

	id := ctx.GenTexture()
	ctx.BindTexture(TEXTURE_2D, id)

	ctx.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, REPEAT)
	ctx.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, REPEAT)
	ctx.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, LINEAR_MIPMAP_LINEAR)
	ctx.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, LINEAR)

	ctx.TexImage2D(TEXTURE_2D, int32(tex.Width), int32(tex.Height), tex.Pixels)
	ctx.GenerateMipmap(TEXTURE_2D)

	ctx.BindTexture(TEXTURE_2D, 0)

	tex.GLID = id
	return nil
}

// DeleteTexture frees a previously uploaded GPU texture and zeroes its GLID.
func DeleteTexture(ctx Context, tex *scene.Texture) {
	if tex == nil || tex.GLID == 0 {
		return
	}
	ctx.DeleteTexture(tex.GLID)
	tex.GLID = 0
}

// BindTextureUnit makes tex current on texture unit `unit`.
func BindTextureUnit(ctx Context, unit uint32, tex *scene.Texture) {
	ctx.ActiveTexture(TEXTURE0 + unit)
	ctx.BindTexture(TEXTURE_2D, tex.GLID)
}
