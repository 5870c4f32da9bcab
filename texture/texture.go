// Package texture holds CPU-side 2D textures: decoded pixel data plus the
// sampling used by the software rasterizer. GPU upload is the renderer
// backend's job.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	stdmath "math"
	"os"

	_ "golang.org/x/image/bmp"

	"shading-pipeline/core"
	"shading-pipeline/math"
)

// Texture is a 2D RGBA8 texture. Sampling wraps in both directions (repeat)
// and filters nearest; the texture is read-only for the duration of any draw
// call that has it bound.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
	// GLID is the OpenGL texture object ID, set by opengl.UploadTexture.
	GLID uint32
}

// Load reads a PNG, JPEG, or BMP file from disk and converts it to RGBA8.
func Load(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return fromImage(path, img), nil
}

// Decode converts already-read image bytes (e.g. from a glTF buffer view)
// to a Texture.
func Decode(name string, data []byte) (*Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", name, err)
	}
	return fromImage(name, img), nil
}

func fromImage(name string, img image.Image) *Texture {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &Texture{
		Name:   name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}
}

// NewSolid creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolid(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// Sample returns the texel at uv with repeat wrapping and nearest filtering.
// uv (0,0) is the top-left corner.
func (t *Texture) Sample(uv math.Vec2) core.Color {
	x := wrap(uv.X, t.Width)
	y := wrap(uv.Y, t.Height)

	i := (y*t.Width + x) * 4
	return core.Color{
		R: float32(t.Pixels[i]) / 255,
		G: float32(t.Pixels[i+1]) / 255,
		B: float32(t.Pixels[i+2]) / 255,
		A: float32(t.Pixels[i+3]) / 255,
	}
}

// wrap maps a texture coordinate to a texel index with repeat semantics.
func wrap(coord float32, size int) int {
	i := int(stdmath.Floor(float64(coord) * float64(size)))
	i %= size
	if i < 0 {
		i += size
	}
	return i
}

// Checkerboard builds a two-color test pattern with square cells. Handy for
// demos and for exercising the cutout path when one color is transparent.
func Checkerboard(name string, size, cell int, a, b core.Color) *Texture {
	pix := make([]byte, size*size*4)
	put := func(i int, c core.Color) {
		pix[i] = uint8(math.Clamp01(c.R) * 255)
		pix[i+1] = uint8(math.Clamp01(c.G) * 255)
		pix[i+2] = uint8(math.Clamp01(c.B) * 255)
		pix[i+3] = uint8(math.Clamp01(c.A) * 255)
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			put((y*size+x)*4, c)
		}
	}
	return &Texture{Name: name, Width: size, Height: size, Pixels: pix}
}
