package raster

import (
	"image"
	stdmath "math"

	"shading-pipeline/core"
	"shading-pipeline/math"
)

// Framebuffer is a CPU color + depth target for the software rasterizer.
type Framebuffer struct {
	Width  int
	Height int
	// Pix is RGBA8, row-major, top-to-bottom.
	Pix []uint8
	// Depth holds one NDC depth value per pixel; cleared to +Inf.
	Depth []float32
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
		Depth:  make([]float32, width*height),
	}
}

// Clear fills the color buffer and resets the depth buffer.
func (fb *Framebuffer) Clear(c core.Color) {
	r := uint8(math.Clamp01(c.R) * 255)
	g := uint8(math.Clamp01(c.G) * 255)
	b := uint8(math.Clamp01(c.B) * 255)
	a := uint8(math.Clamp01(c.A) * 255)
	for i := 0; i < len(fb.Pix); i += 4 {
		fb.Pix[i] = r
		fb.Pix[i+1] = g
		fb.Pix[i+2] = b
		fb.Pix[i+3] = a
	}
	for i := range fb.Depth {
		fb.Depth[i] = stdmath.MaxFloat32
	}
}

func (fb *Framebuffer) setPixel(x, y int, c core.Color) {
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = uint8(math.Clamp01(c.R) * 255)
	fb.Pix[i+1] = uint8(math.Clamp01(c.G) * 255)
	fb.Pix[i+2] = uint8(math.Clamp01(c.B) * 255)
	fb.Pix[i+3] = uint8(math.Clamp01(c.A) * 255)
}

// At returns the stored color of one pixel.
func (fb *Framebuffer) At(x, y int) core.Color {
	i := (y*fb.Width + x) * 4
	return core.Color{
		R: float32(fb.Pix[i]) / 255,
		G: float32(fb.Pix[i+1]) / 255,
		B: float32(fb.Pix[i+2]) / 255,
		A: float32(fb.Pix[i+3]) / 255,
	}
}

// DepthAt returns the stored depth of one pixel.
func (fb *Framebuffer) DepthAt(x, y int) float32 {
	return fb.Depth[y*fb.Width+x]
}

// Image wraps the color buffer as an image.RGBA sharing the same pixels.
func (fb *Framebuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Pix,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}
