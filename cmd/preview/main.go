// Command preview renders the demo scene with the software rasterizer and
// presents the framebuffer through ebiten. It exercises the exact same
// pipelines as the OpenGL backend without needing a GL context, which makes
// it handy for checking shading output on headless-ish machines.
package main

import (
	"fmt"
	stdmath "math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"shading-pipeline/core"
	"shading-pipeline/math"
	"shading-pipeline/raster"
	"shading-pipeline/scene"
	"shading-pipeline/shading"
	"shading-pipeline/texture"
)

const (
	width  = 640
	height = 480
)

type game struct {
	fb      *raster.Framebuffer
	pipe    *shading.Pipeline
	overlay *shading.OverlayPipeline

	cube      *scene.Mesh
	ground    *scene.Mesh
	hud       *scene.Mesh
	cubeTex   *texture.Texture
	groundTex *texture.Texture
	hudTex    *texture.Texture

	angle float32
}

func newGame() *game {
	return &game{
		fb:      raster.NewFramebuffer(width, height),
		pipe:    shading.NewPipeline(shading.Config{Lighting: true, Fog: true, Texturing: true}),
		overlay: shading.NewOverlayPipeline(),

		cube:   scene.CreateCube(2),
		ground: scene.CreateQuad(),
		hud:    scene.CreateOverlayQuad(10, 10, 48, 48),

		cubeTex:   texture.Checkerboard("cube", 64, 8, core.ColorWhite, core.Color{R: 0.9, G: 0.4, B: 0.1, A: 1}),
		groundTex: texture.Checkerboard("ground", 128, 16, core.Color{R: 0.35, G: 0.35, B: 0.35, A: 1}, core.Color{R: 0.55, G: 0.55, B: 0.55, A: 1}),
		hudTex:    texture.Checkerboard("hud", 32, 8, core.ColorGreen, core.Color{}),
	}
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.angle += 0.8 / 60
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.fb.Clear(g.pipe.Fog.Color)

	view := math.Mat4LookAt(math.NewVec3(0, 2.5, 8), math.NewVec3(0, 0.5, 0), math.Vec3Up)
	proj := math.Mat4Perspective(float32(stdmath.Pi/4), float32(width)/float32(height), 0.1, 200)

	groundWorld := math.Mat4Scale(math.NewVec3(300, 300, 1)).
		Mul(math.Mat4RotationX(-float32(stdmath.Pi / 2)))
	raster.DrawMesh(g.fb, g.pipe, shading.SceneUniforms{
		World: groundWorld, View: view, Proj: proj, Color: core.ColorWhite,
	}, g.ground, g.groundTex)

	cubeWorld := math.Mat4RotationY(g.angle).
		Mul(math.Mat4Translation(math.NewVec3(0, 1, 0)))
	raster.DrawMesh(g.fb, g.pipe, shading.SceneUniforms{
		World: cubeWorld, View: view, Proj: proj, Color: core.ColorWhite,
	}, g.cube, g.cubeTex)

	raster.DrawOverlay(g.fb, g.overlay, shading.OverlayUniforms{
		Screen: math.Mat4ScreenSpace(width, height),
	}, g.hud, g.hudTex)

	screen.WritePixels(g.fb.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return width, height
}

func main() {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Shading Pipeline Preview")

	if err := ebiten.RunGame(newGame()); err != nil {
		fmt.Fprintf(os.Stderr, "preview: %v\n", err)
		os.Exit(1)
	}
}
