package main

import (
	"fmt"
	stdmath "math"
	"os"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"shading-pipeline/core"
	"shading-pipeline/math"
	"shading-pipeline/renderer"
	"shading-pipeline/scene"
	"shading-pipeline/shading"
	"shading-pipeline/texture"
)

func main() {
	window, err := core.NewWindow(core.DefaultWindowConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "window: %v\n", err)
		os.Exit(1)
	}
	defer window.Destroy()

	engine, err := renderer.NewEngine(window, shading.Config{
		Lighting:  true,
		Fog:       true,
		Texturing: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "renderer: %v\n", err)
		os.Exit(1)
	}
	defer engine.Destroy()

	// Scene content: a spinning checkered cube over a large ground plane
	// that runs into the fog, plus a screen-space HUD marker.
	cube := scene.CreateCube(2)
	ground := scene.CreateQuad()
	hud := scene.CreateOverlayQuad(20, 20, 64, 64)

	cubeTex := texture.Checkerboard("cube", 64, 8, core.ColorWhite, core.Color{R: 0.9, G: 0.4, B: 0.1, A: 1})
	groundTex := texture.Checkerboard("ground", 128, 16, core.Color{R: 0.35, G: 0.35, B: 0.35, A: 1}, core.Color{R: 0.55, G: 0.55, B: 0.55, A: 1})
	// HUD marker with transparent cells, exercising the overlay cutout.
	hudTex := texture.Checkerboard("hud", 32, 8, core.ColorGreen, core.Color{})

	// Optional glTF asset as the centerpiece instead of the cube.
	var asset *scene.GLTFResult
	if len(os.Args) > 1 {
		asset, err = scene.LoadGLTF(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "gltf: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %s: %d primitives\n", os.Args[1], len(asset.Meshes))
	}

	fog := shading.DefaultFog()
	fogNear := false
	fogKeyWasDown := false

	last := time.Now()
	var angle float32

	fmt.Println("Controls: F toggles a tighter fog ramp, ESC quits")

	for !window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		angle += dt * 0.8

		window.PollEvents()
		if window.IsKeyPressed(glfw.KeyEscape) {
			break
		}
		fogKeyDown := window.IsKeyPressed(glfw.KeyF)
		if fogKeyDown && !fogKeyWasDown {
			fogNear = !fogNear
			if fogNear {
				fog = shading.FogParams{Start: 5, End: 30, Color: fog.Color}
			} else {
				fog = shading.DefaultFog()
			}
			engine.SetFog(fog)
		}
		fogKeyWasDown = fogKeyDown

		fbw, fbh := window.GetFramebufferSize()
		engine.Resize(fbw, fbh)

		aspect := float32(fbw) / float32(fbh)
		view := math.Mat4LookAt(math.NewVec3(0, 2.5, 8), math.NewVec3(0, 0.5, 0), math.Vec3Up)
		proj := math.Mat4Perspective(float32(stdmath.Pi/4), aspect, 0.1, 200)
		engine.SetCamera(view, proj)

		engine.BeginFrame(fog.Color)

		// Ground: unit quad rotated flat and scaled out past the fog end.
		groundWorld := math.Mat4Scale(math.NewVec3(300, 300, 1)).
			Mul(math.Mat4RotationX(-float32(stdmath.Pi / 2)))
		if err := engine.DrawMesh(ground, groundWorld, core.ColorWhite, groundTex); err != nil {
			fmt.Fprintf(os.Stderr, "draw: %v\n", err)
			break
		}

		center := math.Mat4RotationY(angle).
			Mul(math.Mat4Translation(math.NewVec3(0, 1, 0)))
		if asset != nil {
			err = engine.DrawGLTF(asset, center)
		} else {
			err = engine.DrawMesh(cube, center, core.ColorWhite, cubeTex)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "draw: %v\n", err)
			break
		}

		if err := engine.DrawOverlay(hud, hudTex); err != nil {
			fmt.Fprintf(os.Stderr, "overlay: %v\n", err)
			break
		}

		engine.Present()
	}

	objects, vertices, triangles := engine.DrawStats()
	fmt.Printf("Last frame: %d objects, %d vertices, %d triangles\n", objects, vertices, triangles)
}
