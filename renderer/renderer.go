package renderer

import (
	"fmt"

	"shading-pipeline/core"
	"shading-pipeline/internal/opengl"
	"shading-pipeline/math"
	"shading-pipeline/scene"
	"shading-pipeline/shading"
	"shading-pipeline/texture"
)

// Engine is the high-level renderer driving the OpenGL backend. The
// capability flags passed to NewEngine are baked into the scene pipeline
// for the engine's lifetime; the light and fog parameters stay tunable
// between frames.
type Engine struct {
	gl     *opengl.Renderer
	window *core.Window
	config shading.Config

	light shading.DirectionalLight
	fog   shading.FogParams

	view math.Mat4
	proj math.Mat4

	// Overlay transform, rebuilt on resize.
	screen math.Mat4

	// Per-frame stats (populated during draw calls)
	lastObjects   int
	lastVertices  int
	lastTriangles int
}

func NewEngine(window *core.Window, cfg shading.Config) (*Engine, error) {
	glRenderer, err := opengl.NewRenderer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	glRenderer.SetViewport(window.Width, window.Height)

	fmt.Println("Shading pipeline initialized (OpenGL)")
	return &Engine{
		gl:     glRenderer,
		window: window,
		config: cfg,
		light:  shading.DefaultLight(),
		fog:    shading.DefaultFog(),
		view:   math.Mat4Identity(),
		proj:   math.Mat4Identity(),
		screen: math.Mat4ScreenSpace(float32(window.Width), float32(window.Height)),
	}, nil
}

// Config returns the capability flags the engine was built with.
func (e *Engine) Config() shading.Config { return e.config }

// SetLight replaces the directional light parameters used by lit draws.
func (e *Engine) SetLight(light shading.DirectionalLight) {
	e.light = light
}

// SetFog replaces the fog ramp used by fogged draws.
func (e *Engine) SetFog(fog shading.FogParams) {
	e.fog = fog
}

// SetCamera sets the view and projection matrices for subsequent DrawMesh
// calls.
func (e *Engine) SetCamera(view, proj math.Mat4) {
	e.view = view
	e.proj = proj
}

// BeginFrame clears the framebuffer and resets the frame stats.
func (e *Engine) BeginFrame(clear core.Color) {
	e.gl.BeginFrame(clear)
	e.lastObjects = 0
	e.lastVertices = 0
	e.lastTriangles = 0
}

// DrawMesh draws one mesh through the scene pipeline. tex may be nil for a
// flat-colored draw; a texture that has not been uploaded yet is uploaded
// on first use.
func (e *Engine) DrawMesh(mesh *scene.Mesh, world math.Mat4, color core.Color, tex *texture.Texture) error {
	texID, err := e.resolveTexture(tex)
	if err != nil {
		return err
	}

	u := shading.SceneUniforms{World: world, View: e.view, Proj: e.proj, Color: color}
	e.gl.DrawMesh(mesh, u, texID, e.light, e.fog)

	e.lastObjects++
	e.lastVertices += len(mesh.Vertices)
	e.lastTriangles += len(mesh.Indices) / 3
	return nil
}

// DrawGLTF draws every primitive of a loaded glTF asset under one world
// transform.
func (e *Engine) DrawGLTF(result *scene.GLTFResult, world math.Mat4) error {
	for _, gm := range result.Meshes {
		if err := e.DrawMesh(gm.Mesh, world, gm.Color, gm.BaseColor); err != nil {
			return err
		}
	}
	return nil
}

// DrawOverlay draws a screen-space mesh through the overlay pipeline, on
// top of everything drawn so far. Overlay draws require a texture.
func (e *Engine) DrawOverlay(mesh *scene.Mesh, tex *texture.Texture) error {
	if tex == nil {
		return fmt.Errorf("overlay draw requires a texture")
	}
	texID, err := e.resolveTexture(tex)
	if err != nil {
		return err
	}
	e.gl.DrawOverlay(mesh, shading.OverlayUniforms{Screen: e.screen}, texID)
	return nil
}

// Present swaps buffers. Call after all draws for the frame.
func (e *Engine) Present() {
	e.window.SwapBuffers()
}

func (e *Engine) Resize(width, height int) {
	e.gl.SetViewport(width, height)
	e.screen = math.Mat4ScreenSpace(float32(width), float32(height))
}

// UploadTexture uploads a texture to the GPU. Must be called from the main
// thread.
func (e *Engine) UploadTexture(tex *texture.Texture) error {
	return opengl.UploadTexture(tex)
}

// DeleteTexture frees a previously uploaded GPU texture.
func (e *Engine) DeleteTexture(tex *texture.Texture) {
	opengl.DeleteTexture(tex)
}

// ReleaseMesh frees a mesh's GPU buffers.
func (e *Engine) ReleaseMesh(mesh *scene.Mesh) {
	e.gl.ReleaseMesh(mesh)
}

func (e *Engine) Destroy() {
	e.gl.Destroy()
}

// DrawStats returns stats accumulated since the last BeginFrame.
func (e *Engine) DrawStats() (objects, vertices, triangles int) {
	return e.lastObjects, e.lastVertices, e.lastTriangles
}

func (e *Engine) resolveTexture(tex *texture.Texture) (uint32, error) {
	if tex == nil {
		return 0, nil
	}
	if tex.GLID == 0 {
		if err := opengl.UploadTexture(tex); err != nil {
			return 0, fmt.Errorf("texture %q: %w", tex.Name, err)
		}
	}
	return tex.GLID, nil
}
