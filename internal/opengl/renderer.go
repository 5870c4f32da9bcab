package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"shading-pipeline/core"
	"shading-pipeline/scene"
	"shading-pipeline/shading"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Renderer is the OpenGL backend for both shading pipelines. The scene
// pipeline's capability flags are fixed at construction; transforms,
// material color, texture, and the light/fog parameters vary per draw.
type Renderer struct {
	config shading.Config

	// Scene program
	sceneProg uint32
	worldLoc  int32
	viewLoc   int32
	projLoc   int32
	colorLoc  int32

	useTextureLoc int32
	lightDirLoc   int32
	ambientLoc    int32
	fogColorLoc   int32
	fogRangeLoc   int32

	// Overlay program
	overlayProg uint32
	screenLoc   int32

	// Fallback bound when a textured pipeline draws an untextured mesh.
	whiteTex uint32

	gpuMeshes map[*scene.Mesh]*GPUMesh
}

// NewRenderer compiles both pipeline programs and bakes the capability
// flags into the scene program. The OpenGL context must be current.
func NewRenderer(cfg shading.Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	fmt.Printf("OpenGL version: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	sceneProg, err := newProgram(sceneVertSrc, sceneFragSrc)
	if err != nil {
		return nil, fmt.Errorf("scene shader compile: %w", err)
	}
	overlayProg, err := newProgram(overlayVertSrc, overlayFragSrc)
	if err != nil {
		return nil, fmt.Errorf("overlay shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	r := &Renderer{
		config:    cfg,
		sceneProg: sceneProg,

		worldLoc: gl.GetUniformLocation(sceneProg, gl.Str("world\x00")),
		viewLoc:  gl.GetUniformLocation(sceneProg, gl.Str("view\x00")),
		projLoc:  gl.GetUniformLocation(sceneProg, gl.Str("proj\x00")),
		colorLoc: gl.GetUniformLocation(sceneProg, gl.Str("color\x00")),

		useTextureLoc: gl.GetUniformLocation(sceneProg, gl.Str("useTexture\x00")),
		lightDirLoc:   gl.GetUniformLocation(sceneProg, gl.Str("lightDir\x00")),
		ambientLoc:    gl.GetUniformLocation(sceneProg, gl.Str("ambient\x00")),
		fogColorLoc:   gl.GetUniformLocation(sceneProg, gl.Str("fogColor\x00")),
		fogRangeLoc:   gl.GetUniformLocation(sceneProg, gl.Str("fogRange\x00")),

		overlayProg: overlayProg,
		screenLoc:   gl.GetUniformLocation(overlayProg, gl.Str("screen\x00")),

		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
	}

	// Capability flags are pipeline-build state, set once.
	gl.UseProgram(sceneProg)
	gl.Uniform1i(gl.GetUniformLocation(sceneProg, gl.Str("useLighting\x00")), boolToInt(cfg.Lighting))
	gl.Uniform1i(gl.GetUniformLocation(sceneProg, gl.Str("useFog\x00")), boolToInt(cfg.Fog))
	gl.Uniform1i(gl.GetUniformLocation(sceneProg, gl.Str("texSampler\x00")), 0)
	gl.UseProgram(overlayProg)
	gl.Uniform1i(gl.GetUniformLocation(overlayProg, gl.Str("texSampler\x00")), 0)
	gl.UseProgram(0)

	r.whiteTex = newSolidGLTexture(255, 255, 255, 255)

	return r, nil
}

func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// BeginFrame clears the color and depth buffers.
func (r *Renderer) BeginFrame(clear core.Color) {
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawMesh issues one scene draw call. texID 0 means untextured: the flat
// material color is used even when the pipeline was built with texturing.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, u shading.SceneUniforms, texID uint32, light shading.DirectionalLight, fog shading.FogParams) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.sceneProg)
	gl.UniformMatrix4fv(r.worldLoc, 1, false, (*float32)(unsafe.Pointer(&u.World[0][0])))
	gl.UniformMatrix4fv(r.viewLoc, 1, false, (*float32)(unsafe.Pointer(&u.View[0][0])))
	gl.UniformMatrix4fv(r.projLoc, 1, false, (*float32)(unsafe.Pointer(&u.Proj[0][0])))
	gl.Uniform4f(r.colorLoc, u.Color.R, u.Color.G, u.Color.B, u.Color.A)

	gl.Uniform3f(r.lightDirLoc, light.Direction.X, light.Direction.Y, light.Direction.Z)
	gl.Uniform1f(r.ambientLoc, light.Ambient)
	gl.Uniform3f(r.fogColorLoc, fog.Color.R, fog.Color.G, fog.Color.B)
	gl.Uniform2f(r.fogRangeLoc, fog.Start, fog.End)

	textured := r.config.Texturing && texID != 0
	gl.Uniform1i(r.useTextureLoc, boolToInt(textured))
	gl.ActiveTexture(gl.TEXTURE0)
	if textured {
		gl.BindTexture(gl.TEXTURE_2D, texID)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, r.whiteTex)
	}

	drawIndexed(gpu)
}

// DrawOverlay issues one overlay draw call. The depth test is disabled so
// the overlay composites over everything already drawn.
func (r *Renderer) DrawOverlay(mesh *scene.Mesh, u shading.OverlayUniforms, texID uint32) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil || texID == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	gl.UseProgram(r.overlayProg)
	gl.UniformMatrix4fv(r.screenLoc, 1, false, (*float32)(unsafe.Pointer(&u.Screen[0][0])))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	drawIndexed(gpu)
}

func drawIndexed(gpu *GPUMesh) {
	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ensureUploaded uploads mesh data on first use and binds the shared
// three-stream layout: 0 = position, 1 = normal, 2 = texcoord. The overlay
// program leaves slot 1 unread but the binding stays identical for both
// pipelines.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{IndexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Normal))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.UV))))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

// ReleaseMesh frees a previously uploaded mesh's GPU buffers.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	gpu, ok := r.gpuMeshes[mesh]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &gpu.VBO)
	gl.DeleteBuffers(1, &gpu.EBO)
	gl.DeleteVertexArrays(1, &gpu.VAO)
	delete(r.gpuMeshes, mesh)
	mesh.GPUData = nil
}

func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	gl.DeleteTextures(1, &r.whiteTex)
	gl.DeleteProgram(r.sceneProg)
	gl.DeleteProgram(r.overlayProg)
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
