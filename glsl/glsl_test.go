package glsl

import (
	"strings"
	"testing"

	"shading-pipeline/shading"
)

func TestSceneVertexUniformBlockOrder(t *testing.T) {
	src := SceneVertexSource()

	// The block field order is a wire contract with the host upload code.
	world := strings.Index(src, "mat4 world;")
	view := strings.Index(src, "mat4 view;")
	proj := strings.Index(src, "mat4 proj;")
	color := strings.Index(src, "vec4 color;")
	if world < 0 || view < 0 || proj < 0 || color < 0 {
		t.Fatal("uniform block fields missing from vertex source")
	}
	if !(world < view && view < proj && proj < color) {
		t.Error("uniform block field order changed; host uploads would be corrupted")
	}
}

func TestSceneVertexDefersShading(t *testing.T) {
	src := SceneVertexSource()
	if !strings.Contains(src, "fragColor = ubo.color;") {
		t.Error("vertex stage must propagate the material color unchanged")
	}
	if !strings.Contains(src, "transpose(inverse(ubo.world))") {
		t.Error("normal transform must use the inverse-transpose of world")
	}
	if strings.Contains(src, "normalize(") {
		t.Error("vertex stage must not renormalize; that is the fragment stage's job")
	}
}

func TestSceneFragmentSpecialization(t *testing.T) {
	cases := []struct {
		name string
		cfg  shading.Config
		has  []string
		not  []string
	}{
		{
			name: "all stages",
			cfg:  shading.Config{Lighting: true, Fog: true, Texturing: true},
			has:  []string{"discard", "texSampler", "diffuse", "mix(color.rgb"},
		},
		{
			name: "flat color",
			cfg:  shading.Config{},
			has:  []string{"color = fragColor"},
			not:  []string{"discard", "texSampler", "diffuse", "mix("},
		},
		{
			name: "textured no fog",
			cfg:  shading.Config{Texturing: true},
			has:  []string{"discard"},
			not:  []string{"mix(", "diffuse"},
		},
		{
			name: "fog only",
			cfg:  shading.Config{Fog: true},
			has:  []string{"fogRange", "mix(color.rgb"},
			not:  []string{"discard", "texSampler"},
		},
	}
	for _, c := range cases {
		src := SceneFragmentSource(c.cfg)
		for _, want := range c.has {
			if !strings.Contains(src, want) {
				t.Errorf("%s: expected %q in source", c.name, want)
			}
		}
		for _, not := range c.not {
			if strings.Contains(src, not) {
				t.Errorf("%s: unexpected %q in source", c.name, not)
			}
		}
	}
}

func TestSceneFragmentCutoutThreshold(t *testing.T) {
	src := SceneFragmentSource(shading.Config{Texturing: true})
	if !strings.Contains(src, "color.a < 0.01") {
		t.Error("cutout must discard strictly below 0.01, keeping the boundary")
	}
}

func TestSceneFragmentStageOrder(t *testing.T) {
	src := SceneFragmentSource(shading.Config{Lighting: true, Fog: true, Texturing: true})
	cut := strings.Index(src, "discard")
	lit := strings.Index(src, "diffuse")
	fog := strings.Index(src, "mix(color.rgb")
	if !(cut < lit && lit < fog) {
		t.Error("fragment stages must run cutout, then lighting, then fog")
	}
}

func TestOverlaySources(t *testing.T) {
	vert := OverlayVertexSource()
	if !strings.Contains(vert, "mat4 screen;") {
		t.Error("overlay block must hold a single screen matrix")
	}
	if !strings.Contains(vert, "vec4(inPosition.xy, 0.0, 1.0)") {
		t.Error("overlay must fix depth to 0 and ignore input z")
	}
	if !strings.Contains(vert, "location = 1) in vec3 inNormal") {
		t.Error("overlay keeps the normal slot reserved for the shared layout")
	}

	frag := OverlayFragmentSource()
	if !strings.Contains(frag, "discard") {
		t.Error("overlay fragment must carry the cutout rule")
	}
	for _, banned := range []string{"fog", "diffuse", "lightDir"} {
		if strings.Contains(frag, banned) {
			t.Errorf("overlay fragment must not contain %q", banned)
		}
	}
}

func TestCompileFileMissingCompilerOrSource(t *testing.T) {
	// Whatever the host has installed, a nonexistent source must error and
	// never be deferred to runtime.
	if _, err := CompileFile(StageVertex, "does-not-exist.glsl", t.TempDir()+"/out.spv"); err == nil {
		t.Error("expected an error for missing source or compiler")
	}
}

func TestSpirvWords(t *testing.T) {
	words, err := spirvWords([]byte{0x03, 0x02, 0x23, 0x07})
	if err != nil {
		t.Fatal(err)
	}
	if words[0] != 0x07230203 {
		t.Errorf("expected little-endian word 0x07230203, got %#x", words[0])
	}

	if _, err := spirvWords([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated binary")
	}
}
