// Package glsl emits the GLSL 450 sources for the compiled (GPU) form of
// the shading pipelines. The scene fragment source is specialized at
// build time from the pipeline's capability flags, so a pipeline without
// fog carries no fog code at all instead of branching per fragment.
package glsl

import (
	"fmt"
	"strings"

	"shading-pipeline/shading"
)

// SceneVertexSource returns the scene vertex stage. The uniform block
// layout (world, view, proj, color) is a wire contract with the host; see
// shading.SceneUniforms.
func SceneVertexSource() string {
	return `#version 450

layout(binding = 0) uniform SceneUniforms {
    mat4 world;
    mat4 view;
    mat4 proj;
    vec4 color;
} ubo;

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inTexCoord;

layout(location = 0) out vec4 fragColor;
layout(location = 1) out vec3 fragNormal;
layout(location = 2) out vec2 fragTexCoord;
layout(location = 3) out float fragDepth;

void main() {
    vec4 viewPos = ubo.view * ubo.world * vec4(inPosition, 1.0);
    gl_Position = ubo.proj * viewPos;
    fragColor = ubo.color;
    fragNormal = mat3(transpose(inverse(ubo.world))) * inNormal;
    fragTexCoord = inTexCoord;
    fragDepth = length(viewPos.xyz);
}
`
}

// SceneFragmentSource returns the scene fragment stage specialized for cfg.
// Stage order inside main is fixed: texture sample + cutout, lighting, fog.
func SceneFragmentSource(cfg shading.Config) string {
	var b strings.Builder
	b.WriteString("#version 450\n\n")

	b.WriteString(`layout(location = 0) in vec4 fragColor;
layout(location = 1) in vec3 fragNormal;
layout(location = 2) in vec2 fragTexCoord;
layout(location = 3) in float fragDepth;

layout(location = 0) out vec4 outColor;
`)

	if cfg.Texturing {
		b.WriteString("\nlayout(binding = 1) uniform sampler2D texSampler;\n")
	}
	if cfg.Lighting || cfg.Fog {
		b.WriteString(`
layout(binding = 2) uniform ShadeParams {
    vec4 lightDir;  // xyz = direction, w = ambient
    vec4 fogColor;
    vec2 fogRange;  // x = start, y = end
} params;
`)
	}

	b.WriteString("\nvoid main() {\n")

	if cfg.Texturing {
		fmt.Fprintf(&b, `    vec4 color = texture(texSampler, fragTexCoord);
    if (color.a < %v) {
        discard;
    }
`, shading.AlphaCutoff)
	} else {
		b.WriteString("    vec4 color = fragColor;\n")
	}

	if cfg.Lighting {
		b.WriteString(`
    vec3 normal = normalize(fragNormal);
    float diffuse = max(dot(normal, -normalize(params.lightDir.xyz)), 0.0);
    color.rgb *= diffuse + params.lightDir.w;
`)
	}

	if cfg.Fog {
		b.WriteString(`
    float fog = clamp((fragDepth - params.fogRange.x) / (params.fogRange.y - params.fogRange.x), 0.0, 1.0);
    color = vec4(mix(color.rgb, params.fogColor.rgb, fog), 1.0);
`)
	}

	b.WriteString("\n    outColor = color;\n}\n")
	return b.String()
}

// OverlayVertexSource returns the overlay vertex stage: position.xy through
// the screen matrix at depth 0. The normal attribute slot stays declared so
// the scene and overlay pipelines share one vertex layout.
func OverlayVertexSource() string {
	return `#version 450

layout(binding = 0) uniform OverlayUniforms {
    mat4 screen;
} ubo;

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;  // reserved, unused
layout(location = 2) in vec2 inTexCoord;

layout(location = 0) out vec2 fragTexCoord;

void main() {
    gl_Position = ubo.screen * vec4(inPosition.xy, 0.0, 1.0);
    fragTexCoord = inTexCoord;
}
`
}

// OverlayFragmentSource returns the overlay fragment stage: alpha-cutout
// texturing only.
func OverlayFragmentSource() string {
	return fmt.Sprintf(`#version 450

layout(location = 0) in vec2 fragTexCoord;

layout(location = 0) out vec4 outColor;

layout(binding = 1) uniform sampler2D texSampler;

void main() {
    vec4 color = texture(texSampler, fragTexCoord);
    if (color.a < %v) {
        discard;
    }
    outColor = color;
}
`, shading.AlphaCutoff)
}
