package opengl

// GLSL 410 sources for the OpenGL backend. The scene fragment shader keeps
// the optional stages behind uniform toggles that are set once when the
// pipeline is built; the SPIR-V path in package glsl specializes the source
// instead, but both run the same stage order: cutout, lighting, fog.

const sceneVertSrc = `#version 410 core

uniform mat4 world;
uniform mat4 view;
uniform mat4 proj;
uniform vec4 color;

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inTexCoord;

out vec4 fragColor;
out vec3 fragNormal;
out vec2 fragTexCoord;
out float fragDepth;

void main() {
    vec4 viewPos = view * world * vec4(inPosition, 1.0);
    gl_Position = proj * viewPos;
    fragColor = color;
    fragNormal = mat3(transpose(inverse(world))) * inNormal;
    fragTexCoord = inTexCoord;
    fragDepth = length(viewPos.xyz);
}
` + "\x00"

const sceneFragSrc = `#version 410 core

in vec4 fragColor;
in vec3 fragNormal;
in vec2 fragTexCoord;
in float fragDepth;

out vec4 outColor;

uniform sampler2D texSampler;
uniform bool useTexture;
uniform bool useLighting;
uniform bool useFog;

uniform vec3 lightDir;
uniform float ambient;
uniform vec3 fogColor;
uniform vec2 fogRange;

void main() {
    vec4 color = fragColor;
    if (useTexture) {
        color = texture(texSampler, fragTexCoord);
        if (color.a < 0.01) {
            discard;
        }
    }

    if (useLighting) {
        vec3 normal = normalize(fragNormal);
        float diffuse = max(dot(normal, -normalize(lightDir)), 0.0);
        color.rgb *= diffuse + ambient;
    }

    if (useFog) {
        float fog = clamp((fragDepth - fogRange.x) / (fogRange.y - fogRange.x), 0.0, 1.0);
        color = vec4(mix(color.rgb, fogColor, fog), 1.0);
    }

    outColor = color;
}
` + "\x00"

const overlayVertSrc = `#version 410 core

uniform mat4 screen;

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;  // reserved, unused
layout(location = 2) in vec2 inTexCoord;

out vec2 fragTexCoord;

void main() {
    gl_Position = screen * vec4(inPosition.xy, 0.0, 1.0);
    fragTexCoord = inTexCoord;
}
` + "\x00"

const overlayFragSrc = `#version 410 core

in vec2 fragTexCoord;

out vec4 outColor;

uniform sampler2D texSampler;

void main() {
    vec4 color = texture(texSampler, fragTexCoord);
    if (color.a < 0.01) {
        discard;
    }
    outColor = color;
}
` + "\x00"
