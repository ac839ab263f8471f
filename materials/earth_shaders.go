package materials

// Vertex stage: positions are scaled then placed by the object isometry,
// and the clip-space result is nudged along the model normal by the bump map.
const earthVertSrc = `
#version 410 core
in vec3 position;
uniform mat4 view;
uniform mat4 proj;
uniform mat4 transform;
uniform mat3 scale;
uniform sampler2D height_map;

in vec3 normal;
out vec3 ls_normal;
out vec3 ls_position;

in vec2 tex_coord;
out vec2 tex_coord_v;

void main() {
    ls_position = position;
    ls_normal   = normal;
    tex_coord_v = tex_coord;
    gl_Position = proj * view * transform * mat4(scale) * vec4(position, 1.0) +
        vec4(normal * texture(height_map, tex_coord_v.xy).x * 0.005, 1.0);
}
`

// Fragment stage. ShadeFragment in shading.go mirrors this line for line;
// keep the two in step.
const earthFragSrc = `
#version 410 core
in vec3 ls_normal;
in vec3 ls_position;
in vec2 tex_coord_v;
uniform vec3 camera_position;
uniform sampler2D texture_map;
uniform sampler2D specular_map;
uniform sampler2D cloud_map;
uniform sampler2D night_map;
uniform vec3 lightdir;
uniform float time;
out vec4 frag_color;

void main() {
    vec3 normal = normalize(ls_normal);
    float D = max(4.0*pow(dot(lightdir, normal), 40.0), 0.0);
    // Rim term. Not a physical Fresnel: the eye position is used as a direction.
    float R_out = 1.0 - dot(normalize(camera_position), normal);
    float DN = dot(lightdir, normal);
    DN = clamp(DN * 2.0, 0.0, 1.0);

    vec4 land = texture(texture_map, tex_coord_v.xy);

    vec4 night_side = mix(
        texture(night_map, tex_coord_v.xy)*vec4(1.0,0.984,0.78,1.0),
        land,
        0.1
    );

    vec4 day_side = mix(
        mix(
            mix(
                land,
                vec4(0.93,0.92,0.90,1.0),
                texture(specular_map, tex_coord_v.xy) * D
            ),
            texture(cloud_map, vec2(tex_coord_v.x - (time / 5120.0), tex_coord_v.y) ),
            0.1
        ),
        vec4(0.471, 0.612, 0.831, 1.0),
        R_out
    );

    if (DN < 1.0 && DN > 0.0) {
        frag_color = mix(
            mix(
                night_side,
                vec4(0.5, 0.0, 0.0, 1.0),
                DN * 0.1
            ),
            day_side,
            DN
        );
    } else {
        frag_color = mix(
            night_side,
            day_side,
            DN
        );
    }
}
`
