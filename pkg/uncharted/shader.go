package uncharted

import(
	"bytes"
	"fmt"
	"strconv"
	"text/template"
)

// Shader is a GLSL program, ready to hand to whatever compiles it.
type Shader struct {
	Name     string
	Vertex   string
	Fragment string
}

const vertexSource = `#version 330
in vec2 position;
out vec2 uv;
void main() {
    gl_Position = vec4(position.x*2-1, position.y*2-1, 0.0, 1.0);
    uv = vec2(position.x, 1-position.y);
}`

// Uniform names must match ParameterMap's Uniform fields; a renderer
// binds them by name.
const fragmentTemplate = `#version 330
uniform sampler2D source;
uniform float exposure;
{{- range .Uniforms}}
uniform float {{.}};
{{- end}}
in vec2 uv;
out vec4 out_color;

vec4 clampedValue(vec4 color) {
    color.a = 1.0;
    return clamp(color, 0.0, 1.0);
}

vec4 gammaCorrect(vec4 color) {
    return pow(color, vec4(1.0/gamma));
}

vec4 tonemap(vec4 x) {
    return {{.Curve}};
}

void main() {
    vec4 color = exposure * texture(source, uv);
    float exposureBias = {{.ExposureBias}};
    vec4 curr = tonemap(exposureBias * color);
    vec4 whiteScale = 1.0 / tonemap(vec4(W));
    color = curr * whiteScale;
    color = clampedValue(color);
    out_color = gammaCorrect(color);
}`

var(
	shader = Shader{
		Name:     "Uncharted",
		Vertex:   vertexSource,
		Fragment: renderFragment(NewDefaultParameters().Uniforms()),
	}
)

func renderFragment(uniforms []string) string {
	tmpl := template.Must(template.New("fragment").Parse(fragmentTemplate))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Uniforms     []string
		Curve        string
		ExposureBias string
	}{
		Uniforms:     uniforms,
		Curve:        CurveExpr,
		ExposureBias: glslFloat(ExposureBias),
	})
	if err != nil {
		panic(fmt.Sprintf("fragment shader template: %v", err))
	}

	return buf.String()
}

// glslFloat always has a decimal point, so GLSL reads it as a float literal.
func glslFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if _, err := strconv.Atoi(s); err == nil {
		s += ".0"
	}
	return s
}
