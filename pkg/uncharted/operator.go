package uncharted

import(
	"fmt"
	"image"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/tonemapper/pkg/ecolor"
	"github.com/abworrall/tonemapper/pkg/emath"
)

// Image is the HDR input; any github.com/mdouchement/hdr.Image will do.
type Image interface {
	Bounds() image.Rectangle
	HDRAt(x, y int) hdrcolor.Color
}

// Operator is the Uncharted (Hable) filmic tonemapper. The parameters
// are read fresh on every call, so they can be changed between calls.
// An Operator must not be mutated while a Process call is running.
type Operator struct {
	Name         string
	Description  string
	Params       ParameterMap
}

func NewDefaultParameters() ParameterMap {
	pm := NewParameterMap()
	pm.Add("Gamma", NewParameter(2.2,  0, 10, "gamma", "Gamma correction value"))
	pm.Add("A",     NewParameter(0.22, 0,  1, "A", "Shoulder strength curve parameter"))
	pm.Add("B",     NewParameter(0.3,  0,  1, "B", "Linear strength curve parameter"))
	pm.Add("C",     NewParameter(0.1,  0,  1, "C", "Linear angle curve parameter"))
	pm.Add("D",     NewParameter(0.2,  0,  1, "D", "Toe strength curve parameter"))
	pm.Add("E",     NewParameter(0.01, 0,  1, "E", "Toe numerator curve parameter"))
	pm.Add("F",     NewParameter(0.3,  0,  1, "F", "Toe denominator curve parameter"))
	pm.Add("W",     NewParameter(11.2, 0, 20, "W", "White point\nMinimal value that is mapped to 1."))
	return pm
}

func NewOperator() *Operator {
	return &Operator{
		Name:        "Uncharted (Hable)",
		Description: "Uncharted Mapping\n\nBy John Hable from the \"Filmic Tonemapping for Real-time Rendering\" Siggraph 2010 Course by Haarm-Pieter Duiker.",
		Params:      NewDefaultParameters(),
	}
}

func (op *Operator)String() string {
	return fmt.Sprintf("%s [\n%s]\n", op.Name, op.Params)
}

// Curve snapshots the current curve parameters.
func (op *Operator)Curve() Curve {
	return Curve{
		A: op.Params.Value("A"),
		B: op.Params.Value("B"),
		C: op.Params.Value("C"),
		D: op.Params.Value("D"),
		E: op.Params.Value("E"),
		F: op.Params.Value("F"),
		W: op.Params.Value("W"),
	}
}

func (op *Operator)Gamma() float64 { return op.Params.Value("Gamma") }

// Map is the unclamped, un-gamma'ed response for a single channel.
func (op *Operator)Map(v, exposure float64) float64 {
	return op.Curve().Map(v, exposure)
}

// Graph evaluates the display response at exposure 1, for plotting. It
// gives exactly the value Process would quantize for a gray pixel of
// that value.
func (op *Operator)Graph(value float64) float64 {
	return op.pipeline().channel(value, 1.0)
}

// Shader returns the GLSL program that does the same mapping on the
// GPU. It is a constant; parameters are passed in as uniforms.
func (op *Operator)Shader() Shader {
	return shader
}

// pipeline is the per-call snapshot of everything a pixel needs.
type pipeline struct {
	curve  Curve
	gamma  float64
}

func (op *Operator)pipeline() pipeline {
	return pipeline{curve: op.Curve(), gamma: op.Gamma()}
}

func (pl pipeline)channel(v, exposure float64) float64 {
	return emath.GammaCorrect(emath.Clamp01(pl.curve.Map(v, exposure)), pl.gamma)
}

func (pl pipeline)pixel(c hdrcolor.Color, exposure float64) emath.Vec3 {
	rgb := ecolor.ToVec3(c)
	return emath.Vec3{
		pl.channel(rgb[0], exposure),
		pl.channel(rgb[1], exposure),
		pl.channel(rgb[2], exposure),
	}
}
