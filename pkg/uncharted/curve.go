package uncharted

// The Hable filmic curve, as used in Uncharted 2. See John Hable's
// "Filmic Tonemapping for Real-time Rendering" (Siggraph 2010 course).
//
// The shader in shader.go is rendered from CurveExpr and ExposureBias, so
// the CPU and GPU paths share one definition. Curve.Eval must keep the
// same operation order as CurveExpr.

const(
	// Fixed pre-scale applied before the curve, on top of the user's exposure.
	ExposureBias = 2.0

	// The curve in shading language syntax, as a function of x.
	CurveExpr = "((x * (A*x + C*B) + D*E) / (x * (A*x+B) + D*F)) - E/F"
)

// Curve holds the six shape parameters and the white point. Zero
// denominators are not guarded against: they produce Inf/NaN, which the
// final clamp pins down.
type Curve struct {
	A, B, C, D, E, F float64  // shoulder, linear strength, linear angle, toe, toe numerator, toe denominator
	W                float64  // white point
}

// Eval is the raw curve.
func (c Curve)Eval(x float64) float64 {
	return ((x * (c.A*x + c.C*c.B) + c.D*c.E) / (x * (c.A*x+c.B) + c.D*c.F)) - c.E/c.F
}

// WhiteScale normalizes the curve so that Eval(W) maps to 1.0.
func (c Curve)WhiteScale() float64 {
	return 1.0 / c.Eval(c.W)
}

// Map runs one channel of a linear color through exposure, bias and the
// normalized curve. The result is not clamped.
func (c Curve)Map(v, exposure float64) float64 {
	value := exposure * v
	value = c.Eval(ExposureBias * value)
	return value * c.WhiteScale()
}
