package graph

// Renders the operator's response curve into an image, like the little
// preview graph next to the parameter sliders in a tonemapping UI.

import(
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/abworrall/tonemapper/pkg/emath"
	"github.com/abworrall/tonemapper/pkg/uncharted"
)

type Point struct {
	X, Y float64
}

// Sample evaluates f at n+1 evenly spaced points across [0,max].
func Sample(f func(float64) float64, n int, max float64) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	for i:=0; i<=n; i++ {
		x := max * float64(i) / float64(n)
		pts[i] = Point{x, f(x)}
	}
	return pts
}

type Plot struct {
	Width, Height  int
	Samples        int
	Max            float64   // Right hand end of the x axis; if zero, use the white point
	ShowSRGB       bool      // Also draw plain clip + sRGB encoding, for comparison
	FontSize       float64
}

func NewDefaultPlot() Plot {
	return Plot{
		Width:    640,
		Height:   400,
		Samples:  256,
		ShowSRGB: true,
		FontSize: 13,
	}
}

var(
	background = colorful.Color{R: 1, G: 1, B: 1}
	axisColor  = colorful.Color{R: 0.3, G: 0.3, B: 0.3}
	curveColor = colorful.Hcl(30, 0.9, 0.55).Clamped()
	srgbColor  = colorful.Hcl(250, 0.5, 0.65).Clamped()
)

// Render draws Graph(x) for the operator's current parameters.
func (p Plot)Render(op *uncharted.Operator) (image.Image, error) {
	max := p.Max
	if max <= 0 {
		max = op.Params.Value("W")
	}
	if !(max > 0) {
		return nil, fmt.Errorf("graph: bad x range %f", max)
	}

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("graph: font: %v", err)
	}

	margin := 4 * p.FontSize
	plotW  := float64(p.Width) - 2*margin
	plotH  := float64(p.Height) - 2*margin
	toPx   := func(pt Point) (float64, float64) {
		return margin + pt.X/max*plotW, float64(p.Height) - margin - pt.Y*plotH
	}

	dc := gg.NewContext(p.Width, p.Height)
	dc.SetColor(background)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: p.FontSize}))

	// Axes, and the y=1 line
	dc.SetColor(axisColor)
	dc.SetLineWidth(1)
	x0, y0 := toPx(Point{0, 0})
	x1, y1 := toPx(Point{max, 1})
	dc.DrawLine(x0, y0, x1, y0)
	dc.DrawLine(x0, y0, x0, y1)
	dc.Stroke()
	dc.SetDash(4, 4)
	dc.DrawLine(x0, y1, x1, y1)
	dc.Stroke()
	dc.SetDash()

	dc.DrawStringAnchored("0", x0, y0+p.FontSize, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%g", max), x1, y0+p.FontSize, 0.5, 0.5)
	dc.DrawStringAnchored("1", x0-p.FontSize, y1, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%s, gamma %g", op.Name, op.Gamma()), float64(p.Width)/2, margin/2, 0.5, 0.5)

	if p.ShowSRGB {
		srgb := func(x float64) float64 { return emath.GammaExpand_F64(emath.Clamp01(x)) }
		drawCurve(dc, Sample(srgb, p.Samples, max), toPx, srgbColor, 1.5)
	}
	drawCurve(dc, Sample(op.Graph, p.Samples, max), toPx, curveColor, 2.5)

	return dc.Image(), nil
}

func drawCurve(dc *gg.Context, pts []Point, toPx func(Point) (float64, float64), c colorful.Color, width float64) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	for i, pt := range pts {
		x, y := toPx(pt)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
}

func (p Plot)WritePNG(op *uncharted.Operator, filename string) error {
	img, err := p.Render(op)
	if err != nil {
		return err
	}
	return gg.SavePNG(filename, img)
}
