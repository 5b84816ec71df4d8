package uncharted

import (
	"image"
	"math"
	"testing"

	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridImage is a minimal Image; pixels are stored row-major.
type gridImage struct {
	rect image.Rectangle
	pix  []hdrcolor.RGB
}

func newGridImage(r image.Rectangle, fill func(x, y int) hdrcolor.RGB) *gridImage {
	img := &gridImage{rect: r, pix: make([]hdrcolor.RGB, r.Dx()*r.Dy())}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.pix[(y-r.Min.Y)*r.Dx()+(x-r.Min.X)] = fill(x, y)
		}
	}
	return img
}

func (g *gridImage) Bounds() image.Rectangle { return g.rect }
func (g *gridImage) HDRAt(x, y int) hdrcolor.Color {
	return g.pix[(y-g.rect.Min.Y)*g.rect.Dx()+(x-g.rect.Min.X)]
}

func gray(v float64) hdrcolor.RGB { return hdrcolor.RGB{R: v, G: v, B: v} }

func TestCurveDefaults(t *testing.T) {
	c := NewOperator().Curve()

	assert.InDelta(t, 1.153002030167013, c.WhiteScale(), 1e-12)
	assert.InDelta(t, 0.6668444642004888, c.Map(1.0, 1.0), 1e-12)
	assert.InDelta(t, 0.0, c.Map(0.0, 1.0), 1e-12)

	// The bias doubles the input, so W/2 lands exactly on the white point
	assert.InDelta(t, 1.0, c.Map(c.W/ExposureBias, 1.0), 1e-12)

	// Exposure is a plain pre-multiply
	assert.Equal(t, c.Map(1.0, 1.0), c.Map(0.5, 2.0))
}

func TestGraphRegressionValues(t *testing.T) {
	op := NewOperator()

	tests := []struct {
		in, want float64
	}{
		{0.0, 0.0},
		{0.18, 0.48546160595299725},
		{0.5, 0.7043511092289534},
		{1.0, 0.8317851435482523},
		{2.0, 0.9238411677907383},
		{5.6, 1.0},
		{100.0, 1.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, op.Graph(tt.in), 1e-9, "Graph(%v)", tt.in)
	}
}

func TestGraphRangeAndMonotonic(t *testing.T) {
	op := NewOperator()
	w := op.Params.Value("W")

	prev := -1.0
	for i := 0; i <= 2000; i++ {
		v := w * float64(i) / 2000
		g := op.Graph(v)
		require.False(t, math.IsNaN(g))
		require.GreaterOrEqual(t, g, 0.0)
		require.LessOrEqual(t, g, 1.0)
		require.GreaterOrEqual(t, g, prev, "not monotonic at %v", v)
		prev = g
	}

	for _, v := range []float64{1e3, 1e6, math.MaxFloat32} {
		g := op.Graph(v)
		assert.True(t, g >= 0.0 && g <= 1.0, "Graph(%v)=%v", v, g)
	}
}

func TestGraphIsPure(t *testing.T) {
	op := NewOperator()
	before := op.Params.Clone()

	assert.Equal(t, op.Graph(0.37), op.Graph(0.37))
	assert.Equal(t, before.Keys(), op.Params.Keys())
	for _, k := range before.Keys() {
		assert.Equal(t, before.Value(k), op.Params.Value(k))
	}
}

func TestGraphFollowsParameterChanges(t *testing.T) {
	op := NewOperator()
	g1 := op.Graph(1.0)

	require.NoError(t, op.Params.Set("Gamma", 1.0))
	assert.InDelta(t, 0.6668444642004888, op.Graph(1.0), 1e-12)

	op.Params.Reset()
	assert.Equal(t, g1, op.Graph(1.0))
}

func TestDegenerateParametersPinToZero(t *testing.T) {
	op := NewOperator()
	require.NoError(t, op.Params.Set("F", 0.0))

	assert.True(t, math.IsNaN(op.Map(1.0, 1.0)) || math.IsInf(op.Map(1.0, 1.0), 0))
	assert.Equal(t, 0.0, op.Graph(1.0))

	img := newGridImage(image.Rect(0, 0, 1, 1), func(x, y int) hdrcolor.RGB { return gray(1.0) })
	buf := make([]byte, 3)
	op.Process(img, buf, 1.0, nil)
	assert.Equal(t, []byte{0, 0, 0}, buf)
}

// The curve overflows to Inf/Inf for huge inputs, and NaN clamps to 0.
func TestGraphOverflowPinsToZero(t *testing.T) {
	op := NewOperator()
	assert.True(t, math.IsNaN(op.Map(1e200, 1.0)))
	assert.Equal(t, 0.0, op.Graph(1e200))
	assert.Equal(t, 0.0, op.Graph(math.Inf(1)))

	// Still finite, and saturated, well short of overflow
	assert.Equal(t, 1.0, op.Graph(1e100))
}

func TestProcessSinglePixelMatchesGraph(t *testing.T) {
	op := NewOperator()
	col := hdrcolor.RGB{R: 0.25, G: 1.0, B: 4.0}
	img := newGridImage(image.Rect(0, 0, 1, 1), func(x, y int) hdrcolor.RGB { return col })

	buf := make([]byte, 3)
	op.Process(img, buf, 1.0, nil)

	want := []byte{
		uint8(255 * op.Graph(col.R)),
		uint8(255 * op.Graph(col.G)),
		uint8(255 * op.Graph(col.B)),
	}
	assert.Equal(t, want, buf)
	assert.Equal(t, []byte{141, 212, 250}, buf)
}

func TestProcessExposure(t *testing.T) {
	op := NewOperator()
	img := newGridImage(image.Rect(0, 0, 1, 1), func(x, y int) hdrcolor.RGB { return gray(0.5) })

	buf := make([]byte, 3)
	op.Process(img, buf, 2.0, nil)
	assert.Equal(t, []byte{212, 212, 212}, buf)
}

func TestProcessRowMajorOrder(t *testing.T) {
	op := NewOperator()
	require.NoError(t, op.Params.Set("Gamma", 1.0))

	// Non-zero origin; each pixel encodes its position
	r := image.Rect(10, 20, 13, 22)
	img := newGridImage(r, func(x, y int) hdrcolor.RGB {
		return hdrcolor.RGB{R: float64(x - 10), G: float64(y - 20), B: 0}
	})

	buf := make([]byte, BufferSize(r))
	require.Len(t, buf, 18)
	op.Process(img, buf, 1.0, nil)

	ramp := func(v float64) byte { return uint8(255 * op.Graph(v)) }
	want := []byte{}
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			want = append(want, ramp(float64(col)), ramp(float64(row)), 0)
		}
	}
	assert.Equal(t, want, buf)
}

func TestProcessProgress(t *testing.T) {
	op := NewOperator()
	img := newGridImage(image.Rect(0, 0, 7, 13), func(x, y int) hdrcolor.RGB { return gray(float64(x + y)) })

	var p Progress
	p.Add(5) // stale value from an earlier run
	buf := make([]byte, BufferSize(img.Bounds()))
	op.Process(img, buf, 1.0, &p)

	assert.InDelta(t, 1.0, p.Value(), 1e-9)
}

// countingImage checks the progress counter as each pixel is read
type countingImage struct {
	*gridImage
	progress *Progress
	seen     []float64
}

func (c *countingImage) HDRAt(x, y int) hdrcolor.Color {
	c.seen = append(c.seen, c.progress.Value())
	return c.gridImage.HDRAt(x, y)
}

func TestProcessProgressNonDecreasing(t *testing.T) {
	op := NewOperator()
	p := &Progress{}
	img := &countingImage{
		gridImage: newGridImage(image.Rect(0, 0, 4, 4), func(x, y int) hdrcolor.RGB { return gray(1) }),
		progress:  p,
	}

	op.Process(img, make([]byte, 48), 1.0, p)

	require.Len(t, img.seen, 16)
	assert.Equal(t, 0.0, img.seen[0])
	for i := 1; i < len(img.seen); i++ {
		assert.Greater(t, img.seen[i], img.seen[i-1])
		assert.InDelta(t, float64(i)/16, img.seen[i], 1e-12)
	}
}

func TestProgressNil(t *testing.T) {
	var p *Progress
	p.Add(0.5)
	p.Reset()
	assert.Equal(t, 0.0, p.Value())
}

func TestToRGBA(t *testing.T) {
	out := ToRGBA(image.Rect(5, 5, 7, 6), []byte{1, 2, 3, 4, 5, 6})
	assert.Equal(t, image.Rect(0, 0, 2, 1), out.Bounds())
	assert.Equal(t, []byte{1, 2, 3, 255, 4, 5, 6, 255}, out.Pix)
}

func TestTMO(t *testing.T) {
	img := newGridImage(image.Rect(0, 0, 2, 2), func(x, y int) hdrcolor.RGB { return gray(1.0) })
	tm := NewDefaultTMO(img)
	tm.Progress = &Progress{}

	out := tm.Perform()
	require.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())

	r, g, b, a := out.At(1, 1).RGBA()
	assert.Equal(t, uint32(212)*0x101, r)
	assert.Equal(t, r, g)
	assert.Equal(t, r, b)
	assert.Equal(t, uint32(0xFFFF), a)
	assert.InDelta(t, 1.0, tm.Progress.Value(), 1e-12)
}
