package exposure

import (
	"image"
	"math"
	"testing"

	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcImage struct {
	rect image.Rectangle
	at   func(x, y int) hdrcolor.RGB
}

func (f funcImage) Bounds() image.Rectangle        { return f.rect }
func (f funcImage) HDRAt(x, y int) hdrcolor.Color { return f.at(x, y) }

func uniform(v float64) funcImage {
	return funcImage{
		rect: image.Rect(0, 0, 10, 10),
		at:   func(x, y int) hdrcolor.RGB { return hdrcolor.RGB{R: v, G: v, B: v} },
	}
}

func TestLogAverageUniform(t *testing.T) {
	lavg, err := LogAverage(uniform(2.0))
	require.NoError(t, err)
	assert.InDelta(t, 2.0+logDelta, lavg, 1e-6)
}

func TestForKey(t *testing.T) {
	e, err := ForKey(uniform(0.36), 0.18)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, e, 1e-3)
}

func TestNegativeChannelsIgnored(t *testing.T) {
	img := funcImage{
		rect: image.Rect(0, 0, 2, 2),
		at:   func(x, y int) hdrcolor.RGB { return hdrcolor.RGB{R: -5, G: -5, B: -5} },
	}
	lavg, err := LogAverage(img)
	require.NoError(t, err)
	assert.InDelta(t, logDelta, lavg, 1e-9)
}

func TestPercentile(t *testing.T) {
	// 100 pixels with luminance 0.01 .. 1.00
	img := funcImage{
		rect: image.Rect(0, 0, 10, 10),
		at: func(x, y int) hdrcolor.RGB {
			v := float64(y*10+x+1) / 100
			return hdrcolor.RGB{R: v, G: v, B: v}
		},
	}

	p50, err := Percentile(img, 50)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p50, 0.02)

	p100, err := Percentile(img, 100)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p100, 0.01)
}

func TestForWhitePoint(t *testing.T) {
	e, err := ForWhitePoint(uniform(1.0), 99, 11.2, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 5.6, e, 0.05)

	_, err = ForWhitePoint(uniform(0.0), 99, 11.2, 2.0)
	assert.Error(t, err)
}

func TestEmptyImage(t *testing.T) {
	empty := funcImage{rect: image.Rectangle{}}
	_, err := LogAverage(empty)
	assert.Error(t, err)
	_, err = Percentile(empty, 50)
	assert.Error(t, err)
}

func TestNonFinitePixelsSkipped(t *testing.T) {
	// 2x2 of luminance 0.36, except for one NaN and one +Inf pixel
	img := funcImage{
		rect: image.Rect(0, 0, 2, 2),
		at: func(x, y int) hdrcolor.RGB {
			switch {
			case x == 0 && y == 0:
				return hdrcolor.RGB{R: math.NaN(), G: 0.36, B: 0.36}
			case x == 1 && y == 1:
				return hdrcolor.RGB{R: math.Inf(1), G: math.Inf(1), B: math.Inf(1)}
			}
			return hdrcolor.RGB{R: 0.36, G: 0.36, B: 0.36}
		},
	}

	e, err := ForKey(img, 0.18)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(e))
	assert.InDelta(t, 0.5, e, 1e-3)

	e, err = ForWhitePoint(img, 99, 11.2, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 11.2/(2*0.36), e, 0.05)
}

func TestAllNaNImage(t *testing.T) {
	img := funcImage{
		rect: image.Rect(0, 0, 2, 2),
		at:   func(x, y int) hdrcolor.RGB { return hdrcolor.RGB{R: math.NaN(), G: math.NaN(), B: math.NaN()} },
	}

	_, err := ForKey(img, 0.18)
	assert.Error(t, err)
	_, err = ForWhitePoint(img, 99, 11.2, 2.0)
	assert.Error(t, err)
}
