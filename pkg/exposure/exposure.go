package exposure

// Helpers to pick an exposure for an HDR image, before handing it to a
// tonemapper. These look at luminance only.

import(
	"fmt"
	"image"
	"math"

	"github.com/codahale/hdrhistogram"
	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/tonemapper/pkg/ecolor"
)

const(
	// Luminances are recorded into the histogram as fixed point ints
	lumScale   = 10000.0
	lumMax     = 1e6 // anything brighter is recorded as this
	sigFigs    = 3

	// Keeps log() away from black pixels
	logDelta   = 1e-4
)

type Image interface {
	Bounds() image.Rectangle
	HDRAt(x, y int) hdrcolor.Color
}

// luminances skips pixels whose luminance isn't finite; renderers do
// leave NaNs behind. An image with no finite pixels at all is an error.
func luminances(img Image) ([]float64, error) {
	b := img.Bounds()
	ret := make([]float64, 0, b.Dx() * b.Dy())

	for y:=b.Min.Y; y<b.Max.Y; y++ {
		for x:=b.Min.X; x<b.Max.X; x++ {
			rgb := ecolor.HDRRGBFloorAt(ecolor.FromVec3(ecolor.ToVec3(img.HDRAt(x, y))), 0.0)
			l := ecolor.Luminance(rgb)
			if math.IsNaN(l) || math.IsInf(l, 0) {
				continue
			}
			ret = append(ret, l)
		}
	}

	if len(ret) == 0 {
		return nil, fmt.Errorf("no finite pixels in image %s", b)
	}
	return ret, nil
}

// LogAverage is the geometric mean luminance of the image, which is the
// usual estimate of the scene's "key" (Reinhard et al. 2002).
func LogAverage(img Image) (float64, error) {
	lums, err := luminances(img)
	if err != nil {
		return 0, fmt.Errorf("log average: %v", err)
	}

	for i := range lums {
		lums[i] = math.Log(logDelta + lums[i])
	}

	return math.Exp(stat.Mean(lums, nil)), nil
}

// ForKey returns the exposure that scales the log average luminance of
// the image to `key`; 0.18 is middle grey.
func ForKey(img Image, key float64) (float64, error) {
	lavg, err := LogAverage(img)
	if err != nil {
		return 0, err
	}
	return key / lavg, nil
}

// Percentile returns the luminance below which `pct` percent (0-100) of
// the pixels fall. Precision is about three significant figures.
func Percentile(img Image, pct float64) (float64, error) {
	lums, err := luminances(img)
	if err != nil {
		return 0, fmt.Errorf("percentile: %v", err)
	}

	h := hdrhistogram.New(1, int64(lumMax * lumScale), sigFigs)
	for _, l := range lums {
		v := int64(math.Min(l, lumMax) * lumScale)
		if err := h.RecordValue(v); err != nil {
			return 0, fmt.Errorf("percentile: record %f: %v", l, err)
		}
	}

	return float64(h.ValueAtQuantile(pct)) / lumScale, nil
}

// ForWhitePoint returns the exposure that, after the given bias, puts the
// luminance at percentile `pct` onto `white`; i.e. it avoids blowing out
// all but the brightest (100-pct)% of pixels.
func ForWhitePoint(img Image, pct, white, bias float64) (float64, error) {
	lum, err := Percentile(img, pct)
	if err != nil {
		return 0, err
	}
	if lum <= 0 {
		return 0, fmt.Errorf("white point: luminance at %.1f%% is %f, image too dark", pct, lum)
	}
	return white / (bias * lum), nil
}
