package ecolor

import(
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/tonemapper/pkg/emath"
)

var(
	// Rec.709 / sRGB primaries, the weights for the Y row of the linear RGB->XYZ matrix
	//
	// http://www.brucelindbloom.com/index.html?Eqn_RGB_XYZ_Matrix.html
	LuminanceWeights = emath.Vec3{0.212671, 0.715160, 0.072169}
)

// NewLinearRGB treats the input RGB channels as [0, 0xFFFF], and
// assumes they are already linear (e.g. a 16-bit TIFF exported without
// a tone curve), so just scales them to [0.0, 1.0].
func NewLinearRGB(col color.Color) hdrcolor.RGB {
	r, g, b, _ := col.RGBA()

	return hdrcolor.RGB{
		R: float64(r) / float64(0xFFFF),
		G: float64(g) / float64(0xFFFF),
		B: float64(b) / float64(0xFFFF),
	}
}

func ToVec3(c hdrcolor.Color) emath.Vec3 {
	r, g, b, _ := c.HDRRGBA()
	return emath.Vec3{r, g, b}
}

func FromVec3(v emath.Vec3) hdrcolor.RGB {
	return hdrcolor.RGB{R: v[0], G: v[1], B: v[2]}
}

// Luminance is the relative luminance (the Y of XYZ) of a linear RGB color.
func Luminance(c hdrcolor.Color) float64 {
	return ToVec3(c).Dot(LuminanceWeights)
}

// Scale multiplies all channels, e.g. to bake an exposure into the color.
func Scale(c hdrcolor.Color, s float64) hdrcolor.RGB {
	return FromVec3(ToVec3(c).Scale(s))
}

func HDRRGBFloorAt(c1 hdrcolor.RGB, min float64) hdrcolor.RGB {
	c2 := c1
	if c2.R < min { c2.R = min }
	if c2.G < min { c2.G = min }
	if c2.B < min { c2.B = min }
	return c2
}
