package emath

import "math"

// Some functions that only operate on basic types, that are useful

// Clamp01 pins f into [0,1]. NaN has no order, so it is pinned to 0;
// without this the final 8 bit conversion would be implementation defined.
func Clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0.0 {
		return 0.0
	} else if f > 1.0 {
		return 1.0
	}
	return f
}

// GammaCorrect applies the power-law display transform, f^(1/gamma).
func GammaCorrect(f, gamma float64) float64 {
	return math.Pow(f, 1.0/gamma)
}

// Quantize8 maps [0,1] to [0,255] by truncation (not rounding), which is
// what a narrowing float->uint8 cast does. Anything outside [0,1] (a
// negative gamma can push values past 1) saturates rather than wrapping.
func Quantize8(f float64) uint8 {
	switch {
	case math.IsNaN(f) || f <= 0.0:
		return 0
	case f >= 1.0:
		return 255
	}
	return uint8(255.0 * f)
}

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// Each channel in `v` is assumed to be in the range [0,1]
func GammaExpand_sRGB(v Vec3) Vec3 {
	return Vec3{
		GammaExpand_F64(v[0]),
		GammaExpand_F64(v[1]),
		GammaExpand_F64(v[2]),
	}
}

func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}
