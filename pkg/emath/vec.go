package emath

import(
	"fmt"
	"golang.org/x/image/math/f64"  // Will be "image/math/f64" at some point, hopefully make this file redundant
)

// Use a local type so we can hang methods off it
type Vec3 f64.Vec3

func (v Vec3)String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", v[0], v[1], v[2])
}

func (v Vec3)Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

func (v Vec3)Scale(s float64) Vec3 {
	return Vec3{v[0]*s, v[1]*s, v[2]*s}
}

func (v *Vec3)FloorAt(min float64) {
	if v[0] < min { v[0] = min }
	if v[1] < min { v[1] = min }
	if v[2] < min { v[2] = min }
}

func (v *Vec3)CeilingAt(max float64) {
	if v[0] > max { v[0] = max }
	if v[1] > max { v[1] = max }
	if v[2] > max { v[2] = max }
}

// Clamp01 clamps each channel; see the scalar Clamp01 for the NaN handling.
func (v Vec3)Clamp01() Vec3 {
	return Vec3{Clamp01(v[0]), Clamp01(v[1]), Clamp01(v[2])}
}

func (v Vec3)GammaCorrect(gamma float64) Vec3 {
	return Vec3{
		GammaCorrect(v[0], gamma),
		GammaCorrect(v[1], gamma),
		GammaCorrect(v[2], gamma),
	}
}

// Quantize8 returns the 8 bit R,G,B triple, truncating.
func (v Vec3)Quantize8() [3]uint8 {
	return [3]uint8{Quantize8(v[0]), Quantize8(v[1]), Quantize8(v[2])}
}
