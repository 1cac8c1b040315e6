package blurhash

import "math"

// toLinear maps an 8-bit sRGB sample to linear light.  Built at init,
// 256 × 8 bytes = 2 KB.
var toLinear [256]float64

func init() {
	for i := range toLinear {
		toLinear[i] = srgbToLinear(uint8(i))
	}
}

// srgbToLinear applies the sRGB decoding transfer function.
func srgbToLinear(c uint8) float64 {
	v := float64(c) / 255
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// linearToSRGB is the inverse of srgbToLinear, rounded to the nearest
// 8-bit value.  Inputs outside [0, 1] are clamped.
func linearToSRGB(v float64) uint8 {
	v = clamp(v, 0, 1)
	if v <= 0.0031308 {
		return uint8(v*12.92*255 + 0.5)
	}
	return uint8((1.055*math.Pow(v, 1/2.4)-0.055)*255 + 0.5)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// signPow raises |v| to exp, keeping the sign of v.
func signPow(v, exp float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), exp), v)
}
