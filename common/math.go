package common

import "github.com/chewxy/math32"

func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}

// Shade scales an 8-bit channel by f, saturating at 255.
func Shade(c uint8, f float32) uint8 {
	return uint8(Clamp(math32.Round(float32(c)*f), 0, 255))
}
