// Package units converts between the deck container's EMU lengths and the
// editor's pixel space.
package units

import "math"

const (
	EMUPerInch    = 914400
	PixelsPerInch = 96
	// EMUPerPixel is 914400/96.
	EMUPerPixel = EMUPerInch / PixelsPerInch
	EMUPerPoint = 12700
)

// ToPixels converts an EMU length to pixels at 96 DPI.
func ToPixels(emu int64) float64 {
	return float64(emu) / EMUPerPixel
}

// ToEMU converts pixels to EMU. The fractional part is truncated, so
// ToPixels(ToEMU(p)) is within one pixel of p but not always equal to it.
func ToEMU(px float64) int64 {
	return int64(px * EMUPerPixel)
}

// InchesToPixels converts inches to pixels.
func InchesToPixels(in float64) float64 {
	return in * PixelsPerInch
}

// PointsToHundredths converts a font size in points to the container's
// 1/100 pt representation.
func PointsToHundredths(pt float64) int32 {
	return int32(math.Round(pt * 100))
}

// HundredthsToPoints is the inverse of PointsToHundredths.
func HundredthsToPoints(sz int32) float64 {
	return float64(sz) / 100
}
