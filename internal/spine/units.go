// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package spine

import (
	"fmt"
	"math"
)

// Unit conversion constants.
const (
	MMPerInch  = 25.4
	DefaultDPI = 300
)

// Rounding precision differs per unit: inches carry four decimals,
// millimeters and pixels two.
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// MMToInches converts millimeters to inches, rounded to 4 decimals.
func MMToInches(mm float64) float64 {
	return roundTo(mm/MMPerInch, 4)
}

// InchesToMM converts inches to millimeters, rounded to 2 decimals.
func InchesToMM(inches float64) float64 {
	return roundTo(inches*MMPerInch, 2)
}

// MMToPixels converts millimeters to pixels at the given DPI, rounded
// to 2 decimals.
func MMToPixels(mm float64, dpi int) (float64, error) {
	if dpi <= 0 {
		return 0, fmt.Errorf("dpi must be positive, got %d", dpi)
	}
	return roundTo(mm/MMPerInch*float64(dpi), 2), nil
}

// PixelsToMM converts pixels at the given DPI back to millimeters,
// rounded to 2 decimals.
func PixelsToMM(pixels float64, dpi int) (float64, error) {
	if dpi <= 0 {
		return 0, fmt.Errorf("dpi must be positive, got %d", dpi)
	}
	return roundTo(pixels/float64(dpi)*MMPerInch, 2), nil
}

// FormatWidth renders a value with its unit label at the conventional
// precision (mm and px two decimals, inches four).
func FormatWidth(value float64, unit string) string {
	switch unit {
	case "mm":
		return fmt.Sprintf("%.2f mm", value)
	case "inches":
		return fmt.Sprintf("%.4f in", value)
	case "pixels":
		return fmt.Sprintf("%.2f px", value)
	default:
		return fmt.Sprintf("%.2f %s", value, unit)
	}
}
