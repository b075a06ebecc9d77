package cardsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// mmPerInch is the exact length of an inch in millimetres.
const mmPerInch = 25.4

// Unit is a physical or device length unit.
type Unit string

// Supported length units.
const (
	UnitMillimetre Unit = "mm"
	UnitInch       Unit = "in"
	UnitPixel      Unit = "px"
)

// Length is a dimension expressed in a Unit.
type Length struct {
	Value float64
	Unit  Unit
}

// MM returns a length in millimetres.
func MM(v float64) Length { return Length{Value: v, Unit: UnitMillimetre} }

// Inches returns a length in inches.
func Inches(v float64) Length { return Length{Value: v, Unit: UnitInch} }

// Px returns a length already expressed in device pixels.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPixel} }

// Pixels converts a length in millimetres to a pixel count at dpi,
// rounding to the nearest pixel.
func Pixels(lengthMM, dpi float64) (int, error) {
	if !(lengthMM > 0) || math.IsInf(lengthMM, 0) {
		return 0, fmt.Errorf("%w: %gmm", ErrInvalidLength, lengthMM)
	}
	if !(dpi > 0) || math.IsInf(dpi, 0) {
		return 0, fmt.Errorf("%w: %g dpi", ErrInvalidDPI, dpi)
	}
	return int(math.Round(lengthMM * dpi / mmPerInch)), nil
}

// Pixels converts l to a pixel count at dpi.
func (l Length) Pixels(dpi float64) (int, error) {
	switch l.Unit {
	case UnitMillimetre:
		return Pixels(l.Value, dpi)
	case UnitInch:
		return Pixels(l.Value*mmPerInch, dpi)
	case UnitPixel:
		if !(l.Value > 0) || math.IsInf(l.Value, 0) {
			return 0, fmt.Errorf("%w: %gpx", ErrInvalidLength, l.Value)
		}
		return int(math.Round(l.Value)), nil
	default:
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidLength, l.Unit)
	}
}

// String formats l the way ParseLength reads it, e.g. "92mm".
func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + string(l.Unit)
}

// IsZero reports whether l is unset.
func (l Length) IsZero() bool {
	return l == Length{}
}

// ParseLength parses strings such as "92mm", "12in", "12.5 in" or "20px".
// A bare number is read as millimetres.
func ParseLength(s string) (Length, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return Length{}, fmt.Errorf("%w: empty", ErrInvalidLength)
	}

	unit := UnitMillimetre
	for _, u := range []Unit{UnitMillimetre, UnitInch, UnitPixel} {
		if strings.HasSuffix(trimmed, string(u)) {
			unit = u
			trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, string(u)))
			break
		}
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return Length{}, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return Length{Value: v, Unit: unit}, nil
}
