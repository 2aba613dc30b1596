package units

import (
	"fmt"
	"strings"
)

// Unit is a real-world distance unit accepted for calibration entry.
type Unit int

const (
	Meters Unit = iota
	Centimeters
	Inches
	Feet
)

func (u Unit) String() string {
	switch u {
	case Centimeters:
		return "cm"
	case Inches:
		return "in"
	case Feet:
		return "ft"
	default:
		return "m"
	}
}

// ToMeters converts a value in the given unit to meters. Pure conversion,
// no bounds checking; the caller is responsible for rejecting non-positive
// values before they reach calibration.
func ToMeters(value float64, u Unit) float64 {
	switch u {
	case Centimeters:
		return value / 100.0
	case Inches:
		return value * 0.0254
	case Feet:
		return value * 0.3048
	default:
		return value
	}
}

// ParseUnit maps a user-entered unit label to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "meter", "meters", "metre", "metres":
		return Meters, nil
	case "cm", "centimeter", "centimeters", "centimetre", "centimetres":
		return Centimeters, nil
	case "in", "inch", "inches", "\"":
		return Inches, nil
	case "ft", "foot", "feet", "'":
		return Feet, nil
	}
	return Meters, fmt.Errorf("unknown unit %q", s)
}

// All lists the selectable units in cycle order.
var All = []Unit{Meters, Centimeters, Inches, Feet}
