package units

import (
	"math"
	"testing"
)

func TestToMeters(t *testing.T) {
	cases := []struct {
		value float64
		unit  Unit
		want  float64
	}{
		{1, Meters, 1.0},
		{100, Centimeters, 1.0},
		{2.5, Meters, 2.5},
		{1, Inches, 0.0254},
		{1, Feet, 0.3048},
		{12, Inches, 0.3048},
		{0, Feet, 0},
	}

	for _, c := range cases {
		got := ToMeters(c.value, c.unit)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ToMeters(%v, %v) = %v, want %v", c.value, c.unit, got, c.want)
		}
	}
}

func TestParseUnit(t *testing.T) {
	accept := map[string]Unit{
		"m":      Meters,
		"M":      Meters,
		"meters": Meters,
		" cm ":   Centimeters,
		"in":     Inches,
		"inches": Inches,
		"ft":     Feet,
		"feet":   Feet,
	}
	for s, want := range accept {
		got, err := ParseUnit(s)
		if err != nil {
			t.Fatalf("ParseUnit(%q) unexpected error: %v", s, err)
		}
		if got != want {
			t.Errorf("ParseUnit(%q) = %v, want %v", s, got, want)
		}
	}

	for _, s := range []string{"", "furlong", "meterz"} {
		if _, err := ParseUnit(s); err == nil {
			t.Errorf("ParseUnit(%q) expected error", s)
		}
	}
}
