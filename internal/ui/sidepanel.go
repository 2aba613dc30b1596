package ui

import (
	"fmt"
	"math"
	"strings"

	"wall-overlay/internal/calibrate"
	"wall-overlay/internal/config"
)

// SidePanelState bundles the readouts shown next to the viewfinder.
type SidePanelState struct {
	Mode      string // "CALIBRATE" or "OVERLAY"
	StateName string
	Points    []calibrate.Point
	PPM       float64
	KnownM    float64

	HTiltDeg, VTiltDeg float64
	PanX, PanY         float64
	AutoLevel          bool
	Tint               int
	ShowGrid           bool
	ShowLabels         bool

	AdjustMode  bool
	ActivePoint int

	RollHistory []float64 // recent corrections, radians

	DistanceEntry bool
	DistanceText  string
	DistanceUnit  string
	EntryError    string

	Notice string // last snapshot path or camera error
}

// RenderSidePanel renders the control/readout column.
func RenderSidePanel(width, height int, st SidePanelState) string {
	innerW := width - 4
	if innerW < 18 {
		innerW = 18
	}

	sep := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{
		StylePanelTitle.Render(st.Mode),
		sep,
	}

	// Calibration block
	lines = append(lines, field(innerW, "State", st.StateName))
	for i, p := range st.Points {
		label := fmt.Sprintf("Point %d", i+1)
		val := fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)
		if st.AdjustMode && i == st.ActivePoint {
			val += " <"
		}
		lines = append(lines, field(innerW, label, val))
	}
	if st.PPM > 0 {
		lines = append(lines, field(innerW, "Scale", fmt.Sprintf("%.1f px/m", st.PPM)))
		lines = append(lines, field(innerW, "Distance", fmt.Sprintf("%.3f m", st.KnownM)))
	}

	// Distance entry field
	if st.DistanceEntry {
		lines = append(lines, "")
		entry := StyleInputActive.Render(" "+st.DistanceText+"_ ") +
			StyleValue.Render(" "+st.DistanceUnit)
		lines = append(lines, StyleLabel.Render("  Distance: ")+entry)
		if st.EntryError != "" {
			lines = append(lines, "  "+StyleInputError.Render(st.EntryError))
		} else {
			lines = append(lines, "  "+StyleHint.Render("enter=ok  u=unit  esc=back"))
		}
	}

	lines = append(lines, "", sep)

	// Transform block
	barW := innerW - 14
	if barW < 8 {
		barW = 8
	}
	lines = append(lines,
		StyleLabel.Render("  H-Tilt ")+renderSliderBar(st.HTiltDeg, config.TiltLimitDeg, barW)+
			StyleValue.Render(fmt.Sprintf(" %+3.0f°", st.HTiltDeg)),
		StyleLabel.Render("  V-Tilt ")+renderSliderBar(st.VTiltDeg, config.TiltLimitDeg, barW)+
			StyleValue.Render(fmt.Sprintf(" %+3.0f°", st.VTiltDeg)),
		field(innerW, "Pan", fmt.Sprintf("(%+.0f, %+.0f)", st.PanX, st.PanY)),
		field(innerW, "Tint", config.TintNames[st.Tint%len(config.TintNames)]),
	)

	lines = append(lines,
		checkbox(innerW, "grid", st.ShowGrid)+checkbox(innerW, "labels", st.ShowLabels),
		checkbox(innerW, "auto-level", st.AutoLevel)+checkbox(innerW, "adjust", st.AdjustMode),
	)

	// Roll sparkline
	if len(st.RollHistory) > 0 {
		lines = append(lines, "", StyleLabel.Render("  Roll:"))
		degs := make([]float64, len(st.RollHistory))
		for i, v := range st.RollHistory {
			degs[i] = v * 180 / math.Pi
		}
		lines = append(lines, "  "+StyleSparkline.Render(renderSparkline(degs, innerW-4)))
	}

	if st.Notice != "" {
		lines = append(lines, "", "  "+StyleHint.Render(truncate(st.Notice, innerW-2)))
	}

	lines = append(lines, "", sep)
	lines = append(lines, helpLines(st.Mode, innerW)...)

	// Pad to fill height
	for len(lines) < height-2 {
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n")
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

func field(innerW int, label, value string) string {
	return StyleLabel.Render(fmt.Sprintf("  %-9s", label)) + StyleValue.Render(value)
}

func checkbox(innerW int, label string, on bool) string {
	mark := StyleCheckOff.Render("[ ]")
	if on {
		mark = StyleCheckOn.Render("[x]")
	}
	return "  " + mark + StyleLabel.Render(" "+label)
}

// renderSliderBar draws a centered-zero slider: the filled region grows
// from the middle toward the current value.
func renderSliderBar(value, limit float64, width int) string {
	if width < 3 {
		width = 3
	}
	mid := width / 2
	pos := mid + int(math.Round(value/limit*float64(mid)))
	if pos < 0 {
		pos = 0
	}
	if pos >= width {
		pos = width - 1
	}

	bar := make([]byte, width)
	for i := range bar {
		bar[i] = '-'
	}
	bar[mid] = '|'
	lo, hi := mid, pos
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		bar[i] = '='
	}
	bar[pos] = '#'

	return StyleHint.Render("[") + StyleValue.Render(string(bar)) + StyleHint.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	rng := maxV - minV
	if rng < 1 {
		rng = 1
	}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}

	var sb strings.Builder
	for i := start; i < len(values); i++ {
		idx := int((values[i] - minV) / rng * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}

func helpLines(mode string, innerW int) []string {
	var keys []struct{ key, label string }
	if mode == "CALIBRATE" {
		keys = []struct{ key, label string }{
			{"click", "mark point"},
			{"r", "reset"},
			{"q", "quit"},
		}
	} else {
		keys = []struct{ key, label string }{
			{"drag", "pan overlay"},
			{"h/H j/J", "tilt"},
			{"0", "zero tilts"},
			{"a", "auto-level"},
			{"g/l", "grid/labels"},
			{"t", "tint"},
			{"e", "adjust points"},
			{"x", "snapshot"},
			{"c", "recalibrate"},
			{"q", "quit"},
		}
	}

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, "  "+StyleMenuKey.Render(fmt.Sprintf("%-8s", k.key))+StyleHint.Render(k.label))
	}
	return lines
}

func truncate(s string, n int) string {
	if n <= 3 || len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}
