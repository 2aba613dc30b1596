package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderLevelDial draws the auto-level indicator: a dial with a horizon
// line rotated by the current correction angle. enabled=false renders the
// dial dimmed with a flat horizon.
func RenderLevelDial(width, height int, correctionRad float64, enabled bool) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]byte, height)
	isHorizon := make([][]bool, height)
	for i := range grid {
		grid[i] = make([]byte, width)
		isHorizon[i] = make([]bool, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := fcx - 1.5
	ry := fcy - 1.0
	if rx < 3 {
		rx = 3
	}
	if ry < 2 {
		ry = 2
	}

	// Dial ring
	steps := 72
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if col >= 0 && col < width && row >= 0 && row < height && grid[row][col] == ' ' {
			grid[row][col] = '.'
		}
	}

	// Zero ticks at 3 and 9 o'clock
	setDial(grid, width, height, int(math.Round(fcx+rx))+1, int(math.Round(fcy)), '-')
	setDial(grid, width, height, int(math.Round(fcx-rx))-1, int(math.Round(fcy)), '-')

	// Horizon line through the center, rotated by the correction. The
	// correction counter-rotates against device roll, so the drawn horizon
	// shows the device's tilt as the user feels it.
	angle := -correctionRad
	if !enabled {
		angle = 0
	}
	cosA := math.Cos(angle)
	sinA := math.Sin(angle)

	hSteps := int(rx)
	for s := -hSteps; s <= hSteps; s++ {
		t := float64(s) / float64(hSteps)
		col := int(math.Round(fcx + t*rx*cosA))
		row := int(math.Round(fcy + t*ry*sinA))
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = horizonChar(angle)
			isHorizon[row][col] = true
		}
	}

	setDial(grid, width, height, int(math.Round(fcx)), int(math.Round(fcy)), '+')

	horizonSty := StyleValue
	if !enabled {
		horizonSty = StyleHint
	}
	ringSty := StyleHint

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := grid[row][col]
			switch {
			case ch == '+':
				sb.WriteString(StylePanelTitle.Render(string(ch)))
			case isHorizon[row][col]:
				sb.WriteString(horizonSty.Render(string(ch)))
			case ch != ' ':
				sb.WriteString(ringSty.Render(string(ch)))
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	deg := correctionRad * 180 / math.Pi
	readout := fmt.Sprintf("level %+.1f°", deg)
	if !enabled {
		readout = "level off"
	}
	pad := (width - lipgloss.Width(readout)) / 2
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(strings.Repeat(" ", pad))
	if enabled {
		sb.WriteString(StyleValue.Render(readout))
	} else {
		sb.WriteString(StyleHint.Render(readout))
	}

	return sb.String()
}

func setDial(grid [][]byte, w, h, col, row int, ch byte) {
	if col >= 0 && col < w && row >= 0 && row < h {
		grid[row][col] = ch
	}
}

func horizonChar(angle float64) byte {
	deg := math.Abs(angle * 180 / math.Pi)
	switch {
	case deg < 10:
		return '-'
	case angle > 0:
		return '\\'
	default:
		return '/'
	}
}
