package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"wall-overlay/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, device string, calibrated bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"C", "alibrate"},
		{"X", "snapshot"},
		{"A", "uto-level"},
		{"Q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	status := ""
	if calibrated {
		status = StyleStatusLive.Render("CALIBRATED")
	} else {
		status = StyleStatusStopped.Render("UNCALIBRATED")
	}

	deviceInfo := StyleMenuLabel.Render(fmt.Sprintf("Camera: %s", device))

	left := StyleMenuKey.Render(title) + menu
	right := status + "  " + deviceInfo + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleMenuBar.Width(width).Render(left + padding + right)
}
