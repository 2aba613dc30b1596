package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, cameraRunning bool, ppm float64, mode string, camErr string) string {
	status := ""
	switch {
	case camErr != "":
		status = StyleStatusError.Render("[CAMERA ERROR]")
	case cameraRunning:
		status = StyleStatusLive.Render("[LIVE]")
	default:
		status = StyleStatusStopped.Render("[STOPPED]")
	}

	info := fmt.Sprintf(" Mode: %s  Scale: %s", mode, formatPPM(ppm))
	if camErr != "" {
		info += "  " + camErr
	}

	content := status + StyleStatusBar.Render(info)

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleStatusBar.Width(width).Render(content + padding)
}

func formatPPM(ppm float64) string {
	if ppm <= 0 {
		return "--"
	}
	return fmt.Sprintf("%.1f px/m", ppm)
}
