package ui

import "github.com/charmbracelet/lipgloss"

// RenderViewfinderPanel wraps the viewfinder cells with a styled border.
// The cell rendering happens externally to avoid import cycles.
func RenderViewfinderPanel(width, height int, content string, active bool) string {
	style := StylePanelBorder
	if active {
		style = StylePanelActive
	}
	return style.Width(width - 2).Height(height - 2).Render(content)
}

// ComposeLayout joins the viewfinder and side panel horizontally, with the
// menu bar on top and status bar on the bottom.
func ComposeLayout(menuBar, viewfinder, sidePanel, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, viewfinder, sidePanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
