package ui

import "github.com/charmbracelet/lipgloss"

// Chalk-and-floodlight palette: warm amber chrome around a cool gray wall.
var (
	ColorAmber    = lipgloss.Color("#FFB000")
	ColorAmberDim = lipgloss.Color("#AA7700")
	ColorChalk    = lipgloss.Color("#E8E8E0")
	ColorGray     = lipgloss.Color("#8A8A85")
	ColorGrayDim  = lipgloss.Color("#4A4A46")
	ColorMarker   = lipgloss.Color("#44CCFF")
	ColorOK       = lipgloss.Color("#44DD66")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorError    = lipgloss.Color("#FF3300")
	ColorBarBg    = lipgloss.Color("#1A1A18")
	ColorChromeBg = lipgloss.Color("#221A00")
)

var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(ColorChromeBg).
			Foreground(ColorAmber).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorAmber).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorAmberDim)

	StyleStatusBar = lipgloss.NewStyle().
			Background(ColorChromeBg).
			Foreground(ColorAmberDim).
			Padding(0, 1)

	StyleStatusLive = lipgloss.NewStyle().
			Foreground(ColorOK).
			Bold(true)

	StyleStatusStopped = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleStatusError = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAmberDim)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAmber)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorAmber).
			Bold(true).
			Padding(0, 1)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorGray)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorChalk).
			Bold(true)

	StyleHint = lipgloss.NewStyle().
			Foreground(ColorGrayDim)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorGrayDim)

	StyleCheckOn = lipgloss.NewStyle().
			Foreground(ColorOK)

	StyleCheckOff = lipgloss.NewStyle().
			Foreground(ColorGrayDim)

	StyleInputActive = lipgloss.NewStyle().
				Foreground(ColorChalk).
				Background(ColorBarBg).
				Bold(true)

	StyleInputError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleMarker = lipgloss.NewStyle().
			Foreground(ColorMarker).
			Bold(true)

	StyleGridLine = lipgloss.NewStyle().
			Foreground(ColorGrayDim)

	StyleSparkline = lipgloss.NewStyle().
			Foreground(ColorAmberDim)
)
