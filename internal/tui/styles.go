package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/spark/internal/model"
)

var (
	ColorWhite  = lipgloss.Color("15")
	ColorGray   = lipgloss.Color("8")
	ColorBlue   = lipgloss.Color("39")
	ColorGreen  = lipgloss.Color("42")
	ColorYellow = lipgloss.Color("220")
	ColorOrange = lipgloss.Color("208")
	ColorRed    = lipgloss.Color("196")
	ColorPink   = lipgloss.Color("205")
	ColorPurple = lipgloss.Color("135")
	ColorInk    = lipgloss.Color("235")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	activeSectionStyle = sectionStyle.
				BorderForeground(ColorPink)

	chartTitleStyle = lipgloss.NewStyle().
			Foreground(ColorPink).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	selectedStyle = lipgloss.NewStyle().
			Foreground(ColorInk).
			Background(ColorPink).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorInk)

	statusBarLightStyle = lipgloss.NewStyle().
				Foreground(ColorInk).
				Background(ColorWhite)

	badgeStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorRed).
			Bold(true)
)

// intensityColor maps a heat tier to its display color.
func intensityColor(i model.Intensity) lipgloss.Color {
	switch i {
	case model.IntensityHot:
		return ColorRed
	case model.IntensityWarm:
		return ColorOrange
	case model.IntensityCool:
		return ColorBlue
	default:
		return ColorGray
	}
}
