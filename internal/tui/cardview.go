package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/spark/internal/model"
)

// cardLook carries the presentation state of one card.
type cardLook struct {
	Width, Height int
	Rotate        float64
	Opacity       float64
	Stamp         string
	Stacked       bool
	Active        bool
}

// renderUserCard draws a discovery card. A terminal cannot rotate or fade a
// box, so rotation shows as a tilt marker and low opacity as faint text.
func renderUserCard(u model.User, look cardLook) string {
	accent := lipgloss.Color(u.Accent)
	if u.Accent == "" {
		accent = ColorPink
	}
	inner := max(look.Width-4, 1)

	name := u.Name
	if u.Verified {
		name += " ✓"
	}
	header := lipgloss.NewStyle().
		Width(inner).
		Background(accent).
		Foreground(ColorWhite).
		Bold(true).
		Render(fmt.Sprintf(" %s  %s", u.Avatar, name))

	meta := helpStyle.Render(fmt.Sprintf("%s · %s away", u.Level, u.Distance))

	tilt := ""
	if r := look.Rotate; math.Abs(r) >= 0.5 {
		arrow := "↻"
		if r < 0 {
			arrow = "↺"
		}
		tilt = lipgloss.NewStyle().Foreground(ColorGray).Render(fmt.Sprintf("%s %.0f°", arrow, math.Abs(r)))
	}

	stamp := ""
	switch look.Stamp {
	case "":
	case "LIKE ♥":
		stamp = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true).Render(look.Stamp)
	default:
		stamp = lipgloss.NewStyle().Foreground(ColorRed).Bold(true).Render(look.Stamp)
	}

	bio := lipgloss.NewStyle().Width(inner).Render(u.Bio)

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		meta,
		lipgloss.JoinHorizontal(lipgloss.Top, stamp, "  ", tilt),
		"",
		bio,
	)

	border := lipgloss.RoundedBorder()
	borderColor := accent
	if look.Active {
		border = lipgloss.ThickBorder()
	}
	if look.Stacked {
		borderColor = ColorGray
	}
	style := lipgloss.NewStyle().
		Width(look.Width - 2).
		Height(max(look.Height-2, 1)).
		MaxHeight(look.Height).
		Padding(0, 1).
		Border(border).
		BorderForeground(borderColor)
	if look.Opacity < 0.6 {
		style = style.Faint(true)
	}
	return style.Render(body)
}
