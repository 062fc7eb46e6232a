package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/spark/internal/island"
)

// renderStatusBar draws the clock row. The light variant is used over the map.
func renderStatusBar(now time.Time, light bool, width int) string {
	style := statusBarStyle
	if light {
		style = statusBarLightStyle
	}
	left := fmt.Sprintf(" %d:%02d", now.Hour(), now.Minute())
	right := "▂▄▆█ ᯤ 87% "
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return style.Width(width).Render(left)
	}
	return style.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderIsland draws the notification pill centered on its row.
func renderIsland(isl *island.Island, width int) string {
	var pill string
	if isl.Expanded() && isl.Message() != "" {
		pill = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorInk).
			Bold(true).
			Padding(0, 2).
			MaxWidth(max(width-2, 1)).
			Render("✦ " + isl.Message())
	} else if isl.Expanded() {
		pill = lipgloss.NewStyle().
			Foreground(ColorPink).
			Background(ColorInk).
			Padding(0, 2).
			Render("spark ✦ nearby")
	} else {
		pill = lipgloss.NewStyle().
			Foreground(ColorGray).
			Background(ColorInk).
			Padding(0, 3).
			Render("●")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, pill)
}

// renderTabBar draws one equal-width tab per page with optional badges.
func (a *App) renderTabBar() string {
	if len(a.order) == 0 || a.width == 0 {
		return ""
	}
	cell := a.width / len(a.order)
	tabs := make([]string, 0, len(a.order))
	for i, id := range a.order {
		p := a.pages[id]
		label := fmt.Sprintf("%d %s", i+1, p.Title())
		if b, ok := p.(Badged); ok && b.Badge() > 0 {
			label += " " + badgeStyle.Render(fmt.Sprintf(" %d ", b.Badge()))
		}
		style := lipgloss.NewStyle().Width(cell).Align(lipgloss.Center).Foreground(ColorGray)
		if id == a.activePage {
			style = style.Foreground(ColorPink).Bold(true)
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
