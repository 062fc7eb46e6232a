package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// renderScrollModal renders a bordered modal whose body scrolls in vp.
func renderScrollModal(vp *viewport.Model, title, content string, status []string, width, height int) string {
	// Calculate dimensions
	modalWidth := max(width-8, 20)   // 4 chars margin on each side
	modalHeight := max(height-4, 8)  // 2 lines margin top and bottom
	contentWidth := modalWidth - 4   // Modal borders
	contentHeight := modalHeight - 4 // Header + status

	vp.Width = contentWidth
	vp.Height = contentHeight
	vp.SetContent(content)

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorPink).
		Bold(true).
		Render(title)

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, renderModalStatusBar(status))

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPink).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

// renderDialog renders a small centered box for prompts and overlays.
func renderDialog(title, body string, status []string, accent lipgloss.Color, width, height int) string {
	boxWidth := min(max(width-8, 20), 48)
	inner := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(accent).Bold(true).Render(title),
		"",
		lipgloss.NewStyle().Width(boxWidth-4).Align(lipgloss.Center).Render(body),
		"",
		renderModalStatusBar(status),
	)
	box := lipgloss.NewStyle().
		Width(boxWidth).
		Padding(1, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Align(lipgloss.Center).
		Render(inner)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderModalStatusBar renders the key hints under a modal.
func renderModalStatusBar(items []string) string {
	if len(items) == 0 {
		items = []string{"up/down/Wheel: Scroll", "PgUp/PgDn: Page", "ESC: Close"}
	}
	return lipgloss.NewStyle().
		Foreground(ColorGray).
		Render(strings.Join(items, " | "))
}
