package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// locationModal asks the user to share their location.
type locationModal struct {
	page *MapPage
}

func (m *locationModal) ID() string { return "location" }

func (m *locationModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if closeKey(msg) {
		return true, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch km.String() {
	case "enter", "y":
		return true, m.page.enableLocation()
	case "n":
		return true, nil
	}
	return false, nil
}

func (m *locationModal) View(width, height int) string {
	body := "📍\n\nSee who's nearby and which venues are heating up.\nOthers can spot you on the map while it's on."
	return renderDialog("Enable location", body, []string{"Enter/y: Enable", "n/ESC: Not now"}, ColorPurple, width, height)
}
