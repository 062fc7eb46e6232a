package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/spark/internal/model"
	"github.com/tinytelemetry/spark/internal/swipe"
)

// matchModal is the overlay shown after a super spark.
type matchModal struct {
	user  model.User
	owner swipe.Overlay
}

func newMatchModal(u model.User, owner swipe.Overlay) *matchModal {
	return &matchModal{user: u, owner: owner}
}

func (m *matchModal) ID() string { return "match" }

func (m *matchModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if closeKey(msg) {
		return true, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" || msg.String() == " " {
			return true, nil
		}
	case tea.MouseMsg:
		return isClick(msg), nil
	}
	return false, nil
}

func (m *matchModal) OnClose() tea.Cmd {
	m.owner.Hide()
	return nil
}

func (m *matchModal) View(width, height int) string {
	body := fmt.Sprintf("%s\n\nYou and %s both want to go out tonight.\nSay hi before the spark fades!",
		m.user.Avatar, m.user.Name)
	return renderDialog("It's a Spark! ✨", body, []string{"Enter/Click: Keep swiping", "ESC: Close"}, ColorPink, width, height)
}
