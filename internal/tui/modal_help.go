package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// HelpModal lists the key bindings in a scrollable viewport.
type HelpModal struct {
	vp viewport.Model
}

func NewHelpModal() *HelpModal {
	return &HelpModal{vp: viewport.New(0, 0)}
}

func (m *HelpModal) ID() string { return "help" }

func (m *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if closeKey(msg) {
		return true, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "?" {
		return true, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return false, cmd
}

func (m *HelpModal) View(width, height int) string {
	return renderScrollModal(&m.vp, "Help", helpContent, []string{
		"up/down/Wheel: Scroll", "PgUp/PgDn: Page", "?: Toggle Help", "ESC: Close",
	}, width, height)
}

const helpContent = `SCREENS:
  1 / 2 / 3 / 4  - Map, Discover, Sparks, Profile
  Tab/Shift+Tab  - Next/previous screen
  Mouse Click    - Click a tab to switch to it
  i              - Expand/collapse the island
  Click island   - Same as i
  ? / Esc        - Toggle help / close overlay
  q/Ctrl+C       - Quit

MAP:
  arrows or hjkl - Move the venue selection
  Enter/Click    - Open venue details
  /              - Fuzzy search venues by name
  c              - Check in at the current venue
  L              - Enable location and pulse the heat map

DISCOVER:
  Drag the card  - Past 100px right to like, left to pass
  → / l / Enter  - Like
  ← / h / x      - Pass
  ↑ / s          - Super spark (saves the event)
  r              - Refill an empty deck

SPARKS:
  up/down or k/j - Move selection
  Enter          - Accept the request
  d / x          - Decline the request

PROFILE:
  up/down or k/j - Move selection
  Enter/Space    - Toggle the selected setting
`
