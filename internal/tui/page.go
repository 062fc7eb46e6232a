package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (map, discover, etc.).
type Page interface {
	ID() string
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
	Params interface{}
}

// Badged is implemented by pages that show a counter on their tab.
type Badged interface {
	Badge() int
}

// LightStatus is implemented by pages drawn under the light status bar.
type LightStatus interface {
	LightStatusBar() bool
}

// Leaver is implemented by pages that drop pending work when hidden.
type Leaver interface {
	Leave()
}
