package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/spark/internal/island"
	"go.uber.org/zap"
)

// Rows reserved above (status bar, island) and below (tab bar) every page.
const (
	headerRows = 2
	footerRows = 1
	islandRow  = 1
)

// Capturing is implemented by pages that are currently reading text input,
// during which global single-letter keys are passed through.
type Capturing interface {
	CapturingInput() bool
}

// App is the top-level Bubble Tea model that routes between pages, owns the
// notification island and the modal stack.
type App struct {
	pages      map[string]Page
	order      []string
	activePage string
	width      int
	height     int

	island *island.Island
	modals []Modal
	keys   KeyMap
	clock  time.Time
	log    *zap.Logger
}

// NewApp creates a new App with the given pages in tab order. The first
// page is the default unless start names another one.
func NewApp(isl *island.Island, log *zap.Logger, start string, pages ...Page) *App {
	if log == nil {
		log = zap.NewNop()
	}
	pageMap := make(map[string]Page, len(pages))
	order := make([]string, 0, len(pages))
	for _, p := range pages {
		pageMap[p.ID()] = p
		order = append(order, p.ID())
	}
	active := ""
	if len(order) > 0 {
		active = order[0]
	}
	if _, ok := pageMap[start]; ok {
		active = start
	}
	return &App{
		pages:      pageMap,
		order:      order,
		activePage: active,
		island:     isl,
		keys:       DefaultKeyMap(),
		clock:      time.Now(),
		log:        log.Named("app"),
	}
}

// ActivePage returns the ID of the page on screen.
func (a *App) ActivePage() string { return a.activePage }

func (a *App) Init() tea.Cmd {
	a.island.Intro()
	cmds := []tea.Cmd{clockTick()}
	if p, ok := a.pages[a.activePage]; ok {
		cmds = append(cmds, p.Init())
	}
	cmds = append(cmds, a.drainIsland())
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if drained := a.drainIsland(); drained != nil {
		cmd = tea.Batch(cmd, drained)
	}
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.updatePage(a.activePage, msg)

	case stepMsg:
		if msg.Owner == ownerIsland {
			a.island.Fire(msg.Token)
			return nil
		}
		// Timers keep running for pages that are off screen.
		return a.updatePage(msg.Owner, msg)

	case ownedMsg:
		return a.updatePage(msg.owner(), msg)

	case clockMsg:
		a.clock = time.Time(msg)
		return clockTick()

	case pushModalMsg:
		if n := len(a.modals); n > 0 && a.modals[n-1].ID() == msg.Modal.ID() {
			return nil
		}
		a.modals = append(a.modals, msg.Modal)
		return nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return tea.Quit
		}
		if len(a.modals) > 0 {
			return a.updateModal(msg)
		}
		if c, ok := a.pages[a.activePage].(Capturing); ok && c.CapturingInput() {
			return a.updatePage(a.activePage, msg)
		}
		return a.handleKey(msg)

	case tea.MouseMsg:
		if len(a.modals) > 0 {
			return a.updateModal(msg)
		}
		return a.handleMouse(msg)
	}

	return a.updatePage(a.activePage, msg)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if len(a.order) == 0 {
		return nil
	}
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.Help):
		return pushModal(NewHelpModal())
	case key.Matches(msg, a.keys.Island):
		a.island.Toggle()
		return nil
	case key.Matches(msg, a.keys.NextTab):
		return a.switchTo(a.order[(a.indexOf(a.activePage)+1)%len(a.order)])
	case key.Matches(msg, a.keys.PrevTab):
		return a.switchTo(a.order[(a.indexOf(a.activePage)+len(a.order)-1)%len(a.order)])
	}
	for i, b := range []key.Binding{a.keys.TabMap, a.keys.TabDeck, a.keys.TabSparks, a.keys.TabMe} {
		if key.Matches(msg, b) && i < len(a.order) {
			return a.switchTo(a.order[i])
		}
	}
	return a.updatePage(a.activePage, msg)
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	// Releases outside the page area still end a drag.
	release := msg.Action == tea.MouseActionRelease
	switch {
	case msg.Y < headerRows:
		if msg.Y == islandRow && isClick(msg) {
			a.island.Toggle()
		}
		if !release {
			return nil
		}
	case a.height > 0 && msg.Y >= a.height-footerRows:
		if isClick(msg) && a.width > 0 && len(a.order) > 0 {
			i := msg.X * len(a.order) / a.width
			if i >= 0 && i < len(a.order) {
				return a.switchTo(a.order[i])
			}
		}
		if !release {
			return nil
		}
	}
	msg.Y -= headerRows
	return a.updatePage(a.activePage, msg)
}

func (a *App) updateModal(msg tea.Msg) tea.Cmd {
	top := a.modals[len(a.modals)-1]
	pop, cmd := top.Update(msg)
	if !pop {
		return cmd
	}
	a.modals = a.modals[:len(a.modals)-1]
	if c, ok := top.(Closer); ok {
		return tea.Batch(cmd, c.OnClose())
	}
	return cmd
}

func (a *App) updatePage(id string, msg tea.Msg) tea.Cmd {
	p, ok := a.pages[id]
	if !ok {
		return nil
	}
	cmd, nav := p.Update(msg)
	if nav != nil {
		return tea.Batch(cmd, a.switchTo(nav.PageID))
	}
	return cmd
}

func (a *App) switchTo(id string) tea.Cmd {
	p, ok := a.pages[id]
	if !ok || id == a.activePage {
		return nil
	}
	a.log.Debug("switch page", zap.String("from", a.activePage), zap.String("to", id))
	if l, ok := a.pages[a.activePage].(Leaver); ok {
		l.Leave()
	}
	a.activePage = id
	return p.Init()
}

func (a *App) indexOf(id string) int {
	for i, pid := range a.order {
		if pid == id {
			return i
		}
	}
	return 0
}

func (a *App) drainIsland() tea.Cmd {
	return scheduleAll(ownerIsland, a.island.Drain())
}

func (a *App) View() string {
	p, ok := a.pages[a.activePage]
	if !ok {
		return "No active page"
	}
	if a.width == 0 || a.height == 0 {
		return renderLoadingPlaceholder(40, 3)
	}
	if len(a.modals) > 0 {
		return a.modals[len(a.modals)-1].View(a.width, a.height)
	}

	light := false
	if ls, ok := p.(LightStatus); ok {
		light = ls.LightStatusBar()
	}
	bodyHeight := max(a.height-headerRows-footerRows, 1)
	body := lipgloss.NewStyle().
		Width(a.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(p.View(a.width, bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left,
		renderStatusBar(a.clock, light, a.width),
		renderIsland(a.island, a.width),
		body,
		a.renderTabBar(),
	)
}
