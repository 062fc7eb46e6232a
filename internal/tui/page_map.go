package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/spark/internal/island"
	"github.com/tinytelemetry/spark/internal/model"
	"github.com/tinytelemetry/spark/internal/sched"
	"go.uber.org/zap"
)

const pageMap = "map"

// Map timings.
const (
	locationPromptDelay = 500 * time.Millisecond
	pulseStagger        = 100 * time.Millisecond
	pulseDuration       = 300 * time.Millisecond
	fabPressDuration    = 200 * time.Millisecond
	hottestLimit        = 8
	searchResults       = 5
	sidePanelWidth      = 44
)

const (
	checkInMessage  = "Checked in at The Hub! +50 points earned 🎉"
	locationMessage = "Location enabled! You're now visible on the map."
)

// hottestMsg carries the result of the hottest venues query.
type hottestMsg struct {
	venues []model.VenueHeat
	err    error
}

func (hottestMsg) owner() string { return pageMap }

// MapPage shows venue pins over the heat overlay.
type MapPage struct {
	data   *model.Dataset
	store  model.VenueQuerier
	island *island.Island
	scale  PointerScale
	keys   KeyMap
	log    *zap.Logger

	timeline   *sched.Timeline
	promptSlot *sched.Slot
	fabSlot    *sched.Slot
	pulseSlots []*sched.Slot
	pulseStart []bool // the pending pulse step starts rather than ends a pulse
	pulsing    []bool

	locationEnabled bool
	selected        int
	fabPressed      bool

	search    textinput.Model
	searching bool
	matches   []venueMatch

	hot     *HotChartPanel
	loading bool
	loaded  bool

	mapRect rect
	fabRect rect
}

// NewMapPage creates the map page. store may be nil, which hides the chart.
func NewMapPage(data *model.Dataset, store model.VenueQuerier, isl *island.Island, scale PointerScale, log *zap.Logger) *MapPage {
	if log == nil {
		log = zap.NewNop()
	}
	tl := sched.NewTimeline()
	slots := make([]*sched.Slot, len(data.HeatSpots))
	for i := range slots {
		slots[i] = tl.Slot()
	}
	ti := textinput.New()
	ti.Placeholder = "Search venues..."
	ti.Prompt = "/ "
	ti.CharLimit = 40

	return &MapPage{
		data:       data,
		store:      store,
		island:     isl,
		scale:      scale,
		keys:       DefaultKeyMap(),
		log:        log.Named("map"),
		timeline:   tl,
		promptSlot: tl.Slot(),
		fabSlot:    tl.Slot(),
		pulseSlots: slots,
		pulseStart: make([]bool, len(slots)),
		pulsing:    make([]bool, len(slots)),
		search:     ti,
		hot:        NewHotChartPanel(),
	}
}

func (p *MapPage) ID() string    { return pageMap }
func (p *MapPage) Title() string { return "Map" }

func (p *MapPage) LightStatusBar() bool { return true }

func (p *MapPage) CapturingInput() bool { return p.searching }

// LocationEnabled reports whether the user shared their location.
func (p *MapPage) LocationEnabled() bool { return p.locationEnabled }

// Selected returns the index of the highlighted venue.
func (p *MapPage) Selected() int { return p.selected }

// Pulsing reports whether heat spot i is mid-pulse.
func (p *MapPage) Pulsing(i int) bool { return i >= 0 && i < len(p.pulsing) && p.pulsing[i] }

// Init asks for location on every visit until it is enabled and starts the
// chart query the first time.
func (p *MapPage) Init() tea.Cmd {
	var cmds []tea.Cmd
	if !p.locationEnabled {
		cmds = append(cmds, scheduleCmd(p.ID(), p.promptSlot.Schedule(locationPromptDelay)))
	}
	if p.store != nil && !p.loaded && !p.loading {
		p.loading = true
		cmds = append(cmds, p.queryHottest(), spinnerTick(true))
	} else if p.loading {
		cmds = append(cmds, spinnerTick(true))
	}
	return tea.Batch(cmds...)
}

// Leave drops a location prompt that has not shown yet.
func (p *MapPage) Leave() { p.promptSlot.Cancel() }

func (p *MapPage) queryHottest() tea.Cmd {
	store := p.store
	return func() tea.Msg {
		venues, err := store.HottestVenues(hottestLimit)
		return hottestMsg{venues: venues, err: err}
	}
}

func (p *MapPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case stepMsg:
		return p.fire(msg.Token), nil
	case hottestMsg:
		p.loading = false
		p.loaded = true
		if msg.err != nil {
			p.log.Warn("hottest venues query failed", zap.Error(msg.err))
			return nil, nil
		}
		p.hot.SetData(msg.venues)
	case SpinnerTickMsg:
		return spinnerTick(p.loading), nil
	case tea.KeyMsg:
		if p.searching {
			return p.handleSearchKey(msg), nil
		}
		return p.handleKey(msg), nil
	case tea.MouseMsg:
		return p.handleMouse(msg), nil
	}
	return nil, nil
}

func (p *MapPage) fire(token uint64) tea.Cmd {
	switch {
	case p.promptSlot.Fire(token):
		if p.locationEnabled {
			return nil
		}
		return pushModal(&locationModal{page: p})
	case p.fabSlot.Fire(token):
		p.fabPressed = false
		return nil
	}
	for i, slot := range p.pulseSlots {
		if !slot.Fire(token) {
			continue
		}
		if p.pulseStart[i] {
			p.pulseStart[i] = false
			p.pulsing[i] = true
			return scheduleCmd(p.ID(), slot.Schedule(pulseDuration))
		}
		p.pulsing[i] = false
		return nil
	}
	return nil
}

func (p *MapPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Search):
		p.searching = true
		p.search.SetValue("")
		p.matches = nil
		return p.search.Focus()
	case key.Matches(msg, p.keys.CheckIn):
		return p.checkIn()
	case key.Matches(msg, p.keys.Location):
		if p.locationEnabled {
			return nil
		}
		return p.enableLocation()
	case key.Matches(msg, p.keys.Enter):
		p.openSelected()
	case key.Matches(msg, p.keys.Up):
		p.moveSelection(0, -1)
	case key.Matches(msg, p.keys.Down):
		p.moveSelection(0, 1)
	case key.Matches(msg, p.keys.Left):
		p.moveSelection(-1, 0)
	case key.Matches(msg, p.keys.Right):
		p.moveSelection(1, 0)
	}
	return nil
}

func (p *MapPage) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "escape":
		p.stopSearch()
		return nil
	case "enter":
		if len(p.matches) > 0 {
			p.selected = p.matches[0].Index
		}
		p.stopSearch()
		return nil
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	p.matches = rankVenues(p.data.Venues, p.search.Value(), searchResults)
	return cmd
}

func (p *MapPage) stopSearch() {
	p.searching = false
	p.search.Blur()
	p.matches = nil
}

func (p *MapPage) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !isClick(msg) {
		return nil
	}
	if p.fabRect.contains(msg.X, msg.Y) {
		return p.checkIn()
	}
	if !p.mapRect.contains(msg.X, msg.Y) {
		return nil
	}
	scene := mapScene{Venues: p.data.Venues}
	if i := scene.pinAt(msg.X-p.mapRect.X, msg.Y-p.mapRect.Y, p.mapRect.W, p.mapRect.H); i >= 0 {
		p.selected = i
		p.openSelected()
	}
	return nil
}

func (p *MapPage) openSelected() {
	if p.selected < 0 || p.selected >= len(p.data.Venues) {
		p.log.Debug("no venue selected")
		return
	}
	p.island.Notify(fmt.Sprintf("Opening %s details...", p.data.Venues[p.selected].Name))
}

func (p *MapPage) checkIn() tea.Cmd {
	p.island.Notify(checkInMessage)
	p.fabPressed = true
	return scheduleCmd(p.ID(), p.fabSlot.Schedule(fabPressDuration))
}

// enableLocation announces the change and pulses the heat spots one after
// another.
func (p *MapPage) enableLocation() tea.Cmd {
	p.locationEnabled = true
	p.promptSlot.Cancel()
	p.island.Notify(locationMessage)

	cmds := make([]tea.Cmd, 0, len(p.pulseSlots))
	for i, slot := range p.pulseSlots {
		p.pulseStart[i] = true
		p.pulsing[i] = false
		cmds = append(cmds, scheduleCmd(p.ID(), slot.Schedule(time.Duration(i)*pulseStagger)))
	}
	return tea.Batch(cmds...)
}

// moveSelection jumps to the nearest pin in direction (dx, dy), favouring
// pins close to the axis of travel.
func (p *MapPage) moveSelection(dx, dy float64) {
	if p.selected < 0 || p.selected >= len(p.data.Venues) || p.data.Venues[p.selected].Position == nil {
		return
	}
	cur := p.data.Venues[p.selected].Position
	best, bestScore := -1, math.Inf(1)
	for i, v := range p.data.Venues {
		if i == p.selected || v.Position == nil {
			continue
		}
		ox, oy := v.Position.Left-cur.Left, v.Position.Top-cur.Top
		along := ox*dx + oy*dy
		if along <= 0 {
			continue
		}
		across := math.Abs(ox*dy - oy*dx)
		if score := along + 2*across; score < bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		p.selected = best
	}
}

func (p *MapPage) View(width, height int) string {
	mapW := width
	showPanel := width >= 2*sidePanelWidth
	if showPanel {
		mapW = width - sidePanelWidth
	}
	mapH := max(height-2, 3)

	title := lipgloss.NewStyle().Foreground(ColorPink).Bold(true).
		Render(fmt.Sprintf("📍 Manhattan · %d venues nearby", len(p.data.Venues)))
	if !p.locationEnabled {
		title += helpStyle.Render("  (location off · L to enable)")
	}

	scene := mapScene{
		Venues:   p.data.Venues,
		Heat:     p.data.HeatSpots,
		Pulsing:  p.pulsing,
		Selected: p.selected,
		You:      p.locationEnabled,
		Scale:    p.scale,
	}
	p.mapRect = rect{X: 0, Y: 1, W: mapW, H: mapH}
	view := newLayer(mapW, height)
	view.draw(0, 0, title)
	view.draw(0, 1, scene.render(mapW, mapH))

	fab := lipgloss.NewStyle().Padding(0, 1).Bold(true).
		Foreground(ColorWhite).Background(ColorPink).Render("⊕ Check in")
	if p.fabPressed {
		fab = lipgloss.NewStyle().Padding(0, 1).
			Foreground(ColorPink).Background(ColorInk).Render("⊕ Check in")
	}
	fw := lipgloss.Width(fab)
	p.fabRect = rect{X: max(mapW-fw-1, 0), Y: height - 1, W: fw, H: 1}
	view.draw(p.fabRect.X, p.fabRect.Y, fab)

	if p.searching {
		view.draw(0, height-1, p.search.View())
		for i, m := range p.matches {
			v := p.data.Venues[m.Index]
			line := fmt.Sprintf(" %s %s ", v.Emoji, v.Name)
			style := lipgloss.NewStyle().Background(ColorInk).Foreground(ColorWhite)
			if i == 0 {
				style = selectedStyle
			}
			view.draw(1, height-2-len(p.matches)+i, style.Render(line))
		}
	} else {
		view.draw(0, height-1, helpStyle.Render("↑↓←→ move · enter open · / search · c check in"))
	}

	left := view.String()
	if !showPanel {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, p.renderSidePanel(sidePanelWidth, height))
}

func (p *MapPage) renderSidePanel(width, height int) string {
	chartH := min(hottestLimit+3, height/2+2)
	var chart string
	switch {
	case p.store == nil:
		chart = ""
	case p.loading:
		chart = renderLoadingPlaceholder(width, chartH)
	default:
		chart = p.hot.Render(width, chartH, false)
	}

	var details string
	if p.selected >= 0 && p.selected < len(p.data.Venues) {
		v := p.data.Venues[p.selected]
		tier := lipgloss.NewStyle().Foreground(intensityColor(v.Intensity)).Bold(true).Render(string(v.Intensity))
		details = sectionStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left,
			chartTitleStyle.Render(v.Emoji+" "+v.Name),
			fmt.Sprintf("%s · %s", v.Category, v.Neighborhood),
			fmt.Sprintf("%d people here · %s", v.People, tier),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, chart, details)
}
