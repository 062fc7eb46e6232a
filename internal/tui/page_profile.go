package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/spark/internal/island"
	"github.com/tinytelemetry/spark/internal/model"
	"go.uber.org/zap"
)

const pageProfile = "profile"

// tallyMsg carries the verdict counts for the profile page.
type tallyMsg struct {
	counts map[string]int64
	err    error
}

func (tallyMsg) owner() string { return pageProfile }

// ProfilePage shows the session tally and the settings toggles.
type ProfilePage struct {
	settings []model.Setting
	recorder model.VerdictRecorder
	island   *island.Island
	keys     KeyMap
	log      *zap.Logger
	cursor   int

	tally   map[string]int64
	loading bool

	rowsY int // first settings row on screen
}

// NewProfilePage copies settings so toggles stay local to the session.
func NewProfilePage(settings []model.Setting, recorder model.VerdictRecorder, isl *island.Island, log *zap.Logger) *ProfilePage {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfilePage{
		settings: append([]model.Setting(nil), settings...),
		recorder: recorder,
		island:   isl,
		keys:     DefaultKeyMap(),
		log:      log.Named("profile"),
	}
}

func (p *ProfilePage) ID() string    { return pageProfile }
func (p *ProfilePage) Title() string { return "Me" }

// Settings returns the current toggle states.
func (p *ProfilePage) Settings() []model.Setting {
	return append([]model.Setting(nil), p.settings...)
}

// Init refreshes the tally on every visit.
func (p *ProfilePage) Init() tea.Cmd {
	if p.recorder == nil {
		return nil
	}
	if p.loading {
		return spinnerTick(true)
	}
	p.loading = true
	rec := p.recorder
	return tea.Batch(func() tea.Msg {
		counts, err := rec.VerdictCounts()
		return tallyMsg{counts: counts, err: err}
	}, spinnerTick(true))
}

func (p *ProfilePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tallyMsg:
		p.loading = false
		if msg.err != nil {
			p.log.Warn("verdict tally query failed", zap.Error(msg.err))
			return nil, nil
		}
		p.tally = msg.counts
	case SpinnerTickMsg:
		return spinnerTick(p.loading), nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Up):
			p.cursor = max(p.cursor-1, 0)
		case key.Matches(msg, p.keys.Down):
			p.cursor = min(p.cursor+1, max(len(p.settings)-1, 0))
		case key.Matches(msg, p.keys.Enter), msg.String() == " ":
			p.Toggle(p.cursor)
		}
	case tea.MouseMsg:
		if isClick(msg) {
			if i := msg.Y - p.rowsY; i >= 0 && i < len(p.settings) {
				p.cursor = i
				p.Toggle(i)
			}
		}
	}
	return nil, nil
}

// Toggle flips setting i and announces its new state.
func (p *ProfilePage) Toggle(i int) {
	if i < 0 || i >= len(p.settings) {
		return
	}
	s := &p.settings[i]
	s.Enabled = !s.Enabled
	state := "Disabled"
	if s.Enabled {
		state = "Enabled"
	}
	p.island.Notify(fmt.Sprintf("%s: %s", s.Label, state))
}

func (p *ProfilePage) View(width, height int) string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		chartTitleStyle.Render("🧑 You"),
		helpStyle.Render("Explorer · Manhattan"),
	)

	var stats string
	switch {
	case p.recorder == nil:
	case p.loading && p.tally == nil:
		stats = renderLoadingPlaceholder(min(width, 40), 3)
	default:
		stat := func(label string, n int64, c lipgloss.Color) string {
			return lipgloss.NewStyle().Width(14).Align(lipgloss.Center).Render(
				lipgloss.JoinVertical(lipgloss.Center,
					lipgloss.NewStyle().Foreground(c).Bold(true).Render(fmt.Sprintf("%d", n)),
					helpStyle.Render(label),
				))
		}
		stats = sectionStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
			stat("liked", p.tally["right"], ColorGreen),
			stat("passed", p.tally["left"], ColorRed),
			stat("super sparks", p.tally["up"], ColorPink),
		))
	}

	rows := make([]string, 0, len(p.settings))
	rowW := min(width, 48)
	for i, s := range p.settings {
		toggle := lipgloss.NewStyle().Foreground(ColorGray).Render("○ off")
		if s.Enabled {
			toggle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true).Render("● on ")
		}
		label := s.Label
		gap := max(rowW-lipgloss.Width(label)-lipgloss.Width(toggle)-2, 1)
		line := fmt.Sprintf(" %s%*s%s ", label, gap, "", toggle)
		if i == p.cursor {
			line = lipgloss.NewStyle().Background(ColorInk).Render(line)
		}
		rows = append(rows, line)
	}

	top := lipgloss.JoinVertical(lipgloss.Left, header, "", stats, "", chartTitleStyle.Render("Settings"))
	p.rowsY = lipgloss.Height(top)
	return lipgloss.JoinVertical(lipgloss.Left, top, lipgloss.JoinVertical(lipgloss.Left, rows...))
}
