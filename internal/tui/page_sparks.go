package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/spark/internal/inbox"
	"github.com/tinytelemetry/spark/internal/swipe"
	"go.uber.org/zap"
)

const pageSparks = "sparks"

// Row geometry in cells.
const (
	sparkRowHeight     = 4
	acceptButtonWidth  = 10
	declineButtonWidth = 8
)

// SparksPage lists incoming spark requests.
type SparksPage struct {
	inbox  *inbox.Inbox
	scale  PointerScale
	keys   KeyMap
	log    *zap.Logger
	cursor int

	// Hit boxes from the last render, keyed by request ID.
	acceptRects  map[string]rect
	declineRects map[string]rect
}

func NewSparksPage(box *inbox.Inbox, scale PointerScale, log *zap.Logger) *SparksPage {
	if log == nil {
		log = zap.NewNop()
	}
	return &SparksPage{
		inbox:        box,
		scale:        scale,
		keys:         DefaultKeyMap(),
		log:          log.Named("sparks"),
		acceptRects:  make(map[string]rect),
		declineRects: make(map[string]rect),
	}
}

func (p *SparksPage) ID() string    { return pageSparks }
func (p *SparksPage) Title() string { return "Sparks" }
func (p *SparksPage) Init() tea.Cmd { return nil }

// Badge counts requests until they are removed from the list.
func (p *SparksPage) Badge() int { return p.inbox.Len() }

func (p *SparksPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case stepMsg:
		if p.inbox.Fire(msg.Token) {
			p.clampCursor()
		}
	case tea.KeyMsg:
		return p.handleKey(msg), nil
	case tea.MouseMsg:
		if !isClick(msg) {
			return nil, nil
		}
		for id, r := range p.acceptRects {
			if r.contains(msg.X, msg.Y) {
				return p.act(id, true), nil
			}
		}
		for id, r := range p.declineRects {
			if r.contains(msg.X, msg.Y) {
				return p.act(id, false), nil
			}
		}
	}
	return nil, nil
}

func (p *SparksPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	items := p.inbox.Items()
	switch {
	case key.Matches(msg, p.keys.Up):
		p.cursor = max(p.cursor-1, 0)
	case key.Matches(msg, p.keys.Down):
		p.cursor = min(p.cursor+1, max(len(items)-1, 0))
	case key.Matches(msg, p.keys.Enter):
		if p.cursor < len(items) {
			return p.act(items[p.cursor].Request.ID, true)
		}
	case key.Matches(msg, p.keys.Decline):
		if p.cursor < len(items) {
			return p.act(items[p.cursor].Request.ID, false)
		}
	}
	return nil
}

func (p *SparksPage) act(id string, accept bool) tea.Cmd {
	leave := p.inbox.Decline
	if accept {
		leave = p.inbox.Accept
	}
	step, err := leave(id)
	if err != nil {
		if errors.Is(err, inbox.ErrNotFound) {
			p.log.Debug("request already handled", zap.String("id", id))
			return nil
		}
		p.log.Warn("spark action", zap.Error(err))
		return nil
	}
	return scheduleCmd(p.ID(), step)
}

// slideColumns is how far a leaving row moves; resting rows are indented by
// the same amount so both exit sides have room.
func (p *SparksPage) slideColumns() int {
	return p.scale.columns(swipe.ExitDistance) / 8
}

func (p *SparksPage) rowX(it *inbox.Item) int {
	slide := p.slideColumns()
	switch {
	case !it.Leaving:
		return slide
	case it.Dir == swipe.DirLeft:
		return 0
	default:
		return 2 * slide
	}
}

func (p *SparksPage) clampCursor() {
	p.cursor = min(p.cursor, max(p.inbox.Len()-1, 0))
}

func (p *SparksPage) View(width, height int) string {
	clear(p.acceptRects)
	clear(p.declineRects)

	header := chartTitleStyle.Render(fmt.Sprintf("Sparks ✨  %d new", p.inbox.Unread()))
	items := p.inbox.Items()
	if len(items) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			helpStyle.Render("No sparks yet. Keep exploring!"))
	}

	slide := p.slideColumns()
	rowW := min(max(width-2*slide, 20), 64)
	view := newLayer(width, height)
	view.draw(0, 0, header)
	y := 2
	for i, it := range items {
		if y+sparkRowHeight > height {
			break
		}
		x := p.rowX(it)
		row := renderSparkRow(it, rowW, i == p.cursor)
		view.draw(x, y, row)

		if !it.Leaving {
			// Buttons sit at the right end of the second content line.
			right := x + rowW - 2
			p.declineRects[it.Request.ID] = rect{X: right - declineButtonWidth, Y: y + 2, W: declineButtonWidth, H: 1}
			p.acceptRects[it.Request.ID] = rect{X: right - declineButtonWidth - 1 - acceptButtonWidth, Y: y + 2, W: acceptButtonWidth, H: 1}
		}
		y += sparkRowHeight
	}
	view.draw(0, height-1, helpStyle.Render("↑↓ select · enter accept · d decline"))
	return view.String()
}

func renderSparkRow(it *inbox.Item, width int, selected bool) string {
	r := it.Request
	border := ColorGray
	if selected {
		border = ColorPink
	}
	name := lipgloss.NewStyle().Bold(true).Render(r.Avatar + " " + r.Name)
	meta := helpStyle.Render(fmt.Sprintf("%s · %s · %s", r.Location, r.Distance, r.Received))

	accept := lipgloss.NewStyle().Foreground(ColorInk).Background(ColorGreen).Render(" ✓ Accept ")
	decline := lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorGray).Render(" ✕ Pass ")
	buttons := accept + " " + decline

	inner := width - 4
	line1 := name
	gap := inner - lipgloss.Width(meta) - lipgloss.Width(buttons)
	line2 := meta
	if gap > 0 {
		line2 += strings.Repeat(" ", gap) + buttons
	}

	style := lipgloss.NewStyle().
		Width(width-2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
	if it.Leaving {
		style = style.Faint(true)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, line1, line2))
}
