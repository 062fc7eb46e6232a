package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/spark/internal/island"
	"github.com/tinytelemetry/spark/internal/model"
	"github.com/tinytelemetry/spark/internal/swipe"
	"go.uber.org/zap"
)

const pageDiscover = "discover"

// DiscoverConfig tunes the swipe deck on the discover page.
type DiscoverConfig struct {
	Tracker     swipe.TrackerConfig
	SettleDelay time.Duration
	RearmDelay  time.Duration
	Scale       PointerScale
}

// DiscoverPage shows the swipeable card deck built from the dataset's users.
type DiscoverPage struct {
	data     *model.Dataset
	deck     *swipe.Deck
	island   *island.Island
	recorder model.VerdictRecorder
	scale    PointerScale
	keys     KeyMap
	log      *zap.Logger
	now      func() time.Time

	cardRect    rect
	lastRemoved string
	matchWith   string // user ID waiting for the match overlay
	overlay     bool
}

// NewDiscoverPage builds the deck and arms its head card. recorder may be nil.
func NewDiscoverPage(data *model.Dataset, isl *island.Island, recorder model.VerdictRecorder, cfg DiscoverConfig, log *zap.Logger) *DiscoverPage {
	if log == nil {
		log = zap.NewNop()
	}
	p := &DiscoverPage{
		data:     data,
		island:   isl,
		recorder: recorder,
		scale:    cfg.Scale,
		keys:     DefaultKeyMap(),
		log:      log.Named("discover"),
		now:      time.Now,
	}
	p.deck = swipe.NewDeck(p.cards(), swipe.DeckConfig{
		Tracker:     cfg.Tracker,
		SettleDelay: cfg.SettleDelay,
		RearmDelay:  cfg.RearmDelay,
		Notifier:    isl,
		Overlay:     p,
		OnRemoved:   p.recordVerdict,
		Logger:      log,
	})
	if err := p.deck.Arm(); err != nil {
		p.log.Debug("nothing to arm", zap.Error(err))
	}
	return p
}

func (p *DiscoverPage) cards() []*swipe.Card {
	cards := make([]*swipe.Card, 0, len(p.data.Users))
	for _, u := range p.data.Users {
		cards = append(cards, swipe.NewCard(u.ID))
	}
	return cards
}

// Deck exposes the underlying deck.
func (p *DiscoverPage) Deck() *swipe.Deck { return p.deck }

func (p *DiscoverPage) ID() string    { return pageDiscover }
func (p *DiscoverPage) Title() string { return "Discover" }
func (p *DiscoverPage) Init() tea.Cmd { return nil }

// Leave snaps back a card that is mid-drag; its release will go to another page.
func (p *DiscoverPage) Leave() {
	tr := p.deck.Tracker()
	if !tr.Active() {
		return
	}
	card := tr.Bound()
	tr.Disarm()
	tr.Arm(card)
}

// Show is called by the deck after a strong accept settles.
func (p *DiscoverPage) Show() {
	if head := p.lastRemoved; head != "" {
		p.matchWith = head
	}
}

// Hide closes the match overlay and returns the island to rest.
func (p *DiscoverPage) Hide() {
	p.overlay = false
	p.island.Collapse()
}

// OverlayOpen reports whether the match overlay is on screen.
func (p *DiscoverPage) OverlayOpen() bool { return p.overlay }

func (p *DiscoverPage) recordVerdict(c *swipe.Card, dir swipe.Direction) {
	p.lastRemoved = c.ID
	if p.recorder == nil {
		return
	}
	err := p.recorder.RecordVerdict(model.VerdictRecord{
		CardID:    c.ID,
		Verdict:   dir.String(),
		DecidedAt: p.now(),
	})
	if err != nil {
		p.log.Warn("recording verdict", zap.Error(err))
	}
}

func (p *DiscoverPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case stepMsg:
		cmd = scheduleCmd(p.ID(), p.deck.Fire(msg.Token))
	case tea.KeyMsg:
		cmd = p.handleKey(msg)
	case tea.MouseMsg:
		if ev, ok := p.scale.pointerEvent(msg, p.cardRect); ok {
			step, _ := p.deck.Handle(ev)
			cmd = scheduleCmd(p.ID(), step)
		}
	}
	return tea.Batch(cmd, p.openMatch()), nil
}

func (p *DiscoverPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	var dir swipe.Direction
	switch {
	case key.Matches(msg, p.keys.Strong):
		dir = swipe.DirUp
	case key.Matches(msg, p.keys.Accept):
		dir = swipe.DirRight
	case key.Matches(msg, p.keys.Reject):
		dir = swipe.DirLeft
	case key.Matches(msg, p.keys.Refill):
		p.refill()
		return nil
	default:
		return nil
	}
	step, err := p.deck.Commit(dir)
	if err != nil {
		if !errors.Is(err, swipe.ErrEmptyDeck) && !errors.Is(err, swipe.ErrBusy) {
			p.log.Warn("commit", zap.Error(err))
		}
		p.log.Debug("commit ignored", zap.Stringer("dir", dir), zap.Error(err))
		return nil
	}
	return scheduleCmd(p.ID(), step)
}

// refill repopulates an exhausted deck.
func (p *DiscoverPage) refill() {
	if p.deck.Len() > 0 {
		return
	}
	if err := p.deck.Reset(p.cards()); err != nil {
		p.log.Debug("refill", zap.Error(err))
		return
	}
	p.island.Notify("New people nearby! ✨")
}

func (p *DiscoverPage) openMatch() tea.Cmd {
	if p.matchWith == "" {
		return nil
	}
	u, ok := p.data.UserByID(p.matchWith)
	p.matchWith = ""
	if !ok {
		p.log.Debug("match overlay for unknown user")
		return nil
	}
	p.overlay = true
	return pushModal(newMatchModal(u, p))
}

func (p *DiscoverPage) View(width, height int) string {
	if p.deck.Len() == 0 {
		p.cardRect = rect{}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				chartTitleStyle.Render("No more people nearby"),
				"",
				helpStyle.Render("Press r to refill the deck"),
			))
	}

	cw := min(max(width-4, 20), 44)
	ch := min(max(height-4, 8), 14)
	baseX := max((width-cw)/2, 0)
	baseY := 1

	head, next := p.deck.Head(), p.deck.Next()
	view := newLayer(width, height)

	// The stacked card peeks out one row below the head.
	if next != nil {
		p.drawCard(view, next, baseX, baseY, cw, ch)
	}
	if head.Opacity > 0 {
		x := clampInt(baseX+p.scale.columns(head.Transform.TranslateX), 0, max(width-cw, 0))
		y := clampInt(baseY+p.scale.rows(head.Transform.TranslateY), 0, max(height-ch, 0))
		p.cardRect = rect{X: x, Y: y, W: cw, H: ch}
		view.draw(x, y, p.renderCard(head, cw, ch))
	} else {
		p.cardRect = rect{}
	}

	hints := helpStyle.Render("←/h pass  ·  →/l like  ·  ↑/s super spark  ·  drag the card")
	view.draw(max((width-lipgloss.Width(hints))/2, 0), height-1, hints)
	return view.String()
}

func (p *DiscoverPage) drawCard(view *layer, c *swipe.Card, baseX, baseY, cw, ch int) {
	w := max(int(float64(cw)*c.Transform.Scale), 4)
	x := baseX + (cw-w)/2
	y := baseY + p.scale.rows(c.Transform.TranslateY)
	view.draw(x, y, p.renderCard(c, w, ch))
}

func (p *DiscoverPage) renderCard(c *swipe.Card, w, h int) string {
	u, ok := p.data.UserByID(c.ID)
	if !ok {
		u = model.User{Name: "Unknown"}
	}
	var stamp string
	if c == p.deck.Head() && p.deck.Tracker().Active() {
		dx := p.deck.Tracker().Delta().X
		threshold := p.deck.Tracker().Config().SwipeThreshold
		switch {
		case dx > threshold:
			stamp = "LIKE ♥"
		case dx < -threshold:
			stamp = "NOPE ✕"
		}
	}
	return renderUserCard(u, cardLook{
		Width:   w,
		Height:  h,
		Rotate:  c.Transform.Rotate,
		Opacity: c.Opacity,
		Stamp:   stamp,
		Stacked: c.IsStacked(),
		Active:  c.Dragging,
	})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
