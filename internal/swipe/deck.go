package swipe

import (
	"errors"
	"time"

	"github.com/tinytelemetry/spark/internal/sched"
	"go.uber.org/zap"
)

var (
	// ErrEmptyDeck is returned when an operation needs a head card and there is none.
	ErrEmptyDeck = errors.New("swipe: deck is empty")
	// ErrBusy is returned when a commit is requested mid-drag or while a
	// previous commit is still settling.
	ErrBusy = errors.New("swipe: deck is busy")
)

// Direction is where a committed card leaves the deck.
type Direction int

const (
	DirRight Direction = iota // accept
	DirLeft                   // reject
	DirUp                     // strong accept, dedicated control only
)

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	default:
		return "unknown"
	}
}

// ExitDistance is how far a committed card travels off its slot, in px.
const ExitDistance = 500.0

// ExitTransform returns the final transform of a card leaving in direction d.
func ExitTransform(d Direction) Transform {
	switch d {
	case DirLeft:
		return Transform{TranslateX: -ExitDistance, Rotate: -20, Scale: 1}
	case DirUp:
		return Transform{TranslateY: -ExitDistance, Rotate: 10, Scale: 0.8}
	default:
		return Transform{TranslateX: ExitDistance, Rotate: 20, Scale: 1}
	}
}

// Notifier is a fire-and-forget message surface.
type Notifier interface {
	Notify(message string)
}

// Overlay is the mutual-match overlay toggled by a strong accept.
type Overlay interface {
	Show()
	Hide()
}

// Phase is the deck's position in the interaction cycle.
type Phase int

const (
	PhaseIdle       Phase = iota // head armed, no drag
	PhaseDragging                // drag session open
	PhaseCommitting              // exit animation running, removal pending
	PhaseSettling                // card removed, re-arm pending
	PhaseEmpty                   // no cards left
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseCommitting:
		return "committing"
	case PhaseSettling:
		return "settling"
	case PhaseEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Default deck timings.
const (
	DefaultSettleDelay = 300 * time.Millisecond
	DefaultRearmDelay  = 100 * time.Millisecond
)

// DeckConfig wires a deck to its collaborators. Nil collaborators are ignored.
type DeckConfig struct {
	Tracker     TrackerConfig
	SettleDelay time.Duration
	RearmDelay  time.Duration
	Notifier    Notifier
	Overlay     Overlay
	// Reactions maps a direction to a notification sent once the card is removed.
	// Nil means DefaultReactions.
	Reactions map[Direction]string
	// OnRemoved observes each removed card with the direction it left in.
	OnRemoved func(card *Card, dir Direction)
	Logger    *zap.Logger
}

// DefaultReactions only announces the strong accept.
func DefaultReactions() map[Direction]string {
	return map[Direction]string{DirUp: "Event saved! 🔥"}
}

type stepKind int

const (
	stepNone stepKind = iota
	stepRemove
	stepRearm
)

// Deck owns an ordered stack of cards and the commit lifecycle of its head.
// It is driven from a single goroutine; pending delays are expressed as
// sched.Steps that the caller fires back through Fire.
type Deck struct {
	cards   []*Card
	tracker *Tracker
	cfg     DeckConfig
	log     *zap.Logger

	slot       *sched.Slot
	pending    stepKind
	committing *Card
	dir        Direction
}

// NewDeck creates a deck over cards (head first) and applies the resting
// presentation. The tracker is not armed until Arm is called.
func NewDeck(cards []*Card, cfg DeckConfig) *Deck {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.RearmDelay <= 0 {
		cfg.RearmDelay = DefaultRearmDelay
	}
	if cfg.Reactions == nil {
		cfg.Reactions = DefaultReactions()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	d := &Deck{
		cards:   append([]*Card(nil), cards...),
		tracker: NewTracker(cfg.Tracker),
		cfg:     cfg,
		log:     log.Named("deck"),
		slot:    sched.NewSlot(),
	}
	d.Advance()
	return d
}

// Len returns the number of cards still in the deck, including one that is
// mid-exit.
func (d *Deck) Len() int { return len(d.cards) }

// Cards returns the deck order, head first.
func (d *Deck) Cards() []*Card { return append([]*Card(nil), d.cards...) }

// Head returns the foremost card, or nil.
func (d *Deck) Head() *Card {
	if len(d.cards) == 0 {
		return nil
	}
	return d.cards[0]
}

// Next returns the card behind the head, or nil.
func (d *Deck) Next() *Card {
	if len(d.cards) < 2 {
		return nil
	}
	return d.cards[1]
}

// Tracker exposes the deck's gesture tracker.
func (d *Deck) Tracker() *Tracker { return d.tracker }

// Committing returns the card on its way out and its direction.
func (d *Deck) Committing() (*Card, Direction, bool) {
	if d.committing == nil {
		return nil, 0, false
	}
	return d.committing, d.dir, true
}

// Phase reports where the deck is in the interaction cycle.
func (d *Deck) Phase() Phase {
	switch {
	case d.pending == stepRemove:
		return PhaseCommitting
	case d.tracker.Active():
		return PhaseDragging
	case d.pending == stepRearm:
		return PhaseSettling
	case len(d.cards) == 0:
		return PhaseEmpty
	default:
		return PhaseIdle
	}
}

// Arm binds the tracker to the current head.
func (d *Deck) Arm() error {
	head := d.Head()
	if head == nil {
		d.tracker.Disarm()
		return ErrEmptyDeck
	}
	d.tracker.Arm(head)
	return nil
}

// Advance restyles the top of the deck: the head at rest, the next card
// stacked behind it. Cards further back are left alone.
func (d *Deck) Advance() {
	for i, c := range d.cards {
		switch i {
		case 0:
			c.reset()
		case 1:
			c.stack()
		default:
			return
		}
	}
}

// Handle routes a pointer event to the tracker and commits accept/reject
// verdicts. Pointer input is ignored while a commit is in flight. The
// returned step is non-zero when a removal was scheduled.
func (d *Deck) Handle(ev PointerEvent) (sched.Step, Verdict) {
	if d.pending == stepRemove {
		return sched.Step{}, VerdictCancel
	}
	v, done := d.tracker.Handle(ev)
	if !done {
		return sched.Step{}, VerdictCancel
	}

	var dir Direction
	switch v {
	case VerdictAccept:
		dir = DirRight
	case VerdictReject:
		dir = DirLeft
	default:
		d.log.Debug("drag cancelled, snapped back")
		return sched.Step{}, v
	}
	step, err := d.Commit(dir)
	if err != nil {
		d.log.Debug("commit after drag failed", zap.Error(err))
	}
	return step, v
}

// Commit starts the exit of the head card in direction dir and schedules its
// removal after the settle delay. A pending re-arm is superseded.
func (d *Deck) Commit(dir Direction) (sched.Step, error) {
	head := d.Head()
	if head == nil {
		return sched.Step{}, ErrEmptyDeck
	}
	if d.pending == stepRemove || d.tracker.Active() {
		return sched.Step{}, ErrBusy
	}

	head.Transform = ExitTransform(dir)
	head.Opacity = 0
	d.committing = head
	d.dir = dir
	d.pending = stepRemove
	d.log.Debug("commit", zap.String("card", head.ID), zap.Stringer("dir", dir))
	return d.slot.Schedule(d.cfg.SettleDelay), nil
}

// Fire runs the step identified by token. Stale tokens are ignored and
// return a zero step. Removing a card returns the follow-up re-arm step.
func (d *Deck) Fire(token uint64) sched.Step {
	if !d.slot.Fire(token) {
		return sched.Step{}
	}
	kind := d.pending
	d.pending = stepNone

	switch kind {
	case stepRemove:
		return d.remove()
	case stepRearm:
		if err := d.Arm(); err != nil {
			d.log.Debug("re-arm skipped", zap.Error(err))
		}
	}
	return sched.Step{}
}

func (d *Deck) remove() sched.Step {
	gone, dir := d.committing, d.dir
	d.committing = nil

	if len(d.cards) > 0 && d.cards[0] == gone {
		d.cards = d.cards[1:]
	}
	if d.tracker.Bound() == gone {
		d.tracker.Disarm()
	}
	d.Advance()
	d.react(gone, dir)

	if len(d.cards) == 0 {
		d.log.Debug("deck exhausted")
		return sched.Step{}
	}
	d.pending = stepRearm
	return d.slot.Schedule(d.cfg.RearmDelay)
}

func (d *Deck) react(gone *Card, dir Direction) {
	if d.cfg.OnRemoved != nil {
		d.cfg.OnRemoved(gone, dir)
	}
	if msg := d.cfg.Reactions[dir]; msg != "" && d.cfg.Notifier != nil {
		d.cfg.Notifier.Notify(msg)
	}
	if dir == DirUp && d.cfg.Overlay != nil {
		d.cfg.Overlay.Show()
	}
}

// Reset repopulates the deck, dropping any pending step, and arms the new head.
func (d *Deck) Reset(cards []*Card) error {
	d.slot.Cancel()
	d.pending = stepNone
	d.committing = nil
	d.tracker.Disarm()
	d.cards = append([]*Card(nil), cards...)
	d.Advance()
	return d.Arm()
}
