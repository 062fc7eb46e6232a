package swipe

import "math"

// Verdict is the outcome of a completed drag.
type Verdict int

const (
	VerdictCancel Verdict = iota
	VerdictAccept
	VerdictReject
)

func (v Verdict) String() string {
	switch v {
	case VerdictAccept:
		return "accept"
	case VerdictReject:
		return "reject"
	default:
		return "cancel"
	}
}

// Default drag tuning.
const (
	DefaultSwipeThreshold = 100.0 // px of horizontal travel before a drag commits
	DefaultRotationPerPx  = 0.1   // degrees per px of horizontal travel
	DefaultFadeDistance   = 300.0 // px of horizontal travel to reach zero opacity
)

// TrackerConfig tunes how a drag maps to card style and verdict.
type TrackerConfig struct {
	SwipeThreshold float64
	RotationPerPx  float64
	FadeDistance   float64
	// ClampOpacity keeps drag opacity within [0, 1]. Without it, drags past
	// FadeDistance yield negative opacity.
	ClampOpacity bool
}

// DefaultTrackerConfig returns the stock tuning with clamped opacity.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		SwipeThreshold: DefaultSwipeThreshold,
		RotationPerPx:  DefaultRotationPerPx,
		FadeDistance:   DefaultFadeDistance,
		ClampOpacity:   true,
	}
}

func (c TrackerConfig) withDefaults() TrackerConfig {
	d := DefaultTrackerConfig()
	if c.SwipeThreshold <= 0 {
		c.SwipeThreshold = d.SwipeThreshold
	}
	if c.RotationPerPx == 0 {
		c.RotationPerPx = d.RotationPerPx
	}
	if c.FadeDistance <= 0 {
		c.FadeDistance = d.FadeDistance
	}
	return c
}

// session is one press-move-release interaction. It exists only while the
// pointer is down on the bound card.
type session struct {
	card    *Card
	origin  Point
	current Point
}

func (s *session) delta() Point { return s.current.Sub(s.origin) }

// Tracker turns a pointer drag on one bound card into a verdict.
// It holds exactly one binding at a time.
type Tracker struct {
	cfg     TrackerConfig
	bound   *Card
	session *session
}

// NewTracker creates an unbound tracker.
func NewTracker(cfg TrackerConfig) *Tracker {
	return &Tracker{cfg: cfg.withDefaults()}
}

// Config returns the tracker tuning.
func (t *Tracker) Config() TrackerConfig { return t.cfg }

// Arm binds the tracker to c, replacing any previous binding.
// Arming the card that is already bound is a no-op. Arming a different card
// while a drag is in progress snaps the dragged card back first.
func (t *Tracker) Arm(c *Card) {
	if c == t.bound {
		return
	}
	if t.session != nil {
		t.session.card.Dragging = false
		t.session.card.reset()
		t.session = nil
	}
	t.bound = c
}

// Disarm drops the binding. An active drag is snapped back.
func (t *Tracker) Disarm() { t.Arm(nil) }

// Bound returns the armed card, or nil.
func (t *Tracker) Bound() *Card { return t.bound }

// Active reports whether a drag session is in progress.
func (t *Tracker) Active() bool { return t.session != nil }

// Delta returns the current drag displacement, zero when idle.
func (t *Tracker) Delta() Point {
	if t.session == nil {
		return Point{}
	}
	return t.session.delta()
}

// PressStart opens a drag session at p. It is ignored when nothing is armed
// or a session is already open, and reports whether a session started.
func (t *Tracker) PressStart(p Point) bool {
	if t.bound == nil || t.session != nil {
		return false
	}
	t.session = &session{card: t.bound, origin: p, current: p}
	t.bound.Dragging = true
	return true
}

// Move updates the bound card to follow the pointer. Without an open
// session it does nothing and returns false.
func (t *Tracker) Move(p Point) bool {
	if t.session == nil {
		return false
	}
	t.session.current = p
	d := t.session.delta()

	c := t.session.card
	c.Transform = Transform{
		TranslateX: d.X,
		TranslateY: d.Y,
		Rotate:     d.X * t.cfg.RotationPerPx,
		Scale:      1,
	}
	c.Opacity = 1 - math.Abs(d.X)/t.cfg.FadeDistance
	if t.cfg.ClampOpacity {
		c.Opacity = clamp01(c.Opacity)
	}
	return true
}

// Release closes the session and decides the verdict from the final
// horizontal travel. A cancel snaps the card back immediately; accept and
// reject leave it displaced for the exit animation. The second result is
// false when there was no session to close.
func (t *Tracker) Release() (Verdict, bool) {
	if t.session == nil {
		return VerdictCancel, false
	}
	s := t.session
	t.session = nil
	s.card.Dragging = false

	v := t.decide(s.delta().X)
	if v == VerdictCancel {
		s.card.reset()
	}
	return v, true
}

func (t *Tracker) decide(dx float64) Verdict {
	if math.Abs(dx) <= t.cfg.SwipeThreshold {
		return VerdictCancel
	}
	if dx > 0 {
		return VerdictAccept
	}
	return VerdictReject
}

// Handle dispatches a unified pointer event. It returns the verdict and true
// only for a release that closed a session.
func (t *Tracker) Handle(ev PointerEvent) (Verdict, bool) {
	switch ev.Kind {
	case PointerDown:
		t.PressStart(ev.Point)
	case PointerMove:
		t.Move(ev.Point)
	case PointerUp:
		return t.Release()
	}
	return VerdictCancel, false
}
