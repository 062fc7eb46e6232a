// Package sched provides single-slot delayed steps driven by an external clock.
//
// Nothing here starts goroutines or timers. A Slot hands out a Step describing
// when it wants to be fired; the caller (the Bubble Tea loop in practice) arranges
// for Fire to be called with the step's token after the delay. Rescheduling or
// cancelling a slot invalidates the previous token, so a late tick from an older
// cycle is ignored instead of acting on newer state.
package sched

import "time"

// Step is a request to call Fire(Token) after Delay.
// The zero Step means nothing is scheduled.
type Step struct {
	Token uint64
	Delay time.Duration
}

// Zero reports whether the step schedules nothing.
func (s Step) Zero() bool { return s.Token == 0 }

// Timeline issues tokens that are unique within it.
type Timeline struct {
	last uint64
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline { return &Timeline{} }

func (t *Timeline) next() uint64 {
	t.last++
	return t.last
}

// Slot creates a slot whose tokens come from this timeline.
func (t *Timeline) Slot() *Slot { return &Slot{tl: t} }

// Slot holds at most one pending step.
type Slot struct {
	tl      *Timeline
	pending uint64
}

// NewSlot creates a slot with its own private timeline.
func NewSlot() *Slot { return NewTimeline().Slot() }

// Schedule replaces any pending step with a new one after d.
func (s *Slot) Schedule(d time.Duration) Step {
	s.pending = s.tl.next()
	return Step{Token: s.pending, Delay: d}
}

// Cancel drops the pending step, if any.
func (s *Slot) Cancel() { s.pending = 0 }

// Pending reports whether a step is waiting to fire.
func (s *Slot) Pending() bool { return s.pending != 0 }

// Owns reports whether token is the slot's pending token.
func (s *Slot) Owns(token uint64) bool { return token != 0 && token == s.pending }

// Fire consumes the pending step if token matches it.
// It returns false for stale, cancelled or already-fired tokens.
func (s *Slot) Fire(token uint64) bool {
	if !s.Owns(token) {
		return false
	}
	s.pending = 0
	return true
}
