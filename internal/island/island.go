// Package island is the notification surface shown at the top of every
// screen. It expands to show a message and collapses on its own after a dwell.
package island

import (
	"time"

	"github.com/tinytelemetry/spark/internal/sched"
	"go.uber.org/zap"
)

// DefaultDwell is how long an expanded island stays open.
const DefaultDwell = 3 * time.Second

// Intro timing: the island opens once shortly after startup.
const introDelay = time.Second

type stepKind int

const (
	stepCollapse stepKind = iota
	stepExpand
)

// Island holds the expanded/collapsed state and the current message.
//
// Notify is fire-and-forget: the auto-collapse it needs is queued in an
// outbox that the owner drains and turns into timer ticks.
type Island struct {
	dwell    time.Duration
	expanded bool
	message  string
	slot     *sched.Slot
	kind     stepKind
	outbox   []sched.Step
	log      *zap.Logger
}

// New creates a collapsed island. A non-positive dwell uses DefaultDwell.
func New(dwell time.Duration, log *zap.Logger) *Island {
	if dwell <= 0 {
		dwell = DefaultDwell
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Island{dwell: dwell, slot: sched.NewSlot(), log: log.Named("island")}
}

// Expanded reports whether the island is open.
func (i *Island) Expanded() bool { return i.expanded }

// Message returns the last notification text.
func (i *Island) Message() string { return i.message }

// Notify shows message and schedules the collapse. A newer notification
// restarts the dwell.
func (i *Island) Notify(message string) {
	i.log.Debug("notify", zap.String("message", message))
	i.message = message
	i.expanded = true
	i.schedule(stepCollapse, i.dwell)
}

// Expand opens the island without a timer.
func (i *Island) Expand() { i.expanded = true }

// Collapse closes the island and drops a pending collapse.
func (i *Island) Collapse() {
	i.expanded = false
	i.slot.Cancel()
}

// Toggle handles a tap on the island: close it when open, otherwise open it
// for one dwell.
func (i *Island) Toggle() {
	if i.expanded {
		i.Collapse()
		return
	}
	i.expanded = true
	i.schedule(stepCollapse, i.dwell)
}

// Intro opens the island briefly after startup.
func (i *Island) Intro() {
	i.schedule(stepExpand, introDelay)
}

func (i *Island) schedule(kind stepKind, d time.Duration) {
	i.kind = kind
	i.outbox = append(i.outbox, i.slot.Schedule(d))
}

// Fire runs the pending step for token; stale tokens are ignored.
func (i *Island) Fire(token uint64) {
	if !i.slot.Fire(token) {
		return
	}
	switch i.kind {
	case stepExpand:
		i.expanded = true
		i.schedule(stepCollapse, i.dwell)
	case stepCollapse:
		i.expanded = false
	}
}

// Drain returns and clears the queued steps.
func (i *Island) Drain() []sched.Step {
	out := i.outbox
	i.outbox = nil
	return out
}
