// Package inbox manages the list of incoming spark requests. Accepting or
// declining a request slides it out and removes it after a settle delay.
package inbox

import (
	"errors"
	"time"

	"github.com/tinytelemetry/spark/internal/model"
	"github.com/tinytelemetry/spark/internal/sched"
	"github.com/tinytelemetry/spark/internal/swipe"
	"go.uber.org/zap"
)

// ErrNotFound is returned for an unknown or already departing request.
var ErrNotFound = errors.New("inbox: no such request")

// AcceptedMessage is announced when a request is accepted.
const AcceptedMessage = "Spark accepted! You can now chat 💬"

// Item is one request and, while it leaves, its exit direction.
type Item struct {
	Request model.SparkRequest
	Leaving bool
	Dir     swipe.Direction
	slot    *sched.Slot
}

// Inbox is an ordered list of requests.
type Inbox struct {
	items    []*Item
	timeline *sched.Timeline
	settle   time.Duration
	notifier swipe.Notifier
	log      *zap.Logger
}

// New creates an inbox. A non-positive settle uses swipe.DefaultSettleDelay.
func New(requests []model.SparkRequest, settle time.Duration, notifier swipe.Notifier, log *zap.Logger) *Inbox {
	if settle <= 0 {
		settle = swipe.DefaultSettleDelay
	}
	if log == nil {
		log = zap.NewNop()
	}
	tl := sched.NewTimeline()
	items := make([]*Item, len(requests))
	for i, r := range requests {
		items[i] = &Item{Request: r, slot: tl.Slot()}
	}
	return &Inbox{
		items:    items,
		timeline: tl,
		settle:   settle,
		notifier: notifier,
		log:      log.Named("inbox"),
	}
}

// Items returns the requests still listed, including ones mid-exit.
func (b *Inbox) Items() []*Item { return append([]*Item(nil), b.items...) }

// Len returns the number of listed requests.
func (b *Inbox) Len() int { return len(b.items) }

// Unread returns the badge count: listed requests not already leaving.
func (b *Inbox) Unread() int {
	n := 0
	for _, it := range b.items {
		if !it.Leaving {
			n++
		}
	}
	return n
}

// Accept announces the match and slides the request out to the right.
func (b *Inbox) Accept(id string) (sched.Step, error) {
	step, err := b.leave(id, swipe.DirRight)
	if err == nil && b.notifier != nil {
		b.notifier.Notify(AcceptedMessage)
	}
	return step, err
}

// Decline slides the request out to the left.
func (b *Inbox) Decline(id string) (sched.Step, error) {
	return b.leave(id, swipe.DirLeft)
}

func (b *Inbox) leave(id string, dir swipe.Direction) (sched.Step, error) {
	it := b.find(id)
	if it == nil || it.Leaving {
		return sched.Step{}, ErrNotFound
	}
	it.Leaving = true
	it.Dir = dir
	b.log.Debug("request leaving", zap.String("id", id), zap.Stringer("dir", dir))
	return it.slot.Schedule(b.settle), nil
}

// Fire removes the request whose exit step matches token.
func (b *Inbox) Fire(token uint64) bool {
	for i, it := range b.items {
		if it.slot.Fire(token) {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Inbox) find(id string) *Item {
	for _, it := range b.items {
		if it.Request.ID == id {
			return it
		}
	}
	return nil
}
