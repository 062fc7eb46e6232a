package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/spark/internal/sched"
)

// ownerIsland routes steps to the notification surface rather than a page.
const ownerIsland = "island"

// clockInterval is how often the status bar clock is redrawn.
const clockInterval = 5 * time.Second

// stepMsg delivers a scheduled step back to whoever scheduled it.
type stepMsg struct {
	Owner string
	Token uint64
}

// ownedMsg is a result addressed to the page that asked for it, which may
// no longer be on screen when it arrives.
type ownedMsg interface {
	owner() string
}

// clockMsg refreshes the status bar clock.
type clockMsg time.Time

// pushModalMsg asks the app to show a modal on top of the active page.
type pushModalMsg struct {
	Modal Modal
}

// tick is the timer used for scheduled steps.
var tick = tea.Tick

// scheduleCmd turns a step into a timer tick. The zero step yields nil.
func scheduleCmd(owner string, s sched.Step) tea.Cmd {
	if s.Zero() {
		return nil
	}
	token := s.Token
	return tick(s.Delay, func(time.Time) tea.Msg {
		return stepMsg{Owner: owner, Token: token}
	})
}

// scheduleAll batches the ticks for steps.
func scheduleAll(owner string, steps []sched.Step) tea.Cmd {
	if len(steps) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(steps))
	for _, s := range steps {
		cmds = append(cmds, scheduleCmd(owner, s))
	}
	return tea.Batch(cmds...)
}

func clockTick() tea.Cmd {
	return tick(clockInterval, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func pushModal(m Modal) tea.Cmd {
	return func() tea.Msg { return pushModalMsg{Modal: m} }
}
