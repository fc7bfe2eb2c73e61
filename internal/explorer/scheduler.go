package explorer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type debounceMsg struct {
	seq int
}

// tickScheduler adapts the controller's debounce capability to Bubble
// Tea ticks. Every Schedule or Cancel bumps the sequence number, so a
// tick from a superseded schedule is ignored when it lands: only one
// logical timer is ever outstanding and stale callbacks never run.
type tickScheduler struct {
	seq   int
	delay time.Duration
	fn    func()
}

func (s *tickScheduler) Schedule(delay time.Duration, fn func()) {
	s.seq++
	s.delay = delay
	s.fn = fn
}

func (s *tickScheduler) Cancel() {
	s.seq++
	s.fn = nil
}

// pending returns the command that will deliver the scheduled callback,
// or nil when nothing is scheduled.
func (s *tickScheduler) pending() tea.Cmd {
	if s.fn == nil {
		return nil
	}
	seq := s.seq
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// fire runs the scheduled callback if the tick is current. It reports
// whether a callback ran.
func (s *tickScheduler) fire(msg debounceMsg) bool {
	if msg.seq != s.seq || s.fn == nil {
		return false
	}
	fn := s.fn
	s.fn = nil
	fn()
	return true
}
