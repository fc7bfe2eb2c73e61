package session

import "time"

// Scheduler is the cancellable deferred-callback capability the
// controller uses for hover debouncing. There is only ever one logical
// slot: Schedule replaces any pending callback, Cancel drops it.
// Implementations decide how the delay elapses (wall clock, event
// loop tick, or a fake clock in tests).
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
	Cancel()
}

// NopScheduler discards every schedule request. Useful when hover
// debouncing is not wired up.
type NopScheduler struct{}

// Schedule implements Scheduler.
func (NopScheduler) Schedule(time.Duration, func()) {}

// Cancel implements Scheduler.
func (NopScheduler) Cancel() {}
