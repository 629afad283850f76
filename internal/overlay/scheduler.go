package overlay

import "time"

// Timer is a pending single-fire task.
type Timer interface {
	Stop() bool
}

// Scheduler arms single-fire tasks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ClockScheduler schedules on the wall clock.
type ClockScheduler struct{}

func (ClockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
