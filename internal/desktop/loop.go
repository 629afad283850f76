// Package desktop hosts the overlay on a real display: a GLFW window for the
// surface, a system tray menu for the dimming commands, and the UI loop both
// of them post into.
package desktop

import (
	"sync"
)

// Waker blocks the UI thread until toolkit events or posted work arrive.
type Waker interface {
	Wait()
	Wake()
}

// Loop serialises UI work onto the goroutine that calls Run. Toolkit
// callbacks already run there; everything else reaches it through Post.
type Loop struct {
	waker Waker

	mu      sync.Mutex
	tasks   []func()
	stopped bool
}

func NewLoop(waker Waker) *Loop {
	return &Loop{waker: waker}
}

// Post queues f for the UI goroutine. Work posted after Stop is dropped.
func (l *Loop) Post(f func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.tasks = append(l.tasks, f)
	l.mu.Unlock()
	l.waker.Wake()
}

// Stop makes Run return after the current batch of tasks.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
	l.waker.Wake()
}

// Run processes posted work and toolkit events until Stop is called. It must
// be called from the thread that owns the toolkit.
func (l *Loop) Run() {
	for {
		for _, task := range l.take() {
			task()
		}
		if l.isStopped() {
			return
		}
		l.waker.Wait()
	}
}

func (l *Loop) take() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	tasks := l.tasks
	l.tasks = nil
	return tasks
}

func (l *Loop) isStopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}
