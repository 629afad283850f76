package desktop

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanWaker struct {
	ch    chan struct{}
	waits atomic.Int32
}

func newChanWaker() *chanWaker {
	return &chanWaker{ch: make(chan struct{}, 1)}
}

func (w *chanWaker) Wait() {
	w.waits.Add(1)
	<-w.ch
}

func (w *chanWaker) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

func runLoop(t *testing.T, l *Loop) <-chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		l.Run()
		close(done)
	}()
	return done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoop_RunsPostedWorkInOrder(t *testing.T) {
	l := NewLoop(newChanWaker())
	done := runLoop(t, l)

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.Post(l.Stop)

	waitDone(t, done)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoop_PostFromManyGoroutines(t *testing.T) {
	l := NewLoop(newChanWaker())
	done := runLoop(t, l)

	var count int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() { count++ })
		}()
	}
	wg.Wait()
	l.Post(l.Stop)

	waitDone(t, done)
	assert.Equal(t, 50, count)
}

func TestLoop_StopFromOutside(t *testing.T) {
	waker := newChanWaker()
	l := NewLoop(waker)
	done := runLoop(t, l)

	require.Eventually(t, func() bool { return waker.waits.Load() > 0 }, time.Second, 5*time.Millisecond)
	l.Stop()

	waitDone(t, done)
}

func TestLoop_DropsWorkAfterStop(t *testing.T) {
	l := NewLoop(newChanWaker())
	l.Stop()

	ran := false
	l.Post(func() { ran = true })
	l.Run()

	assert.False(t, ran)
}
