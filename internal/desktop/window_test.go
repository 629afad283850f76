package desktop

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolkitWaker_NoWakeAfterShutdown(t *testing.T) {
	var terminated atomic.Bool
	var lateWakes, wakes atomic.Int32
	waker := &toolkitWaker{
		live: true,
		wait: func() {},
		post: func() {
			wakes.Add(1)
			if terminated.Load() {
				lateWakes.Add(1)
			}
		},
		terminate: func() {
			// widen the window between the live check and termination
			time.Sleep(5 * time.Millisecond)
			terminated.Store(true)
		},
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				waker.Wake()
			}
		}()
	}
	waker.Shutdown()
	wg.Wait()

	assert.True(t, terminated.Load())
	assert.Zero(t, lateWakes.Load(), "wake-up posted to a terminated toolkit")

	before := wakes.Load()
	waker.Wake()
	waker.Shutdown()
	assert.Equal(t, before, wakes.Load())
}

func TestWindow_SetInputTransparent(t *testing.T) {
	var calls []bool
	w := &Window{setPassthrough: func(enabled bool) error {
		calls = append(calls, enabled)
		return nil
	}}

	w.SetInputTransparent(true)
	assert.True(t, w.inputTransparent)

	w.SetInputTransparent(false)
	assert.False(t, w.inputTransparent)
	assert.Equal(t, []bool{true, false}, calls)
}

func TestWindow_SetInputTransparentFailure(t *testing.T) {
	w := &Window{setPassthrough: func(bool) error { return errors.New("no display") }}

	w.SetInputTransparent(true)

	assert.False(t, w.inputTransparent, "state must follow what the window system applied")
}

func TestWindow_LoadPostsRenderedPage(t *testing.T) {
	posted := make(chan func(), 1)
	var gotURL string
	var gotW, gotH int
	w := &Window{
		events:      WindowEvents{Post: func(f func()) { posted <- f }},
		loadContent: func(_ context.Context, url string, width, height int) (*image.RGBA, error) {
			gotURL, gotW, gotH = url, width, height
			return image.NewRGBA(image.Rect(0, 0, width, height)), nil
		},
	}

	w.beginLoad("http://godley.dev", 640, 360)

	select {
	case f := <-posted:
		// the window handle is gone, so showing the page is a no-op
		f()
	case <-time.After(2 * time.Second):
		t.Fatal("rendered page was not posted to the UI loop")
	}
	assert.Equal(t, "http://godley.dev", gotURL)
	assert.Equal(t, 640, gotW)
	assert.Equal(t, 360, gotH)
	assert.Equal(t, "http://godley.dev", w.url)
}

func TestWindow_LoadFailureIsNotPosted(t *testing.T) {
	var posts atomic.Int32
	done := make(chan struct{})
	w := &Window{
		events:      WindowEvents{Post: func(func()) { posts.Add(1) }},
		loadContent: func(context.Context, string, int, int) (*image.RGBA, error) {
			defer close(done)
			return nil, errors.New("connection refused")
		},
	}

	w.beginLoad("http://godley.dev", 10, 10)

	<-done
	// give the loader goroutine time to reach the post
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, posts.Load())
}

func TestWindow_NewerLoadSupersedesPending(t *testing.T) {
	posted := make(chan func(), 2)
	firstCancelled := make(chan struct{})
	w := &Window{events: WindowEvents{Post: func(f func()) { posted <- f }}}
	w.loadContent = func(ctx context.Context, url string, width, height int) (*image.RGBA, error) {
		if url == "http://first.example" {
			<-ctx.Done()
			close(firstCancelled)
			return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
		}
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}

	w.beginLoad("http://first.example", 1, 1)
	w.beginLoad("http://second.example", 1, 1)

	select {
	case <-firstCancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("pending load was not cancelled")
	}
	require.Eventually(t, func() bool { return len(posted) == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, posted, 1)
	assert.Equal(t, "http://second.example", w.url)

	w.Destroy()
}
