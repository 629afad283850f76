package desktop

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Godley/take-a-break/internal/logger"
	"github.com/Godley/take-a-break/internal/overlay"
)

// Options configure the desktop overlay.
type Options struct {
	Delay               time.Duration
	ElevatedOpacity     float64
	ContentURL          string
	KeepRunningPlatform string
	// OnDelay is called on the UI loop when the delayed transition runs.
	OnDelay func()
}

// ShouldQuitWhenAllClosed reports whether closing the last window ends the
// application. The keep-running platform stays alive in the tray until Quit.
func ShouldQuitWhenAllClosed(goos, keepRunningPlatform string) bool {
	return goos != keepRunningPlatform
}

// Run shows the overlay and the tray and blocks until the user quits, the
// last window closes, or ctx is cancelled. It must be called from the main
// goroutine with the OS thread locked.
func Run(ctx context.Context, opts Options) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	waker := newGLFWWaker()
	defer waker.Shutdown()

	loop := NewLoop(waker)

	var ctrl *overlay.Controller
	ctrl = overlay.NewController(overlay.Config{
		Display: glfwDisplay{},
		NewWindow: NewWindowFactory(WindowEvents{
			Post: loop.Post,
			OnMinimize: func() {
				if err := ctrl.Minimized(); err != nil {
					logger.Debug("minimize ignored", "error", err)
				}
			},
			OnClose: func() {
				ctrl.Closed()
				if ShouldQuitWhenAllClosed(runtime.GOOS, opts.KeepRunningPlatform) {
					logger.Info("all windows closed, quitting")
					loop.Stop()
				}
			},
		}),
		Post:            loop.Post,
		Delay:           opts.Delay,
		ElevatedOpacity: opts.ElevatedOpacity,
		ContentURL:      opts.ContentURL,
		OnDelay:         opts.OnDelay,
	})

	icon, err := TrayIcon(runtime.GOOS)
	if err != nil {
		return fmt.Errorf("failed to render tray icon: %w", err)
	}
	tray := NewTray(TrayActions{
		SetOpacity: func(level float64) {
			if err := ctrl.SetOpacity(level); err != nil {
				logger.Warn("dimming command ignored", "opacity", level, "error", err)
			}
		},
		Quit: loop.Stop,
	}, loop.Post, icon)
	tray.Start()
	defer tray.Stop()

	if err := ctrl.Create(); err != nil {
		return err
	}
	defer ctrl.Shutdown()

	stop := context.AfterFunc(ctx, loop.Stop)
	defer stop()

	loop.Run()
	logger.Debug("ui loop finished")
	return nil
}
