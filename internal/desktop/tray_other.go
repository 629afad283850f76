//go:build !darwin

package desktop

import (
	"runtime"

	"github.com/getlantern/systray"
)

// Outside macOS the tray runs its own native loop on a dedicated thread.
func startTray(onReady, onExit func()) {
	go func() {
		runtime.LockOSThread()
		systray.Run(onReady, onExit)
	}()
}

func stopTray() {
	systray.Quit()
}
