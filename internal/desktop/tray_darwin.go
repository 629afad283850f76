package desktop

import "github.com/getlantern/systray"

// On macOS the status item lives on the Cocoa main loop that GLFW already
// pumps, so the tray only registers its callbacks. Must run on the main
// thread.
func startTray(onReady, onExit func()) {
	systray.Register(onReady, onExit)
}

// systray.Quit terminates NSApp, which would skip GLFW teardown; the status
// item goes away with the process.
func stopTray() {}
