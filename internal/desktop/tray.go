package desktop

import (
	"github.com/getlantern/systray"

	"github.com/Godley/take-a-break/internal/logger"
	"github.com/Godley/take-a-break/internal/overlay"
)

// TrayActions are invoked on the UI loop when a menu item is clicked.
type TrayActions struct {
	SetOpacity func(level float64)
	Quit       func()
}

// Tray is the status area menu: one item per dimming level, a separator and
// Quit.
type Tray struct {
	actions  TrayActions
	post     func(f func())
	commands []overlay.Command
	icon     []byte
	done     chan struct{}
}

func NewTray(actions TrayActions, post func(f func()), icon []byte) *Tray {
	return &Tray{
		actions:  actions,
		post:     post,
		commands: overlay.Commands(),
		icon:     icon,
		done:     make(chan struct{}),
	}
}

// Start registers the tray. See startTray for the per-platform threading.
func (t *Tray) Start() {
	startTray(t.onReady, t.onExit)
}

// Stop removes the tray and releases the menu watchers.
func (t *Tray) Stop() {
	select {
	case <-t.done:
		return
	default:
	}
	close(t.done)
	stopTray()
}

func (t *Tray) onReady() {
	systray.SetIcon(t.icon)
	systray.SetTooltip(windowTitle)

	for _, cmd := range t.commands {
		item := systray.AddMenuItem(cmd.Label, cmd.Tooltip)
		level := cmd.Opacity
		t.watch(item, func() {
			logger.Debug("tray command", "opacity", level)
			t.actions.SetOpacity(level)
		})
	}

	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Quit "+windowTitle)
	t.watch(quit, func() {
		logger.Info("quit requested from tray")
		t.actions.Quit()
	})
}

func (t *Tray) onExit() {
	logger.Debug("tray exited")
}

func (t *Tray) watch(item *systray.MenuItem, action func()) {
	go func() {
		for {
			select {
			case <-item.ClickedCh:
				t.post(action)
			case <-t.done:
				return
			}
		}
	}()
}
