// Package overlay implements the dimming overlay lifecycle: a single
// full-screen, click-through, always-on-top surface whose opacity follows tray
// commands, plus the one-shot delayed transition that elevates the dimming and
// starts the calendar authorization.
//
// All Controller methods must be called from the UI loop goroutine.
package overlay

import (
	"errors"
	"fmt"
	"time"

	"github.com/Godley/take-a-break/internal/logger"
)

// State is the lifecycle state of the overlay surface.
type State int

const (
	StateNone State = iota
	StateCreated
	StateShown
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateCreated:
		return "created"
	case StateShown:
		return "shown"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	// ErrNoSurface is returned by operations issued while no surface exists.
	ErrNoSurface = errors.New("overlay surface is not available")
	// ErrAlreadyCreated is returned when Create is called a second time.
	ErrAlreadyCreated = errors.New("overlay surface was already created")
)

// Config holds the collaborators and the delayed-transition parameters.
type Config struct {
	Display   Display
	NewWindow SurfaceFactory
	Scheduler Scheduler
	// Post runs f on the UI loop. Timer callbacks go through it.
	Post func(f func())

	Delay           time.Duration
	ElevatedOpacity float64
	ContentURL      string
	// OnDelay starts the authorization flow. It must not block.
	OnDelay func()
}

// Controller owns the overlay surface handle. The handle is nil before Create
// and after Close; every operation goes through withSurface.
type Controller struct {
	cfg Config

	surface          Surface
	state            State
	opacity          float64
	inputTransparent bool

	timer Timer
	fired bool
}

func NewController(cfg Config) *Controller {
	if cfg.Scheduler == nil {
		cfg.Scheduler = ClockScheduler{}
	}
	if cfg.Post == nil {
		cfg.Post = func(f func()) { f() }
	}
	return &Controller{cfg: cfg}
}

// Create instantiates the surface over the primary work area, shows it and
// arms the delayed transition.
func (c *Controller) Create() error {
	if c.state != StateNone {
		return ErrAlreadyCreated
	}

	width, height, err := c.cfg.Display.PrimaryWorkArea()
	if err != nil {
		return fmt.Errorf("failed to read primary display work area: %w", err)
	}

	surface, err := c.cfg.NewWindow(SurfaceOptions{
		Width:            width,
		Height:           height,
		Opacity:          NoDimming,
		Frameless:        true,
		AlwaysOnTop:      true,
		Resizable:        false,
		InputTransparent: true,
		Visible:          false,
	})
	if err != nil {
		return fmt.Errorf("failed to create overlay surface: %w", err)
	}

	c.surface = surface
	c.state = StateCreated
	c.opacity = NoDimming
	c.inputTransparent = true

	surface.SetAlwaysOnTop(true)
	surface.SetInputTransparent(true)
	surface.SetResizable(false)
	logger.Debug("overlay created", "width", width, "height", height)

	surface.Maximize()
	surface.Show()
	c.state = StateShown
	logger.Info("overlay shown")

	c.timer = c.cfg.Scheduler.AfterFunc(c.cfg.Delay, func() {
		c.cfg.Post(c.afterDelay)
	})
	logger.Debug("delayed transition armed", "delay", c.cfg.Delay)

	return nil
}

// SetOpacity applies a dimming level. Repeating the current level leaves the
// surface untouched.
func (c *Controller) SetOpacity(level float64) error {
	if level < 0 || level > 1 {
		return fmt.Errorf("opacity %v out of range [0, 1]", level)
	}
	return c.withSurface(func(s Surface) {
		if level == c.opacity {
			return
		}
		s.SetOpacity(level)
		c.opacity = level
		logger.Debug("opacity set", "opacity", level)
	})
}

// Minimized handles the window manager's minimize notification by making the
// surface clickable again.
func (c *Controller) Minimized() error {
	return c.withSurface(func(s Surface) {
		if !c.inputTransparent {
			return
		}
		s.SetInputTransparent(false)
		c.inputTransparent = false
		logger.Info("Clickthrough disabled")
	})
}

// Closed handles the window close notification: the handle is released and
// the pending transition is cancelled.
func (c *Controller) Closed() {
	if c.surface == nil {
		return
	}
	c.surface = nil
	c.state = StateClosed
	c.stopTimer()
	logger.Info("overlay closed")
}

// Shutdown cancels the pending transition and destroys the surface if it is
// still open.
func (c *Controller) Shutdown() {
	c.stopTimer()
	if c.surface != nil {
		c.surface.Destroy()
		c.surface = nil
		c.state = StateClosed
	}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Opacity() float64 {
	return c.opacity
}

func (c *Controller) InputTransparent() bool {
	return c.inputTransparent
}

// TransitionFired reports whether the delayed transition has run.
func (c *Controller) TransitionFired() bool {
	return c.fired
}

func (c *Controller) afterDelay() {
	if c.fired {
		return
	}
	err := c.withSurface(func(s Surface) {
		c.fired = true
		if err := s.Navigate(c.cfg.ContentURL); err != nil {
			logger.Warn("failed to load overlay content", "url", c.cfg.ContentURL, "error", err)
		}
		if c.opacity != c.cfg.ElevatedOpacity {
			s.SetOpacity(c.cfg.ElevatedOpacity)
			c.opacity = c.cfg.ElevatedOpacity
		}
		logger.Info("delayed transition ran", "opacity", c.opacity)
	})
	if err != nil {
		logger.Debug("delayed transition skipped", "error", err)
		return
	}

	if c.cfg.OnDelay != nil {
		c.cfg.OnDelay()
	}
}

func (c *Controller) withSurface(f func(s Surface)) error {
	if c.surface == nil {
		return ErrNoSurface
	}
	f(c.surface)
	return nil
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
