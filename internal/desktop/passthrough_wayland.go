//go:build (linux && wayland) || (freebsd && wayland) || (netbsd && wayland) || (openbsd && wayland)

package desktop

import (
	"errors"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFW 3.3 has no Wayland input region API; build without the wayland tag to
// run through XWayland.
func setMousePassthrough(*glfw.Window, bool) error {
	return errors.New("mouse passthrough is not available on native Wayland")
}
