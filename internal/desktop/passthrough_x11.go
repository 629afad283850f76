//go:build (linux && !wayland) || (freebsd && !wayland) || (netbsd && !wayland) || (openbsd && !wayland)

package desktop

/*
#cgo LDFLAGS: -lX11 -lXext
#include <X11/Xlib.h>
#include <X11/extensions/shape.h>

// An empty input shape lets pointer events fall through to the windows
// below; resetting the shape to None restores the default input region.
static void set_input_passthrough(Display *dpy, Window win, int enabled) {
	if (enabled) {
		XShapeCombineRectangles(dpy, win, ShapeInput, 0, 0, NULL, 0, ShapeSet, YXBanded);
	} else {
		XShapeCombineMask(dpy, win, ShapeInput, 0, 0, None, ShapeSet);
	}
	XFlush(dpy);
}
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func setMousePassthrough(win *glfw.Window, enabled bool) error {
	dpy := (*C.Display)(unsafe.Pointer(glfw.GetX11Display()))
	if dpy == nil {
		return errors.New("no X11 display")
	}
	C.set_input_passthrough(dpy, C.Window(win.GetX11Window()), cBool(enabled))
	return nil
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
