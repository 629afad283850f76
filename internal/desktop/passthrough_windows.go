package desktop

/*
#include <windows.h>

// GLFW already marks the window layered for its opacity, so only
// WS_EX_TRANSPARENT is removed when input comes back.
static void set_input_passthrough(HWND hwnd, int enabled) {
	LONG_PTR style = GetWindowLongPtrW(hwnd, GWL_EXSTYLE);
	if (enabled) {
		style |= WS_EX_LAYERED | WS_EX_TRANSPARENT;
	} else {
		style &= ~WS_EX_TRANSPARENT;
	}
	SetWindowLongPtrW(hwnd, GWL_EXSTYLE, style);
	SetWindowPos(hwnd, NULL, 0, 0, 0, 0, SWP_NOMOVE | SWP_NOSIZE | SWP_NOZORDER | SWP_NOACTIVATE | SWP_FRAMECHANGED);
}
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func setMousePassthrough(win *glfw.Window, enabled bool) error {
	hwnd := C.HWND(unsafe.Pointer(win.GetWin32Window()))
	if hwnd == nil {
		return errors.New("no Win32 window handle")
	}
	var flag C.int
	if enabled {
		flag = 1
	}
	C.set_input_passthrough(hwnd, flag)
	return nil
}
