package desktop

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

static void set_input_passthrough(void *win, int enabled) {
	[(NSWindow *)win setIgnoresMouseEvents:(enabled ? YES : NO)];
}
*/
import "C"

import (
	"errors"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func setMousePassthrough(win *glfw.Window, enabled bool) error {
	ns := win.GetCocoaWindow()
	if ns == nil {
		return errors.New("no Cocoa window handle")
	}
	var flag C.int
	if enabled {
		flag = 1
	}
	C.set_input_passthrough(ns, flag)
	return nil
}
