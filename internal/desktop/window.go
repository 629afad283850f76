package desktop

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"sync"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Godley/take-a-break/internal/content"
	"github.com/Godley/take-a-break/internal/logger"
	"github.com/Godley/take-a-break/internal/overlay"
)

const (
	windowTitle = "Take a Break"
	// page text is rendered at 1/contentScale of the framebuffer and
	// stretched, which keeps the bitmap font readable
	contentScale = 2
)

// toolkitWaker parks the UI thread in the toolkit's event wait. Wake may be
// called from any goroutine; it is serialised with shutdown so no wake-up
// reaches a terminated toolkit.
type toolkitWaker struct {
	mu   sync.Mutex
	live bool

	wait      func()
	post      func()
	terminate func()
}

func newGLFWWaker() *toolkitWaker {
	return &toolkitWaker{
		live:      true,
		wait:      glfw.WaitEvents,
		post:      glfw.PostEmptyEvent,
		terminate: glfw.Terminate,
	}
}

func (w *toolkitWaker) Wait() {
	w.wait()
}

func (w *toolkitWaker) Wake() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.live {
		w.post()
	}
}

// Shutdown terminates the toolkit. Later Wake calls are no-ops.
func (w *toolkitWaker) Shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.live {
		return
	}
	w.live = false
	w.terminate()
}

// glfwDisplay reads the primary monitor's work area, which excludes panels and
// docks.
type glfwDisplay struct{}

func (glfwDisplay) PrimaryWorkArea() (int, int, error) {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return 0, 0, errors.New("no primary monitor")
	}
	_, _, width, height := monitor.GetWorkarea()
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid work area %dx%d", width, height)
	}
	return width, height, nil
}

// WindowEvents routes window manager notifications back to the owner of the
// window. Both run on the UI loop.
type WindowEvents struct {
	Post       func(f func())
	OnMinimize func()
	OnClose    func()
}

// Window is a GLFW-backed overlay surface painted solid black; its opacity is
// the dimming level. Loaded page content is drawn on top as a texture.
type Window struct {
	win    *glfw.Window
	events WindowEvents

	setPassthrough func(enabled bool) error
	loadContent    func(ctx context.Context, url string, width, height int) (*image.RGBA, error)
	cancelLoad     context.CancelFunc

	inputTransparent bool
	url              string
	texture          uint32
}

var glReady bool

// NewWindowFactory returns the surface factory used by the overlay controller.
func NewWindowFactory(events WindowEvents) overlay.SurfaceFactory {
	return func(opts overlay.SurfaceOptions) (overlay.Surface, error) {
		return newWindow(opts, events)
	}
}

func newWindow(opts overlay.SurfaceOptions, events WindowEvents) (*Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Decorated, glfwBool(!opts.Frameless))
	glfw.WindowHint(glfw.Floating, glfwBool(opts.AlwaysOnTop))
	glfw.WindowHint(glfw.Resizable, glfwBool(opts.Resizable))
	glfw.WindowHint(glfw.Visible, glfwBool(opts.Visible))
	glfw.WindowHint(glfw.FocusOnShow, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, windowTitle, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	win.MakeContextCurrent()
	if !glReady {
		if err := gl.Init(); err != nil {
			win.Destroy()
			return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
		}
		glReady = true
	}

	w := &Window{
		win:    win,
		events: events,
		setPassthrough: func(enabled bool) error {
			return setMousePassthrough(win, enabled)
		},
		loadContent: pageLoader(content.NewHTTPClient()),
	}
	w.SetOpacity(opts.Opacity)
	w.SetInputTransparent(opts.InputTransparent)

	win.SetRefreshCallback(func(*glfw.Window) { w.paint() })
	win.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		if iconified && events.OnMinimize != nil {
			events.OnMinimize()
		}
	})
	// GLFW forbids destroying a window inside its own callback, so the
	// teardown is posted.
	win.SetCloseCallback(func(*glfw.Window) {
		events.Post(func() {
			if events.OnClose != nil {
				events.OnClose()
			}
			w.Destroy()
		})
	})

	w.paint()
	return w, nil
}

func (w *Window) SetOpacity(opacity float64) {
	if w.win == nil {
		return
	}
	w.win.SetOpacity(float32(opacity))
}

// SetInputTransparent lets pointer input fall through to the windows below,
// or takes it back.
func (w *Window) SetInputTransparent(transparent bool) {
	if w.setPassthrough == nil {
		return
	}
	if err := w.setPassthrough(transparent); err != nil {
		logger.Warn("failed to change input transparency", "enabled", transparent, "error", err)
		return
	}
	w.inputTransparent = transparent
	logger.Debug("input transparency", "enabled", transparent)
}

func (w *Window) SetAlwaysOnTop(onTop bool) {
	if w.win != nil {
		w.win.SetAttrib(glfw.Floating, glfwBool(onTop))
	}
}

func (w *Window) SetResizable(resizable bool) {
	if w.win != nil {
		w.win.SetAttrib(glfw.Resizable, glfwBool(resizable))
	}
}

func (w *Window) Maximize() {
	if w.win != nil {
		w.win.Maximize()
	}
}

func (w *Window) Show() {
	if w.win == nil {
		return
	}
	w.win.Show()
	w.paint()
}

// Navigate starts loading the page at url. The page text replaces the
// current content once it has been fetched; a failed load keeps the current
// content and is logged.
func (w *Window) Navigate(url string) error {
	if w.win == nil {
		return errors.New("window destroyed")
	}
	if err := content.ValidateURL(url); err != nil {
		return err
	}

	width, height := w.win.GetFramebufferSize()
	w.beginLoad(url, width/contentScale, height/contentScale)

	w.win.SetTitle(windowTitle + " - " + url)
	logger.Info("loading overlay content", "url", url)
	return nil
}

// beginLoad fetches url off the UI loop and posts the rendered page back.
// A newer load supersedes a pending one.
func (w *Window) beginLoad(url string, width, height int) {
	if w.cancelLoad != nil {
		w.cancelLoad()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancelLoad = cancel
	w.url = url

	go func() {
		img, err := w.loadContent(ctx, url, width, height)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			logger.Warn("failed to load overlay content", "url", url, "error", err)
			return
		}
		w.events.Post(func() { w.showContent(url, img) })
	}()
}

func (w *Window) Destroy() {
	if w.cancelLoad != nil {
		w.cancelLoad()
		w.cancelLoad = nil
	}
	if w.win == nil {
		return
	}
	if w.texture != 0 {
		w.win.MakeContextCurrent()
		gl.DeleteTextures(1, &w.texture)
		w.texture = 0
	}
	w.win.Destroy()
	w.win = nil
}

// showContent uploads img as the surface texture. Results for a URL that
// has since been replaced are dropped.
func (w *Window) showContent(url string, img *image.RGBA) {
	if w.win == nil || url != w.url {
		return
	}

	w.win.MakeContextCurrent()
	if w.texture == 0 {
		gl.GenTextures(1, &w.texture)
	}
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	bounds := img.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(bounds.Dx()), int32(bounds.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	logger.Info("overlay content loaded", "url", url)
	w.paint()
}

func (w *Window) paint() {
	if w.win == nil {
		return
	}
	w.win.MakeContextCurrent()

	width, height := w.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if w.texture != 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.Enable(gl.TEXTURE_2D)
		gl.BindTexture(gl.TEXTURE_2D, w.texture)
		gl.Begin(gl.QUADS)
		gl.TexCoord2f(0, 0)
		gl.Vertex2f(-1, 1)
		gl.TexCoord2f(1, 0)
		gl.Vertex2f(1, 1)
		gl.TexCoord2f(1, 1)
		gl.Vertex2f(1, -1)
		gl.TexCoord2f(0, 1)
		gl.Vertex2f(-1, -1)
		gl.End()
		gl.Disable(gl.TEXTURE_2D)
		gl.Disable(gl.BLEND)
	}

	w.win.SwapBuffers()
}

func pageLoader(client *http.Client) func(ctx context.Context, url string, width, height int) (*image.RGBA, error) {
	return func(ctx context.Context, url string, width, height int) (*image.RGBA, error) {
		return content.Load(ctx, client, url, width, height)
	}
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
