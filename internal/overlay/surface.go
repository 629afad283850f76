package overlay

// Surface is the toolkit window the controller drives. Implementations apply
// every mutation immediately and never block.
type Surface interface {
	SetOpacity(opacity float64)
	SetInputTransparent(transparent bool)
	SetAlwaysOnTop(onTop bool)
	SetResizable(resizable bool)
	Maximize()
	Show()
	// Navigate points the surface content at url.
	Navigate(url string) error
	Destroy()
}

// SurfaceOptions are the creation-time attributes of the overlay window.
type SurfaceOptions struct {
	Width            int
	Height           int
	Opacity          float64
	Frameless        bool
	AlwaysOnTop      bool
	Resizable        bool
	InputTransparent bool
	Visible          bool
}

// Display reports the usable area of the primary monitor.
type Display interface {
	PrimaryWorkArea() (width, height int, err error)
}

// SurfaceFactory creates the overlay window.
type SurfaceFactory func(opts SurfaceOptions) (Surface, error)
