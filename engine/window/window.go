package window

import (
	"errors"
	"runtime"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/cogentcore/webgpu/wgpu"
)

var errNotInitialized = errors.New("window is not initialized")

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// KeyAction is a key transition reported by the platform layer.
type KeyAction int

const (
	KeyPressed KeyAction = iota
	KeyRepeated
	KeyReleased
)

// Window is the desktop stand-in for the device screen. It owns the drawing surface and
// turns platform input into key, pointer and scroll callbacks on the thread running
// ProcessMessages. Escape closes the window.
//
// A held key reports a single down and a single up unless key repeat is enabled.
// Pointer positions are pixels with the origin at the top-left corner.
type Window interface {
	// SetUpdateCallback sets the function called once per message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer size changes.
	// Minimizing the window does not report a zero size.
	//
	// Parameters:
	//   - callback: function receiving the new size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for vertical scroll.
	//
	// Parameters:
	//   - callback: function receiving the scroll delta, positive away from the user
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key presses.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common/key_codes.go)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key releases.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button and the cursor position
	SetMouseDownCallback(callback func(button MouseButton, x, y float32))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button and the cursor position
	SetMouseUpCallback(callback func(button MouseButton, x, y float32))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position
	SetMouseMoveCallback(callback func(x, y float32))

	// SurfaceDescriptor returns the platform descriptor a WebGPU surface is created from,
	// or nil if the window is not initialized.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Size returns the framebuffer size in pixels. On high-DPI displays this differs from
	// the requested window size.
	//
	// Returns:
	//   - width, height: the size in pixels
	Size() (width, height int)

	// IsRunning reports whether the window is open.
	IsRunning() bool

	// Close destroys the window. Closing twice is a no-op.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// ProcessMessages polls platform events and calls the update callback until the window
	// closes.
	ProcessMessages()
}

// platformWindow is the native window behind an engineWindow.
type platformWindow interface {
	surfaceDescriptor() *wgpu.SurfaceDescriptor
	shouldClose() bool
	poll()
	destroy()
}

// callbacks holds the user handlers, any of which may be nil.
type callbacks struct {
	update    func()
	resize    func(width, height int)
	scroll    func(delta float32)
	keyDown   func(keyCode uint32)
	keyUp     func(keyCode uint32)
	mouseDown func(button MouseButton, x, y float32)
	mouseUp   func(button MouseButton, x, y float32)
	mouseMove func(x, y float32)
}

// engineWindow is the implementation of the Window interface. Platform events are fed
// through the handle* methods, which own the key and cursor bookkeeping.
type engineWindow struct {
	title     string
	width     int
	height    int
	minSize   [2]int
	maxSize   [2]int
	keyRepeat bool

	heldKeys map[uint32]bool
	cursorX  float32
	cursorY  float32
	closing  bool
	closed   bool

	on       callbacks
	platform platformWindow
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a Window. Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	platform, err := newGLFWWindow(w)
	if err != nil {
		panic("window: " + err.Error())
	}
	w.platform = platform
	return w
}

// newEngineWindow applies defaults and options without creating a platform window.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:    "oxy-ar",
		width:    1280,
		height:   720,
		minSize:  [2]int{320, 240},
		maxSize:  [2]int{3840, 2160},
		heldKeys: make(map[uint32]bool),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.on.update = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.on.resize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.on.scroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.on.keyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.on.keyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button MouseButton, x, y float32)) {
	w.on.mouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button MouseButton, x, y float32)) {
	w.on.mouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.on.mouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.platform == nil || w.closed {
		return nil
	}
	return w.platform.surfaceDescriptor()
}

func (w *engineWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *engineWindow) IsRunning() bool {
	return w.platform != nil && !w.closed && !w.closing && !w.platform.shouldClose()
}

func (w *engineWindow) Close() error {
	if w.platform == nil {
		return errNotInitialized
	}
	if w.closed {
		return nil
	}
	w.closed = true
	w.platform.destroy()
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		w.platform.poll()
		if !w.IsRunning() {
			break
		}
		if w.on.update != nil {
			w.on.update()
		}
		runtime.Gosched()
	}
}

// handleKey forwards a key transition, dropping repeats and releases of keys that were
// never reported down.
func (w *engineWindow) handleKey(key uint32, action KeyAction) {
	switch action {
	case KeyPressed, KeyRepeated:
		if key == common.KeyEsc {
			w.closing = true
			return
		}
		if w.heldKeys[key] && !w.keyRepeat {
			return
		}
		w.heldKeys[key] = true
		if w.on.keyDown != nil {
			w.on.keyDown(key)
		}
	case KeyReleased:
		if !w.heldKeys[key] {
			return
		}
		delete(w.heldKeys, key)
		if w.on.keyUp != nil {
			w.on.keyUp(key)
		}
	}
}

// handleButton forwards a button transition at the last known cursor position.
func (w *engineWindow) handleButton(button MouseButton, pressed bool) {
	if pressed {
		if w.on.mouseDown != nil {
			w.on.mouseDown(button, w.cursorX, w.cursorY)
		}
		return
	}
	if w.on.mouseUp != nil {
		w.on.mouseUp(button, w.cursorX, w.cursorY)
	}
}

func (w *engineWindow) handleCursor(x, y float32) {
	w.cursorX, w.cursorY = x, y
	if w.on.mouseMove != nil {
		w.on.mouseMove(x, y)
	}
}

func (w *engineWindow) handleScroll(delta float32) {
	if w.on.scroll != nil {
		w.on.scroll(delta)
	}
}

// handleResize records a framebuffer size. Zero sizes come from minimizing and are ignored.
func (w *engineWindow) handleResize(width, height int) {
	if width <= 0 || height <= 0 || (width == w.width && height == w.height) {
		return
	}
	w.width, w.height = width, height
	if w.on.resize != nil {
		w.on.resize(width, height)
	}
}
