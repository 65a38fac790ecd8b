package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow is the GLFW platformWindow.
type glfwWindow struct {
	win *glfw.Window
}

var _ platformWindow = &glfwWindow{}

var glfwButtons = map[glfw.MouseButton]MouseButton{
	glfw.MouseButtonLeft:   MouseButtonLeft,
	glfw.MouseButtonRight:  MouseButtonRight,
	glfw.MouseButtonMiddle: MouseButtonMiddle,
}

var glfwKeyActions = map[glfw.Action]KeyAction{
	glfw.Press:   KeyPressed,
	glfw.Repeat:  KeyRepeated,
	glfw.Release: KeyReleased,
}

// newGLFWWindow opens a GLFW window without a client API, since WebGPU draws to it, and
// routes its events into w. The calling goroutine is locked to its OS thread, which GLFW
// requires for every later call.
//
// Parameters:
//   - w: the window receiving events and its final framebuffer size
//
// Returns:
//   - platformWindow: the native window
//   - error: error if GLFW or the window fails to initialize
func newGLFWWindow(w *engineWindow) (platformWindow, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minSize[0], w.minSize[1], w.maxSize[0], w.maxSize[1])

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if a, ok := glfwKeyActions[action]; ok && key != glfw.KeyUnknown {
			w.handleKey(uint32(key), a)
		}
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if b, ok := glfwButtons[button]; ok {
			w.handleButton(b, action == glfw.Press)
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.handleCursor(float32(x), float32(y))
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.handleScroll(float32(yoff))
	})
	// Framebuffer size rather than window size, so the surface matches on high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.handleResize(width, height)
	})

	w.width, w.height = win.GetFramebufferSize()
	x, y := win.GetCursorPos()
	w.cursorX, w.cursorY = float32(x), float32(y)

	return &glfwWindow{win: win}, nil
}

func (g *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) shouldClose() bool {
	return g.win.ShouldClose()
}

func (g *glfwWindow) poll() {
	glfw.PollEvents()
}

func (g *glfwWindow) destroy() {
	g.win.Destroy()
	glfw.Terminate()
}
