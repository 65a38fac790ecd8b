package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform closes after a fixed number of polls.
type fakePlatform struct {
	polls     int
	closeAt   int
	destroyed int
}

func (f *fakePlatform) surfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (f *fakePlatform) shouldClose() bool                           { return f.polls >= f.closeAt }
func (f *fakePlatform) poll()                                       { f.polls++ }
func (f *fakePlatform) destroy()                                    { f.destroyed++ }

func TestHandleKey_SuppressesRepeats(t *testing.T) {
	t.Parallel()

	w := newEngineWindow()
	var downs, ups []uint32
	w.SetKeyDownCallback(func(k uint32) { downs = append(downs, k) })
	w.SetKeyUpCallback(func(k uint32) { ups = append(ups, k) })

	w.handleKey(common.KeyR, KeyPressed)
	w.handleKey(common.KeyR, KeyRepeated)
	w.handleKey(common.KeyR, KeyRepeated)
	w.handleKey(common.KeyR, KeyReleased)
	w.handleKey(common.KeyT, KeyReleased)

	assert.Equal(t, []uint32{common.KeyR}, downs)
	assert.Equal(t, []uint32{common.KeyR}, ups)
}

func TestHandleKey_RepeatEnabled(t *testing.T) {
	t.Parallel()

	w := newEngineWindow(WithKeyRepeat(true))
	downs := 0
	w.SetKeyDownCallback(func(uint32) { downs++ })

	w.handleKey(common.KeyLeft, KeyPressed)
	w.handleKey(common.KeyLeft, KeyRepeated)
	assert.Equal(t, 2, downs)
}

func TestHandleKey_EscapeCloses(t *testing.T) {
	t.Parallel()

	w := newEngineWindow()
	w.platform = &fakePlatform{closeAt: 100}
	require.True(t, w.IsRunning())

	w.handleKey(common.KeyEsc, KeyPressed)
	assert.False(t, w.IsRunning())
}

func TestHandleButton_UsesCursorPosition(t *testing.T) {
	t.Parallel()

	w := newEngineWindow()
	type press struct {
		button MouseButton
		x, y   float32
		down   bool
	}
	var got []press
	w.SetMouseDownCallback(func(b MouseButton, x, y float32) { got = append(got, press{b, x, y, true}) })
	w.SetMouseUpCallback(func(b MouseButton, x, y float32) { got = append(got, press{b, x, y, false}) })
	moves := 0
	w.SetMouseMoveCallback(func(float32, float32) { moves++ })

	w.handleCursor(10, 20)
	w.handleButton(MouseButtonLeft, true)
	w.handleCursor(30, 40)
	w.handleButton(MouseButtonLeft, false)

	assert.Equal(t, []press{
		{MouseButtonLeft, 10, 20, true},
		{MouseButtonLeft, 30, 40, false},
	}, got)
	assert.Equal(t, 2, moves)
}

func TestHandleResize(t *testing.T) {
	t.Parallel()

	w := newEngineWindow(WithSize(800, 600))
	calls := 0
	w.SetResizeCallback(func(int, int) { calls++ })

	w.handleResize(0, 0)
	w.handleResize(800, 600)
	w.handleResize(1024, 768)

	width, height := w.Size()
	assert.Equal(t, 1024, width)
	assert.Equal(t, 768, height)
	assert.Equal(t, 1, calls)
}

func TestProcessMessages(t *testing.T) {
	t.Parallel()

	w := newEngineWindow()
	platform := &fakePlatform{closeAt: 3}
	w.platform = platform
	updates := 0
	w.SetUpdateCallback(func() { updates++ })

	w.ProcessMessages()

	assert.Equal(t, 2, updates)
	assert.False(t, w.IsRunning())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.Equal(t, 1, platform.destroyed)
	assert.Nil(t, w.SurfaceDescriptor())
}

func TestClose_NotInitialized(t *testing.T) {
	t.Parallel()

	w := newEngineWindow()
	assert.ErrorIs(t, w.Close(), errNotInitialized)
	assert.False(t, w.IsRunning())
}

func TestWithSize_IgnoresNonPositive(t *testing.T) {
	t.Parallel()

	w := newEngineWindow(WithSize(0, -5))
	width, height := w.Size()
	assert.Equal(t, 1280, width)
	assert.Equal(t, 720, height)
	assert.Equal(t, "left", MouseButtonLeft.String())
}
