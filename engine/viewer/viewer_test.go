package viewer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine/ar"
	"github.com/Carmen-Shannon/oxy-ar/engine/camera"
	"github.com/Carmen-Shannon/oxy-ar/engine/camera_feed"
	"github.com/Carmen-Shannon/oxy-ar/engine/capture"
	"github.com/Carmen-Shannon/oxy-ar/engine/compositor"
	"github.com/Carmen-Shannon/oxy-ar/engine/gallery"
	"github.com/Carmen-Shannon/oxy-ar/engine/input"
	"github.com/Carmen-Shannon/oxy-ar/engine/model"
	"github.com/Carmen-Shannon/oxy-ar/engine/panel"
	"github.com/Carmen-Shannon/oxy-ar/engine/placement"
	"github.com/Carmen-Shannon/oxy-ar/engine/registry"
	"github.com/Carmen-Shannon/oxy-ar/engine/rotation"
	"github.com/Carmen-Shannon/oxy-ar/engine/scene"
	"github.com/Carmen-Shannon/oxy-ar/engine/touch"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTouches replays whatever frame is set before each Update.
type scriptedTouches struct {
	frame input.Frame
}

func (s *scriptedTouches) TouchCount() int            { return s.frame.TouchCount() }
func (s *scriptedTouches) Touch(i int) common.Touch { return s.frame.Touch(i) }

type fixture struct {
	viewer  Viewer
	reg     registry.Registry
	touches *scriptedTouches
	root    string
}

func newFixture(t *testing.T, options ...ViewerBuilderOption) *fixture {
	t.Helper()

	host := scene.NewScene("ar")
	reg := registry.NewRegistry(host, registry.WithTemplates(
		model.NewModel(model.WithName("chair"), model.WithInitialScale(common.UniformScale(0.5))),
		model.NewModel(model.WithName("lamp")),
	))

	cam := camera.NewCamera(camera.WithScreenSize(64, 48))
	touches := &scriptedTouches{}
	panels := panel.NewSwitcher(panel.WithPanelNames("main", "models", "settings"))
	comp := compositor.NewCompositor(cam, compositor.WithModels(reg), compositor.WithPanels(panels))

	root := t.TempDir()
	pipeline := capture.NewPipeline(gallery.NewGallery(root),
		capture.WithRenderer(comp),
		capture.WithFramebuffer(comp),
		capture.WithTempDir(t.TempDir()),
	)

	opts := []ViewerBuilderOption{
		WithTouch(touch.NewController(touches, reg)),
		WithPlacement(placement.NewResolver(cam, ar.NewTracker(ar.WithFloorPlane(-1, mgl32.Vec2{4, 4})), reg)),
		WithPanels(panels),
		WithUIGroup(panel.NewGroup(panel.NewFlag("shutter", true), panel.NewFlag("menu", true))),
		WithCapture(pipeline),
	}
	v := NewViewer(reg, append(opts, options...)...)
	t.Cleanup(v.Close)

	comp.Render()
	return &fixture{viewer: v, reg: reg, touches: touches, root: root}
}

func albumFiles(t *testing.T, root, album string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, album))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestUpdate_NoModelIsInert(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.True(t, f.viewer.OnRotateButtonDown("Y"))
	f.touches.frame = input.Frame{{FingerID: 0, Position: mgl32.Vec2{10, 10}, Phase: common.TouchBegan}}

	assert.NotPanics(t, func() { f.viewer.Update(0.5) })
	assert.Equal(t, placement.NoModel, f.viewer.ResetPosition())
	assert.Equal(t, 500*time.Millisecond, f.viewer.Elapsed())
}

func TestRotateHold(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.True(t, f.viewer.SwitchModel(0))

	require.True(t, f.viewer.OnRotateButtonDown("Y"))
	f.viewer.Update(0.5)
	f.viewer.Update(0.5)
	f.viewer.OnRotateButtonUp()
	f.viewer.Update(0.5)

	obj := f.reg.GetCurrentModel()
	assert.InDelta(t, 100, common.AngleBetween(mgl32.QuatIdent(), obj.Rotation()), 1e-2)

	f.viewer.ResetRotation()
	assert.True(t, obj.Rotation().ApproxEqual(mgl32.QuatIdent()))
}

func TestRotateHold_UnknownAxisReplacesHeldAxis(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.True(t, f.viewer.SwitchModel(0))
	obj := f.reg.GetCurrentModel()

	require.True(t, f.viewer.OnRotateButtonDown("Y"))
	assert.False(t, f.viewer.OnRotateButtonDown("Z"))
	assert.Equal(t, rotation.State{Active: true, Axis: rotation.AxisNone}, f.viewer.Rotation().State())

	f.viewer.Update(0.5)
	assert.True(t, obj.Rotation().ApproxEqual(mgl32.QuatIdent()), "a held unknown axis rotates nothing")
}

func TestDragAndPinch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.True(t, f.viewer.SwitchModel(0))
	obj := f.reg.GetCurrentModel()
	start := obj.Position()

	f.touches.frame = input.Frame{{FingerID: 0, Position: mgl32.Vec2{0, 0}, Phase: common.TouchBegan}}
	f.viewer.Update(0.016)
	f.touches.frame = input.Frame{{FingerID: 0, Position: mgl32.Vec2{100, 50}, Phase: common.TouchMoved}}
	f.viewer.Update(0.016)

	approx := cmpopts.EquateApprox(0, 1e-5)
	if diff := cmp.Diff(start.Add(mgl32.Vec3{0.1, 0.05, 0}), obj.Position(), approx); diff != "" {
		t.Errorf("drag position mismatch (-want +got):\n%s", diff)
	}

	f.touches.frame = input.Frame{
		{FingerID: 0, Position: mgl32.Vec2{0, 0}, Phase: common.TouchBegan},
		{FingerID: 1, Position: mgl32.Vec2{100, 0}, Phase: common.TouchBegan},
	}
	f.viewer.Update(0.016)
	f.touches.frame = input.Frame{
		{FingerID: 0, Position: mgl32.Vec2{0, 0}, Phase: common.TouchStationary},
		{FingerID: 1, Position: mgl32.Vec2{200, 0}, Phase: common.TouchMoved},
	}
	f.viewer.Update(0.016)
	assert.InDelta(t, 1.0, obj.LocalScale().X(), 1e-5, "0.5 + 100*0.005")

	f.viewer.ResetScale()
	assert.Equal(t, common.UniformScale(0.5), obj.LocalScale())
}

func TestSwitchAndToggleModel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.True(t, f.viewer.SwitchModel(1))
	assert.Equal(t, "lamp", f.reg.GetCurrentModel().Name())

	f.viewer.ToggleModel()
	assert.False(t, f.reg.GetCurrentModel().Enabled())

	assert.False(t, f.viewer.SwitchModel(7))
	assert.Nil(t, f.reg.GetCurrentModel())
	assert.NotPanics(t, f.viewer.ToggleModel)
}

func TestResetPosition_Fallback(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.True(t, f.viewer.SwitchModel(0))
	assert.Equal(t, placement.Fallback, f.viewer.ResetPosition())
	assert.True(t, f.reg.GetCurrentModel().Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, -placement.DefaultFallbackDistance}, 1e-4))
}

func TestPanelsAndUI(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.True(t, f.viewer.SwitchPanel(2))
	assert.True(t, f.viewer.Panels().Visible(2))
	assert.False(t, f.viewer.Panels().Visible(0))
	assert.False(t, f.viewer.SwitchPanel(3))

	require.True(t, f.viewer.TogglePanel(0, true))
	assert.True(t, f.viewer.Panels().Visible(0))
	assert.True(t, f.viewer.Panels().Visible(2))

	f.viewer.ToggleUIPanelVisibility()
	assert.False(t, f.viewer.Panels().UI().Visible())

	f.viewer.HideUI()
	for _, el := range f.viewer.UI().Elements() {
		assert.False(t, el.Visible(), el.Name())
	}
	f.viewer.ShowUI()
	for _, el := range f.viewer.UI().Elements() {
		assert.True(t, el.Visible(), el.Name())
	}
}

func TestCapture(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, f.viewer.CaptureImage())
	f.viewer.Capture().Flush()

	f.viewer.CapturePhoto()
	f.viewer.CapturePhoto()
	f.viewer.EndOfFrame()
	f.viewer.Capture().Flush()

	assert.Len(t, albumFiles(t, f.root, capture.DefaultImageAlbum), 1)
	assert.Len(t, albumFiles(t, f.root, capture.DefaultPhotoAlbum), 1)
	assert.NotNil(t, f.viewer.Capture().LastCapture())

	f.viewer.Close()
	assert.ErrorIs(t, f.viewer.CaptureImage(), capture.ErrPipelineClosed)
}

func TestCameraBringUp(t *testing.T) {
	t.Parallel()

	loading := panel.NewFlag("loading", false)
	feed := camera_feed.NewFeed(
		camera_feed.NewStaticPermissions(),
		camera_feed.NewSyntheticProvider(camera_feed.WithWarmupPolls(2)),
		camera_feed.WithLoadingIndicator(loading),
	)
	f := newFixture(t, WithFeed(feed))

	f.viewer.Start()
	assert.True(t, loading.Visible())
	for i := 0; i < 30 && feed.State() != camera_feed.StateRunning; i++ {
		f.viewer.Update(0.1)
	}
	assert.Equal(t, camera_feed.StateRunning, feed.State())
	assert.False(t, loading.Visible())

	f.viewer.Close()
	assert.Equal(t, camera_feed.StateStopped, feed.State())
}

func TestViewerWithoutOptionalParts(t *testing.T) {
	t.Parallel()

	reg := registry.NewRegistry(scene.NewScene("bare"), registry.WithTemplates(model.NewModel()))
	v := NewViewer(reg)
	defer v.Close()

	assert.Equal(t, placement.NoModel, v.ResetPosition())
	assert.ErrorIs(t, v.CaptureImage(), capture.ErrNoRenderer)
	assert.NotPanics(t, v.CapturePhoto)
	assert.NotPanics(t, v.EndOfFrame)
	assert.NotPanics(t, v.Start)
	assert.Nil(t, v.Feed())

	require.True(t, v.SwitchModel(0))
	require.True(t, v.OnRotateButtonDown("-X"))
	v.Update(0.25)
	assert.InDelta(t, 25, common.AngleBetween(mgl32.QuatIdent(), reg.GetCurrentModel().Rotation()), 1e-2)

	assert.Panics(t, func() { NewViewer(nil) })
}

func TestWithClock(t *testing.T) {
	t.Parallel()

	now := 3 * time.Second
	f := newFixture(t, WithClock(func() time.Duration { return now }))
	f.viewer.Update(1)
	assert.Equal(t, 3*time.Second, f.viewer.Elapsed())
}
