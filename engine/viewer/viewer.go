package viewer

import (
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-ar/engine"
	"github.com/Carmen-Shannon/oxy-ar/engine/camera_feed"
	"github.com/Carmen-Shannon/oxy-ar/engine/capture"
	"github.com/Carmen-Shannon/oxy-ar/engine/panel"
	"github.com/Carmen-Shannon/oxy-ar/engine/placement"
	"github.com/Carmen-Shannon/oxy-ar/engine/registry"
	"github.com/Carmen-Shannon/oxy-ar/engine/rotation"
	"github.com/Carmen-Shannon/oxy-ar/engine/touch"
)

// Viewer is the AR viewer facade. It owns the per-frame interaction update and exposes
// the button entry points the UI binds to. Every method must be called from the update
// thread; use engine.Dispatch to get there from input callbacks.
type Viewer interface {
	engine.Updater

	// Start begins camera bring-up at the viewer clock.
	Start()

	// EndOfFrame runs work that needs the presented frame. Register with engine.AtEndOfFrame
	// or call after presenting.
	EndOfFrame()

	// Elapsed returns the viewer clock.
	//
	// Returns:
	//   - time.Duration: time accumulated by Update
	Elapsed() time.Duration

	// SwitchModel replaces the active model with template index. Out-of-range indices
	// clear the slot.
	//
	// Parameters:
	//   - index: the template index
	//
	// Returns:
	//   - bool: true if a model was spawned
	SwitchModel(index int) bool

	// ToggleModel flips the active model's visibility.
	ToggleModel()

	// ResetPosition places the active model where the camera is looking.
	//
	// Returns:
	//   - placement.Result: the branch taken
	ResetPosition() placement.Result

	// ResetRotation sets the active model's orientation to identity.
	ResetRotation()

	// ResetScale restores the active model's spawn scale.
	ResetScale()

	// OnRotateButtonDown starts rotating about the named axis ("X", "-X", "Y", "-Y").
	//
	// Parameters:
	//   - axisName: the axis name
	//
	// Returns:
	//   - bool: false if the name is not an axis; the press still replaces the held axis and rotates nothing
	OnRotateButtonDown(axisName string) bool

	// OnRotateButtonUp stops rotating.
	OnRotateButtonUp()

	// SwitchPanel shows panel index and hides the others.
	SwitchPanel(index int) bool

	// TogglePanel sets one panel's visibility.
	TogglePanel(index int, show bool) bool

	// ToggleUIPanelVisibility flips the overlay umbrella flag.
	ToggleUIPanelVisibility()

	// HideUI hides every UI element.
	HideUI()

	// ShowUI shows every UI element.
	ShowUI()

	// CaptureImage renders the view offscreen and saves it.
	//
	// Returns:
	//   - error: error if no capture pipeline is configured or the capture could not start
	CaptureImage() error

	// CapturePhoto saves the presented frame at end of frame.
	CapturePhoto()

	// Registry returns the model registry.
	//
	// Returns:
	//   - registry.Registry: the registry
	Registry() registry.Registry

	// Rotation returns the rotation controller.
	//
	// Returns:
	//   - rotation.Controller: the controller
	Rotation() rotation.Controller

	// Panels returns the panel switcher.
	//
	// Returns:
	//   - panel.Switcher: the switcher
	Panels() panel.Switcher

	// UI returns the group of overlay elements hidden by HideUI.
	//
	// Returns:
	//   - panel.Group: the element group
	UI() panel.Group

	// Feed returns the camera feed, or nil when none is configured.
	//
	// Returns:
	//   - camera_feed.Feed: the feed
	Feed() camera_feed.Feed

	// Capture returns the capture pipeline, or nil when none is configured.
	//
	// Returns:
	//   - capture.Pipeline: the pipeline
	Capture() capture.Pipeline

	// Close stops the camera, flushes and stops capture, and clears the active model.
	Close()
}

type viewer struct {
	registry  registry.Registry
	rotation  rotation.Controller
	touch     touch.Controller
	placement placement.Resolver
	panels    panel.Switcher
	ui        panel.Group
	capture   capture.Pipeline
	feed      camera_feed.Feed

	clock   func() time.Duration
	elapsed time.Duration
	closed  bool
}

var _ Viewer = &viewer{}

// NewViewer creates a Viewer around reg. Rotation, panels and the UI group are created
// with defaults when not supplied; touch, placement, capture and camera feed are optional.
//
// Panics if reg is nil.
//
// Parameters:
//   - reg: the model registry
//   - options: functional options
//
// Returns:
//   - Viewer: the viewer
func NewViewer(reg registry.Registry, options ...ViewerBuilderOption) Viewer {
	if reg == nil {
		panic("viewer: NewViewer requires a non-nil Registry")
	}
	v := &viewer{registry: reg}
	for _, option := range options {
		option(v)
	}
	if v.rotation == nil {
		v.rotation = rotation.NewController(reg)
	}
	if v.panels == nil {
		v.panels = panel.NewSwitcher()
	}
	if v.ui == nil {
		v.ui = panel.NewGroup()
	}
	return v
}

func (v *viewer) now() time.Duration {
	if v.clock != nil {
		return v.clock()
	}
	return v.elapsed
}

func (v *viewer) Start() {
	if v.feed == nil {
		return
	}
	v.feed.Start(v.now())
}

func (v *viewer) Update(dt float32) {
	v.elapsed += time.Duration(float64(dt) * float64(time.Second))

	if v.feed != nil {
		v.feed.Tick(v.now())
	}

	if v.registry.GetCurrentModel() == nil {
		return
	}
	v.rotation.Update(dt)
	if v.touch != nil {
		v.touch.Update()
	}
}

func (v *viewer) EndOfFrame() {
	if v.capture != nil {
		v.capture.EndOfFrame()
	}
}

func (v *viewer) Elapsed() time.Duration {
	return v.now()
}

func (v *viewer) SwitchModel(index int) bool {
	if v.touch != nil {
		v.touch.Reset()
	}
	return v.registry.SwitchModel(index)
}

func (v *viewer) ToggleModel() {
	v.registry.ToggleModel()
}

func (v *viewer) ResetPosition() placement.Result {
	if v.placement == nil {
		log.Printf("[Viewer] WARN: no placement resolver configured")
		return placement.NoModel
	}
	return v.placement.ResetPosition()
}

func (v *viewer) ResetRotation() {
	v.registry.ResetRotation()
}

func (v *viewer) ResetScale() {
	v.registry.ResetScale()
}

func (v *viewer) OnRotateButtonDown(axisName string) bool {
	axis := rotation.ParseAxis(axisName)
	v.rotation.OnRotateButtonDown(axis)
	if axis == rotation.AxisNone {
		log.Printf("[Viewer] WARN: unknown rotation axis %q", axisName)
		return false
	}
	return true
}

func (v *viewer) OnRotateButtonUp() {
	v.rotation.OnRotateButtonUp()
}

func (v *viewer) SwitchPanel(index int) bool {
	return v.panels.SwitchPanel(index)
}

func (v *viewer) TogglePanel(index int, show bool) bool {
	return v.panels.TogglePanel(index, show)
}

func (v *viewer) ToggleUIPanelVisibility() {
	v.panels.ToggleUIPanelVisibility()
}

func (v *viewer) HideUI() {
	v.ui.HideAll()
}

func (v *viewer) ShowUI() {
	v.ui.ShowAll()
}

func (v *viewer) CaptureImage() error {
	if v.capture == nil {
		return capture.ErrNoRenderer
	}
	return v.capture.CaptureImage()
}

func (v *viewer) CapturePhoto() {
	if v.capture == nil {
		log.Printf("[Viewer] WARN: no capture pipeline configured")
		return
	}
	v.capture.CapturePhoto()
}

func (v *viewer) Registry() registry.Registry {
	return v.registry
}

func (v *viewer) Rotation() rotation.Controller {
	return v.rotation
}

func (v *viewer) Panels() panel.Switcher {
	return v.panels
}

func (v *viewer) UI() panel.Group {
	return v.ui
}

func (v *viewer) Feed() camera_feed.Feed {
	return v.feed
}

func (v *viewer) Capture() capture.Pipeline {
	return v.capture
}

func (v *viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true

	if v.feed != nil {
		v.feed.Stop()
	}
	if v.capture != nil {
		v.capture.Close()
	}
	v.registry.Clear()
	log.Printf("[Viewer] closed")
}
