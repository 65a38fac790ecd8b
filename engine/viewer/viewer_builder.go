package viewer

import (
	"time"

	"github.com/Carmen-Shannon/oxy-ar/engine/camera_feed"
	"github.com/Carmen-Shannon/oxy-ar/engine/capture"
	"github.com/Carmen-Shannon/oxy-ar/engine/panel"
	"github.com/Carmen-Shannon/oxy-ar/engine/placement"
	"github.com/Carmen-Shannon/oxy-ar/engine/rotation"
	"github.com/Carmen-Shannon/oxy-ar/engine/touch"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(v *viewer)

// WithRotation sets the rotation controller.
func WithRotation(c rotation.Controller) ViewerBuilderOption {
	return func(v *viewer) {
		v.rotation = c
	}
}

// WithTouch sets the touch interaction controller.
func WithTouch(c touch.Controller) ViewerBuilderOption {
	return func(v *viewer) {
		v.touch = c
	}
}

// WithPlacement sets the placement resolver.
func WithPlacement(r placement.Resolver) ViewerBuilderOption {
	return func(v *viewer) {
		v.placement = r
	}
}

// WithPanels sets the panel switcher.
func WithPanels(s panel.Switcher) ViewerBuilderOption {
	return func(v *viewer) {
		v.panels = s
	}
}

// WithUIGroup sets the group of UI elements hidden and shown by HideUI and ShowUI.
func WithUIGroup(g panel.Group) ViewerBuilderOption {
	return func(v *viewer) {
		v.ui = g
	}
}

// WithCapture sets the capture pipeline.
func WithCapture(p capture.Pipeline) ViewerBuilderOption {
	return func(v *viewer) {
		v.capture = p
	}
}

// WithFeed sets the camera feed brought up by Start.
func WithFeed(f camera_feed.Feed) ViewerBuilderOption {
	return func(v *viewer) {
		v.feed = f
	}
}

// WithClock replaces the clock accumulated by Update, usually with engine.Elapsed.
func WithClock(clock func() time.Duration) ViewerBuilderOption {
	return func(v *viewer) {
		v.clock = clock
	}
}
