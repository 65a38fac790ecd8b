package compositor

import "image/color"

// CompositorBuilderOption is a functional option for configuring a Compositor.
type CompositorBuilderOption func(c *compositor)

// WithFrameSource sets the camera frame drawn behind the model.
func WithFrameSource(source FrameSource) CompositorBuilderOption {
	return func(c *compositor) {
		c.source = source
	}
}

// WithModels sets the provider of the model marker.
func WithModels(models ModelProvider) CompositorBuilderOption {
	return func(c *compositor) {
		c.models = models
	}
}

// WithPanels sets the panel flags drawn in the HUD.
func WithPanels(panels PanelSource) CompositorBuilderOption {
	return func(c *compositor) {
		c.panels = panels
	}
}

// WithBackground sets the color shown where there is no camera frame.
func WithBackground(bg color.RGBA) CompositorBuilderOption {
	return func(c *compositor) {
		c.background = bg
	}
}

// WithHUDHeight sets the height of the HUD bars in pixels.
func WithHUDHeight(px int) CompositorBuilderOption {
	return func(c *compositor) {
		c.hudHeight = px
	}
}

// WithElements sets the controls drawn along the top edge.
func WithElements(elements ElementSource) CompositorBuilderOption {
	return func(c *compositor) {
		c.elements = elements
	}
}
