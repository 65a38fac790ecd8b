package touch

// ControllerBuilderOption is a functional option for configuring a touch Controller.
type ControllerBuilderOption func(c *controller)

// WithDragFactor sets the world units moved per screen pixel dragged.
func WithDragFactor(k float32) ControllerBuilderOption {
	return func(c *controller) {
		c.dragFactor = k
	}
}

// WithPinchFactor sets the scale change per pixel of pinch distance change.
func WithPinchFactor(k float32) ControllerBuilderOption {
	return func(c *controller) {
		c.pinchFactor = k
	}
}

// WithPinchDeadZone sets the pinch distance change in pixels below which no scaling happens.
func WithPinchDeadZone(pixels float32) ControllerBuilderOption {
	return func(c *controller) {
		c.pinchDeadZone = pixels
	}
}

// WithScaleBounds sets the uniform scale range a pinch is clamped to.
// Ignored unless 0 < lo <= hi.
func WithScaleBounds(lo, hi float32) ControllerBuilderOption {
	return func(c *controller) {
		if lo <= 0 || hi < lo {
			return
		}
		c.minScale = lo
		c.maxScale = hi
	}
}
