package camera

type CameraBuilderOption func(*cameraImpl)

// WithUp sets the world up vector used to orient the camera toward its target.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up[0], c.up[1], c.up[2] = x, y, z
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithScreenSize sets the screen size in pixels. Non-positive sizes are ignored.
//
// Parameters:
//   - width, height: the screen size
//
// Returns:
//   - CameraBuilderOption: a function that sets the screen size
func WithScreenSize(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.width = width
			c.height = height
		}
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its pose from the controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
