package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraControllerOption is a functional option for configuring an orbit controller.
type CameraControllerOption func(*orbitController)

// WithTarget sets the orbit pivot.
//
// Parameters:
//   - target: the world target
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithTarget(target mgl32.Vec3) CameraControllerOption {
	return func(c *orbitController) {
		c.target = target
	}
}

// WithOrbitState sets the starting orbit state, which Reset returns to.
//
// Parameters:
//   - s: the starting state
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithOrbitState(s OrbitState) CameraControllerOption {
	return func(c *orbitController) {
		c.state = s
	}
}

// WithRadiusBounds bounds the distance to the target.
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(c *orbitController) {
		c.limits.minRadius = min
		c.limits.maxRadius = max
	}
}

// WithElevationBounds bounds the elevation in radians.
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(c *orbitController) {
		c.limits.minElevation = min
		c.limits.maxElevation = max
	}
}

// WithSpeeds sets the radians moved per orbit step and the radius change per unit of zoom.
//
// Parameters:
//   - orbit: radians per orbit step
//   - zoom: radius per zoom unit
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithSpeeds(orbit, zoom float32) CameraControllerOption {
	return func(c *orbitController) {
		c.orbitSpeed = orbit
		c.zoomSpeed = zoom
	}
}
