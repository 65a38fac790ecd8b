package rotation

// ControllerBuilderOption is a functional option for configuring a rotation Controller.
type ControllerBuilderOption func(c *controller)

// WithRotationSpeed sets the rotation speed in degrees per second.
//
// Parameters:
//   - degreesPerSecond: the speed
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithRotationSpeed(degreesPerSecond float32) ControllerBuilderOption {
	return func(c *controller) {
		c.speed = degreesPerSecond
	}
}
