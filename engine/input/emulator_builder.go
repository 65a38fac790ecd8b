package input

// EmulatorBuilderOption is a functional option for configuring an Emulator.
type EmulatorBuilderOption func(e *emulator)

// WithScreenHeight sets the initial window height used to flip y.
//
// Parameters:
//   - height: the window height in pixels
//
// Returns:
//   - EmulatorBuilderOption: option function to apply
func WithScreenHeight(height int) EmulatorBuilderOption {
	return func(e *emulator) {
		e.screenHeight = float32(height)
	}
}

// WithPinchSpread sets the distance in pixels between the two emulated fingers at press time.
//
// Parameters:
//   - spread: the initial pinch distance
//
// Returns:
//   - EmulatorBuilderOption: option function to apply
func WithPinchSpread(spread float32) EmulatorBuilderOption {
	return func(e *emulator) {
		e.pinchSpread = spread
	}
}
