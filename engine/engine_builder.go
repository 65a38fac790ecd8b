package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-ar/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow drives the engine from the window's message loop. Without a window the engine
// runs headless on a ticker.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithUpdater registers an Updater during engine construction.
//
// Parameters:
//   - u: the updater
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithUpdater(u Updater) EngineBuilderOption {
	return func(e *engine) {
		if u != nil {
			e.updaters = append(e.updaters, u)
		}
	}
}

// WithRenderCallback sets the function called each step after the updaters.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.renderCallback = callback
	}
}
