package presenter

import "github.com/cogentcore/webgpu/wgpu"

// PresenterBuilderOption is a functional option for configuring a Presenter. The second
// argument receives adapter selection flags that only apply during construction.
type PresenterBuilderOption func(p *presenter, forceFallbackAdapter *bool)

// WithVSync selects Fifo presentation when on and Immediate when off. Defaults to on.
//
// Parameters:
//   - vsync: true to sync to the display refresh
//
// Returns:
//   - PresenterBuilderOption: option function to apply
func WithVSync(vsync bool) PresenterBuilderOption {
	return func(p *presenter, _ *bool) {
		if vsync {
			p.presentMode = wgpu.PresentModeFifo
		} else {
			p.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithFallbackAdapter forces the software fallback adapter.
//
// Returns:
//   - PresenterBuilderOption: option function to apply
func WithFallbackAdapter() PresenterBuilderOption {
	return func(_ *presenter, forceFallbackAdapter *bool) {
		*forceFallbackAdapter = true
	}
}
