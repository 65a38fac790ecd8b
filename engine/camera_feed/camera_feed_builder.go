package camera_feed

import (
	"time"
)

// FeedBuilderOption is a functional option for configuring a Feed.
type FeedBuilderOption func(f *feed)

// WithDelay sets the pause before bring-up starts.
//
// Parameters:
//   - delay: the initial delay
//
// Returns:
//   - FeedBuilderOption: option function to apply
func WithDelay(delay time.Duration) FeedBuilderOption {
	return func(f *feed) {
		f.delay = delay
	}
}

// WithTimeout sets the budget for the permission wait and for the first-frame wait.
//
// Parameters:
//   - timeout: the per-phase timeout
//
// Returns:
//   - FeedBuilderOption: option function to apply
func WithTimeout(timeout time.Duration) FeedBuilderOption {
	return func(f *feed) {
		f.timeout = timeout
	}
}

// WithRequestedMode sets the frame size and rate requested from the device.
//
// Parameters:
//   - width, height: frame size in pixels
//   - fps: frame rate
//
// Returns:
//   - FeedBuilderOption: option function to apply
func WithRequestedMode(width, height, fps int) FeedBuilderOption {
	return func(f *feed) {
		f.width = width
		f.height = height
		f.fps = fps
	}
}

// WithLoadingIndicator sets the indicator shown until bring-up finishes.
//
// Parameters:
//   - indicator: the loading indicator
//
// Returns:
//   - FeedBuilderOption: option function to apply
func WithLoadingIndicator(indicator Indicator) FeedBuilderOption {
	return func(f *feed) {
		f.loading = indicator
	}
}

// WithPermissionName overrides the permission requested before opening the device.
//
// Parameters:
//   - name: the permission name
//
// Returns:
//   - FeedBuilderOption: option function to apply
func WithPermissionName(name string) FeedBuilderOption {
	return func(f *feed) {
		f.permission = name
	}
}
