package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the requested window size. Non-positive values keep the default.
//
// Parameters:
//   - width, height: the size in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds interactive resizing.
//
// Parameters:
//   - minWidth, minHeight: the smallest size
//   - maxWidth, maxHeight: the largest size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minSize = [2]int{minWidth, minHeight}
		w.maxSize = [2]int{maxWidth, maxHeight}
	}
}

// WithKeyRepeat reports a key down for every platform repeat while a key is held.
func WithKeyRepeat(enabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.keyRepeat = enabled
	}
}
