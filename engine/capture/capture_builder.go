package capture

// PipelineBuilderOption is a functional option for configuring a Pipeline.
type PipelineBuilderOption func(p *pipeline)

// WithRenderer sets the renderer used by CaptureImage.
//
// Parameters:
//   - r: the frame renderer
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithRenderer(r FrameRenderer) PipelineBuilderOption {
	return func(p *pipeline) {
		p.renderer = r
	}
}

// WithFramebuffer sets the reader used by screenshots taken at end of frame.
//
// Parameters:
//   - fb: the framebuffer reader
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithFramebuffer(fb FramebufferReader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.framebuffer = fb
	}
}

// WithAlbums sets the albums for render-texture and screenshot captures.
//
// Parameters:
//   - imageAlbum: album for CaptureImage
//   - photoAlbum: album for CapturePhoto
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithAlbums(imageAlbum, photoAlbum string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.imageAlbum = imageAlbum
		p.photoAlbum = photoAlbum
	}
}

// WithFileName sets the file name captures are saved under.
//
// Parameters:
//   - name: the file name
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithFileName(name string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fileName = name
	}
}

// WithTempDir sets the private directory screenshots are staged in.
//
// Parameters:
//   - dir: the directory
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithTempDir(dir string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.tempDir = dir
	}
}

// WithWorkers sets the number of save workers.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithWorkers(n int) PipelineBuilderOption {
	return func(p *pipeline) {
		p.workers = n
	}
}

// WithResultCallback sets a function called with every capture result. It runs on a
// worker goroutine for saves and on the caller for readback failures.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithResultCallback(fn func(Result)) PipelineBuilderOption {
	return func(p *pipeline) {
		p.onResult = fn
	}
}
