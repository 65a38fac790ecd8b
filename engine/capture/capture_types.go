package capture

import (
	"errors"
	"image"
)

var (
	// ErrNoRenderer is returned by CaptureImage when no FrameRenderer is configured.
	ErrNoRenderer = errors.New("no frame renderer configured")
	// ErrNoFramebuffer is reported when a photo is armed but nothing has been presented.
	ErrNoFramebuffer = errors.New("no presented frame to read back")
	// ErrPipelineClosed is returned once Close has been called.
	ErrPipelineClosed = errors.New("capture pipeline is closed")
)

const (
	// DefaultImageAlbum is the album render-texture captures are saved to.
	DefaultImageAlbum = "ARPhoto"
	// DefaultPhotoAlbum is the album screenshot captures are saved to.
	DefaultPhotoAlbum = "MyApp"
	// DefaultFileName is the file name captures are saved under.
	DefaultFileName = "screenshot.png"
)

// FrameRenderer renders the composited view. With a target set, Render draws into the
// target instead of the display.
type FrameRenderer interface {
	ScreenSize() (width, height int)
	SetTarget(target *image.RGBA)
	Render()
}

// FramebufferReader reads back the last frame presented to the display.
type FramebufferReader interface {
	ReadFramebuffer() image.Image
}

// Strategy identifies how a capture was taken.
type Strategy int

const (
	// StrategyRenderTexture renders one frame offscreen and saves the pixels directly.
	StrategyRenderTexture Strategy = iota
	// StrategyScreenshot reads the presented frame at end of frame and saves it through a file.
	StrategyScreenshot
)

func (s Strategy) String() string {
	if s == StrategyScreenshot {
		return "screenshot"
	}
	return "render-texture"
}

// Result is the outcome of one capture.
type Result struct {
	Strategy Strategy
	Path     string
	Err      error
}
