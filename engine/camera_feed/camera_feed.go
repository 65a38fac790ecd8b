package camera_feed

import (
	"fmt"
	"image"
	"log"
	"time"
)

const (
	// DefaultDelay is the pause before camera bring-up starts.
	DefaultDelay = time.Second
	// DefaultTimeout bounds both the permission wait and the first-frame wait.
	DefaultTimeout = 5 * time.Second
	// minValidDimension is the size a frame edge must exceed before the feed counts as running.
	minValidDimension = 100
)

// Feed brings the camera up as a state machine advanced by Tick on the update thread:
// Delaying, AwaitingPermission, Starting, AwaitingFrames, then Running or Failed.
// Waiting states only compare the clock against a deadline and never block.
type Feed interface {
	// Start shows the loading indicator and begins bring-up. Ignored unless idle.
	//
	// Parameters:
	//   - now: the current engine clock
	Start(now time.Duration)

	// Tick advances bring-up as far as it can go at now.
	//
	// Parameters:
	//   - now: the current engine clock
	//
	// Returns:
	//   - State: the state after advancing
	Tick(now time.Duration) State

	// State returns the current state.
	State() State

	// Err returns the failure cause once the state is StateFailed.
	Err() error

	// Device returns the running device, or nil.
	Device() Device

	// Frame returns the running device's latest frame, or nil.
	Frame() image.Image

	// PreviewRotation returns the rotation in degrees applied to the preview so frames appear
	// upright. It is the negated device rotation angle.
	PreviewRotation() float32

	// Stop releases the device. Bring-up in progress is abandoned.
	Stop()
}

type feed struct {
	permissions PermissionBroker
	provider    Provider
	loading     Indicator

	delay      time.Duration
	timeout    time.Duration
	permission string
	width      int
	height     int
	fps        int

	state      State
	phaseStart time.Duration
	err        error
	device     Device
	rotation   float32
}

var _ Feed = &feed{}

// NewFeed creates a camera Feed.
//
// Panics if permissions or provider is nil.
//
// Parameters:
//   - permissions: the permission broker
//   - provider: the device provider
//   - options: functional options
//
// Returns:
//   - Feed: the new feed, idle
func NewFeed(permissions PermissionBroker, provider Provider, options ...FeedBuilderOption) Feed {
	if permissions == nil || provider == nil {
		panic("camera_feed: NewFeed requires a non-nil PermissionBroker and Provider")
	}
	f := &feed{
		permissions: permissions,
		provider:    provider,
		delay:       DefaultDelay,
		timeout:     DefaultTimeout,
		permission:  PermissionCamera,
		width:       1280,
		height:      720,
		fps:         30,
	}
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *feed) Start(now time.Duration) {
	if f.state != StateIdle {
		return
	}
	f.setLoading(true)
	f.enter(StateDelaying, now)
}

func (f *feed) Tick(now time.Duration) State {
	for {
		switch f.state {
		case StateDelaying:
			if now-f.phaseStart < f.delay {
				return f.state
			}
			if !f.permissions.HasPermission(f.permission) {
				f.permissions.RequestPermission(f.permission)
			}
			f.enter(StateAwaitingPermission, now)

		case StateAwaitingPermission:
			if f.permissions.HasPermission(f.permission) {
				f.enter(StateStarting, now)
				continue
			}
			if now-f.phaseStart >= f.timeout {
				f.fail(ErrPermissionDenied)
				return f.state
			}
			return f.state

		case StateStarting:
			devices := f.provider.Devices()
			if len(devices) == 0 {
				f.fail(ErrNoCameraDevice)
				return f.state
			}
			dev, err := f.provider.Open(devices[0].Name, f.width, f.height, f.fps)
			if err != nil {
				f.fail(fmt.Errorf("%w: %s: %w", ErrNoCameraDevice, devices[0].Name, err))
				return f.state
			}
			log.Printf("[CameraFeed] opened %q, requested %dx%d@%d", dev.Name(), f.width, f.height, f.fps)
			f.device = dev
			f.enter(StateAwaitingFrames, now)

		case StateAwaitingFrames:
			if f.device.Width() > minValidDimension && f.device.Height() > minValidDimension {
				f.rotation = -float32(f.device.RotationAngle())
				log.Printf("[CameraFeed] running at %dx%d, preview rotation %.0f", f.device.Width(), f.device.Height(), f.rotation)
				f.state = StateRunning
				f.setLoading(false)
				return f.state
			}
			if now-f.phaseStart >= f.timeout {
				f.releaseDevice()
				f.fail(ErrCameraStartTimeout)
				return f.state
			}
			return f.state

		default:
			return f.state
		}
	}
}

func (f *feed) State() State {
	return f.state
}

func (f *feed) Err() error {
	return f.err
}

func (f *feed) Device() Device {
	if f.state != StateRunning {
		return nil
	}
	return f.device
}

func (f *feed) Frame() image.Image {
	if d := f.Device(); d != nil {
		return d.Frame()
	}
	return nil
}

func (f *feed) PreviewRotation() float32 {
	return f.rotation
}

func (f *feed) Stop() {
	f.releaseDevice()
	if !f.state.Terminal() && f.state != StateIdle {
		f.setLoading(false)
	}
	if f.state != StateFailed {
		f.state = StateStopped
	}
}

func (f *feed) enter(state State, now time.Duration) {
	f.state = state
	f.phaseStart = now
}

func (f *feed) fail(err error) {
	f.err = err
	f.state = StateFailed
	f.setLoading(false)
	log.Printf("[CameraFeed] ERROR: %v", err)
}

func (f *feed) releaseDevice() {
	if f.device == nil {
		return
	}
	if err := f.device.Stop(); err != nil {
		log.Printf("[CameraFeed] failed to stop %q: %v", f.device.Name(), err)
	}
	f.device = nil
}

func (f *feed) setLoading(visible bool) {
	if f.loading != nil {
		f.loading.SetVisible(visible)
	}
}
