package camera_feed

import (
	"errors"
	"image"
)

var (
	// ErrPermissionDenied is reported when camera permission is not granted before the timeout.
	ErrPermissionDenied = errors.New("camera permission denied")
	// ErrNoCameraDevice is reported when no device is available or the first device cannot be opened.
	ErrNoCameraDevice = errors.New("no camera device")
	// ErrCameraStartTimeout is reported when the device never delivers valid dimensions.
	ErrCameraStartTimeout = errors.New("camera failed to start")
)

// PermissionCamera is the permission name requested before opening a camera device.
const PermissionCamera = "camera"

// PermissionBroker queries and requests OS permissions. A request is asynchronous: the
// grant is observed by polling HasPermission.
type PermissionBroker interface {
	HasPermission(name string) bool
	RequestPermission(name string)
}

// DeviceInfo describes an enumerated camera device.
type DeviceInfo struct {
	Name        string
	FrontFacing bool
}

// Device is an opened camera producing frames.
type Device interface {
	// Name returns the device name it was opened with.
	Name() string

	// Width and Height return the negotiated frame size. Both stay small (<= 16) until the
	// device has delivered its first real frame.
	Width() int
	Height() int

	// RotationAngle returns the clockwise rotation in degrees of delivered frames.
	RotationAngle() int

	// Frame returns the latest frame, or nil before the first one.
	Frame() image.Image

	// Stop releases the device. Safe to call more than once.
	Stop() error
}

// Provider enumerates and opens camera devices.
type Provider interface {
	// Devices returns the available devices. Empty when there is no camera.
	Devices() []DeviceInfo

	// Open starts the named device at the requested size and frame rate. The device may
	// negotiate a different size.
	//
	// Parameters:
	//   - name: the device name from Devices
	//   - width, height: requested frame size
	//   - fps: requested frame rate
	//
	// Returns:
	//   - Device: the opened device
	//   - error: error if the device cannot be opened
	Open(name string, width, height, fps int) (Device, error)
}

// Indicator is the loading indicator shown while the camera comes up.
type Indicator interface {
	SetVisible(visible bool)
}

// State is the camera bring-up phase.
type State int

const (
	StateIdle State = iota
	StateDelaying
	StateAwaitingPermission
	StateStarting
	StateAwaitingFrames
	StateRunning
	StateFailed
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDelaying:
		return "Delaying"
	case StateAwaitingPermission:
		return "AwaitingPermission"
	case StateStarting:
		return "Starting"
	case StateAwaitingFrames:
		return "AwaitingFrames"
	case StateRunning:
		return "Running"
	case StateFailed:
		return "Failed"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Terminal reports whether bring-up has finished, successfully or not.
func (s State) Terminal() bool {
	return s == StateRunning || s == StateFailed || s == StateStopped
}
