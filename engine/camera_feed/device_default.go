//go:build !gocv

package camera_feed

import (
	"log"
)

// NewDeviceProvider returns the synthetic Provider. Build with the gocv tag to use real
// capture devices.
//
// Returns:
//   - Provider: the provider
func NewDeviceProvider() Provider {
	log.Printf("[CameraFeed] built without gocv, using the synthetic camera")
	return NewSyntheticProvider()
}
