package ar

import (
	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/go-gl/mathgl/mgl32"
)

// TrackerBuilderOption is a functional option for configuring a Tracker.
type TrackerBuilderOption func(t *tracker)

// WithFloorPlane seeds the tracker with an upward facing plane at height y, centred under
// the origin. Used on desktop where there is no plane detection.
//
// Parameters:
//   - y: the floor height
//   - extents: the full floor size along X and Z
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithFloorPlane(y float32, extents mgl32.Vec2) TrackerBuilderOption {
	return func(t *tracker) {
		t.addPlane(common.Pose{Position: mgl32.Vec3{0, y, 0}, Rotation: mgl32.QuatIdent()}, extents, AlignmentHorizontalUp)
	}
}
