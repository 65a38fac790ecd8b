package ar

import (
	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// PlaneAlignment describes the orientation of a tracked plane.
type PlaneAlignment int

const (
	// AlignmentHorizontalUp is a floor or table top.
	AlignmentHorizontalUp PlaneAlignment = iota
	// AlignmentHorizontalDown is a ceiling.
	AlignmentHorizontalDown
	// AlignmentVertical is a wall.
	AlignmentVertical
)

func (a PlaneAlignment) String() string {
	switch a {
	case AlignmentHorizontalUp:
		return "HorizontalUp"
	case AlignmentHorizontalDown:
		return "HorizontalDown"
	case AlignmentVertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// TrackableType is a bit mask selecting which trackables a raycast may hit.
type TrackableType uint32

const (
	// TrackableNone hits nothing.
	TrackableNone TrackableType = 0
	// PlaneWithinPolygon hits a plane only inside its detected boundary.
	PlaneWithinPolygon TrackableType = 1 << iota
	// PlaneWithinInfinity hits a plane anywhere on its infinite extension.
	PlaneWithinInfinity

	// TrackableAll hits any trackable.
	TrackableAll = PlaneWithinPolygon | PlaneWithinInfinity
)

// Plane is a tracked physical surface. The plane lies in the XZ plane of its pose with the
// normal along local +Y. Extents is the full size along local X and Z.
type Plane struct {
	ID        uuid.UUID
	Pose      common.Pose
	Extents   mgl32.Vec2
	Alignment PlaneAlignment
}

// Normal returns the plane's world-space normal.
//
// Returns:
//   - mgl32.Vec3: the unit normal
func (p Plane) Normal() mgl32.Vec3 {
	return p.Pose.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// Hit is a raycast intersection with a tracked plane. Pose carries the hit point and the
// plane's orientation.
type Hit struct {
	TrackableID uuid.UUID
	Type        TrackableType
	Pose        common.Pose
	Distance    float32
}
