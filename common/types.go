// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TouchPhase describes where a single touch is in its lifecycle for the current frame.
type TouchPhase int

const (
	// TouchBegan is reported on the first frame a finger is down.
	TouchBegan TouchPhase = iota
	// TouchMoved is reported when the finger moved since the previous frame.
	TouchMoved
	// TouchStationary is reported when the finger is down but did not move.
	TouchStationary
	// TouchEnded is reported on the frame the finger was lifted.
	TouchEnded
	// TouchCanceled is reported when the platform aborted the touch.
	TouchCanceled
)

func (p TouchPhase) String() string {
	switch p {
	case TouchBegan:
		return "Began"
	case TouchMoved:
		return "Moved"
	case TouchStationary:
		return "Stationary"
	case TouchEnded:
		return "Ended"
	case TouchCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// Touch is a snapshot of one finger for a single frame.
type Touch struct {
	// FingerID identifies the finger across frames.
	FingerID int
	// Position is the screen position in pixels with the origin at the bottom-left corner.
	Position mgl32.Vec2
	// Phase is the lifecycle phase of the touch this frame.
	Phase TouchPhase
}

// Pose is a world-space position and orientation.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
//
// Returns:
//   - Pose: the identity pose
func IdentityPose() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}

// Ray is a half-line starting at Origin and extending along Direction.
// Direction is expected to be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Point returns the point at distance t along the ray.
//
// Parameters:
//   - t: distance from the origin
//
// Returns:
//   - mgl32.Vec3: the world-space point
func (r Ray) Point(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
