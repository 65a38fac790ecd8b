package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformScale returns a scale vector with every component set to s.
//
// Parameters:
//   - s: the uniform scale factor
//
// Returns:
//   - mgl32.Vec3: (s, s, s)
func UniformScale(s float32) mgl32.Vec3 {
	return mgl32.Vec3{s, s, s}
}

// Distance2 returns the euclidean distance between two screen points.
//
// Parameters:
//   - a, b: the points
//
// Returns:
//   - float32: the distance in pixels
func Distance2(a, b mgl32.Vec2) float32 {
	return b.Sub(a).Len()
}

// QuatFromBasis builds an orientation from an orthonormal right/up/back basis.
// The basis follows the view convention where forward is -Z.
//
// Parameters:
//   - right: the local +X axis in world space
//   - up: the local +Y axis in world space
//   - back: the local +Z axis in world space
//
// Returns:
//   - mgl32.Quat: the normalized orientation
func QuatFromBasis(right, up, back mgl32.Vec3) mgl32.Quat {
	m := mgl32.Mat4FromCols(right.Vec4(0), up.Vec4(0), back.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	return mgl32.Mat4ToQuat(m).Normalize()
}

// AngleBetween returns the rotation angle in degrees that takes orientation a to orientation b.
//
// Parameters:
//   - a, b: unit quaternions
//
// Returns:
//   - float32: the angle in degrees, in [0, 180]
func AngleBetween(a, b mgl32.Quat) float32 {
	d := float64(a.Dot(b))
	d = math.Min(math.Abs(d), 1)
	return mgl32.RadToDeg(float32(2 * math.Acos(d)))
}
