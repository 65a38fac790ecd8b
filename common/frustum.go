package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// Frustum represents the six planes of a view frustum.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustum extracts frustum planes from a combined projection * view matrix
// using the Gribb/Hartmann method.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)

	rows := [6]mgl32.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	}

	var f Frustum
	for i, row := range rows {
		n := row.Vec3()
		length := n.Len()
		if length > 0 {
			f.Planes[i] = Plane{Normal: n.Mul(1 / length), Distance: row.W() / length}
		} else {
			f.Planes[i] = Plane{Normal: n, Distance: row.W()}
		}
	}
	return f
}

// ContainsSphere reports whether a sphere intersects or lies inside the frustum.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere is entirely outside one of the planes
func (f Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}
