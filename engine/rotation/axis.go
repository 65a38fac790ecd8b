package rotation

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Axis is a world-space rotation axis selectable by a rotate button.
type Axis int

const (
	// AxisNone is held by an active request whose button named no known axis.
	AxisNone Axis = iota
	AxisPosX
	AxisNegX
	AxisPosY
	AxisNegY
)

// ParseAxis maps a button's axis name to an Axis. Unknown names yield AxisNone.
//
// Parameters:
//   - name: one of "X", "-X", "Y", "-Y"
//
// Returns:
//   - Axis: the parsed axis
func ParseAxis(name string) Axis {
	switch name {
	case "X":
		return AxisPosX
	case "-X":
		return AxisNegX
	case "Y":
		return AxisPosY
	case "-Y":
		return AxisNegY
	default:
		return AxisNone
	}
}

// Vector returns the world-space unit vector for the axis, or the zero vector for AxisNone.
func (a Axis) Vector() mgl32.Vec3 {
	switch a {
	case AxisPosX:
		return mgl32.Vec3{1, 0, 0}
	case AxisNegX:
		return mgl32.Vec3{-1, 0, 0}
	case AxisPosY:
		return mgl32.Vec3{0, 1, 0}
	case AxisNegY:
		return mgl32.Vec3{0, -1, 0}
	default:
		return mgl32.Vec3{}
	}
}

func (a Axis) String() string {
	switch a {
	case AxisPosX:
		return "X"
	case AxisNegX:
		return "-X"
	case AxisPosY:
		return "Y"
	case AxisNegY:
		return "-Y"
	default:
		return "none"
	}
}
