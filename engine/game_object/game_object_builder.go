package game_object

import (
	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the display name of the GameObject.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject starts visible.
//
// Parameters:
//   - enabled: true to show the object, false to hide it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithModel sets the Model for this GameObject. The object's scale is
// initialized from the model's initial scale.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
		if m != nil {
			obj.scale = m.InitialScale()
			if obj.name == "" {
				obj.name = m.Name()
			}
		}
	}
}

// WithParent attaches the GameObject under a parent node.
//
// Parameters:
//   - parent: the parent node
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the parent
func WithParent(parent GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.parent = parent
	}
}

// WithPose sets the initial world position and orientation.
//
// Parameters:
//   - p: the initial pose
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the pose
func WithPose(p common.Pose) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = p.Position
		obj.rotation = p.Rotation.Normalize()
	}
}

// WithPosition sets the initial world position.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = mgl32.Vec3{x, y, z}
	}
}

// WithScale sets the initial local scale. Applied after WithModel it overrides the model's scale.
//
// Parameters:
//   - sx: the x scale
//   - sy: the y scale
//   - sz: the z scale
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = mgl32.Vec3{sx, sy, sz}
	}
}
