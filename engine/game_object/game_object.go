package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	id       uint64
	name     string
	enabled  atomic.Bool
	released atomic.Bool
	mdl      model.Model
	parent   GameObject

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
}

// GameObject defines the interface for a node in the scene graph.
// A node either carries a Model (an instantiated model) or is a bare transform
// used as a parent anchor. Position and rotation are world space, scale is local.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Model returns the Model this object was instantiated from, or nil for anchor nodes.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Parent returns the node this object is attached under, or nil.
	//
	// Returns:
	//   - GameObject: the parent node or nil
	Parent() GameObject

	// SetParent attaches the object under another node. The world pose is preserved.
	//
	// Parameters:
	//   - parent: the new parent, or nil to detach
	SetParent(parent GameObject)

	// Enabled returns whether this object is visible.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is visible.
	//
	// Parameters:
	//   - enabled: true to show the object
	SetEnabled(enabled bool)

	// Released reports whether the scene has destroyed this object.
	//
	// Returns:
	//   - bool: true once Release has been called
	Released() bool

	// Release marks the object as destroyed. Idempotent.
	Release()

	// Position returns the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl32.Vec3)

	// Translate moves the object by a world-space offset.
	//
	// Parameters:
	//   - delta: the offset to add to the position
	Translate(delta mgl32.Vec3)

	// Rotation returns the world-space orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation
	Rotation() mgl32.Quat

	// SetRotation sets the world-space orientation.
	//
	// Parameters:
	//   - q: the new orientation
	SetRotation(q mgl32.Quat)

	// RotateWorld applies a rotation expressed about world axes on top of the current orientation.
	//
	// Parameters:
	//   - q: the world-space rotation to apply
	RotateWorld(q mgl32.Quat)

	// LocalScale returns the local scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	LocalScale() mgl32.Vec3

	// SetLocalScale sets the local scale.
	//
	// Parameters:
	//   - s: the new scale
	SetLocalScale(s mgl32.Vec3)

	// Pose returns the world position and orientation together.
	//
	// Returns:
	//   - common.Pose: the pose
	Pose() common.Pose

	// SetPose sets the world position and orientation together.
	//
	// Parameters:
	//   - p: the new pose
	SetPose(p common.Pose)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled at the origin with identity rotation and unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Parent() GameObject {
	return g.parent
}

func (g *gameObject) SetParent(parent GameObject) {
	g.parent = parent
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Released() bool {
	return g.released.Load()
}

func (g *gameObject) Release() {
	if g.released.Swap(true) {
		return
	}
	g.enabled.Store(false)
	g.parent = nil
}

func (g *gameObject) Position() mgl32.Vec3 {
	return g.position
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.position = p
}

func (g *gameObject) Translate(delta mgl32.Vec3) {
	g.position = g.position.Add(delta)
}

func (g *gameObject) Rotation() mgl32.Quat {
	return g.rotation
}

func (g *gameObject) SetRotation(q mgl32.Quat) {
	g.rotation = q.Normalize()
}

func (g *gameObject) RotateWorld(q mgl32.Quat) {
	// world-space rotations pre-multiply
	g.rotation = q.Mul(g.rotation).Normalize()
}

func (g *gameObject) LocalScale() mgl32.Vec3 {
	return g.scale
}

func (g *gameObject) SetLocalScale(s mgl32.Vec3) {
	g.scale = s
}

func (g *gameObject) Pose() common.Pose {
	return common.Pose{Position: g.position, Rotation: g.rotation}
}

func (g *gameObject) SetPose(p common.Pose) {
	g.position = p.Position
	g.rotation = p.Rotation.Normalize()
}
