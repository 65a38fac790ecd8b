package rotation

import (
	"github.com/Carmen-Shannon/oxy-ar/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSpeed is the rotation speed in degrees per second.
const DefaultSpeed float32 = 100

// ModelProvider yields the object rotations are applied to.
type ModelProvider interface {
	GetCurrentModel() game_object.GameObject
}

// State is the press-and-hold state of the rotate buttons.
type State struct {
	Active bool
	Axis   Axis
}

// Controller rotates the active model about a world axis while a rotate button is held.
// It is not safe for concurrent use; drive it from the update thread.
type Controller interface {
	// OnRotateButtonDown starts rotating about axis. The last press wins.
	OnRotateButtonDown(axis Axis)

	// OnRotateButtonUp stops rotating.
	OnRotateButtonUp()

	// Update applies one frame of rotation, speed*dt degrees, to the current model.
	// The request is kept when there is no model.
	//
	// Parameters:
	//   - dt: elapsed frame time in seconds
	Update(dt float32)

	// RotateOnce applies a single step about axis regardless of button state.
	//
	// Parameters:
	//   - axis: the world axis
	//   - dt: elapsed time in seconds
	RotateOnce(axis Axis, dt float32)

	// State returns the current button state.
	State() State

	// Speed returns the rotation speed in degrees per second.
	Speed() float32
}

type controller struct {
	models ModelProvider
	speed  float32
	state  State
}

var _ Controller = &controller{}

// NewController creates a rotation Controller.
//
// Panics if models is nil.
//
// Parameters:
//   - models: provides the active model
//   - options: functional options
//
// Returns:
//   - Controller: the new controller
func NewController(models ModelProvider, options ...ControllerBuilderOption) Controller {
	if models == nil {
		panic("rotation: NewController requires a non-nil ModelProvider")
	}
	c := &controller{
		models: models,
		speed:  DefaultSpeed,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controller) OnRotateButtonDown(axis Axis) {
	c.state = State{Active: true, Axis: axis}
}

func (c *controller) OnRotateButtonUp() {
	c.state = State{}
}

func (c *controller) Update(dt float32) {
	if !c.state.Active {
		return
	}
	c.RotateOnce(c.state.Axis, dt)
}

func (c *controller) RotateOnce(axis Axis, dt float32) {
	if axis == AxisNone {
		return
	}
	target := c.models.GetCurrentModel()
	if target == nil {
		return
	}
	step := mgl32.QuatRotate(mgl32.DegToRad(c.speed*dt), axis.Vector())
	target.RotateWorld(step)
}

func (c *controller) State() State {
	return c.state
}

func (c *controller) Speed() float32 {
	return c.speed
}
