package touch

import (
	"math"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine/game_object"
	"github.com/Carmen-Shannon/oxy-ar/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultDragFactor converts screen pixels to world units while dragging.
	DefaultDragFactor float32 = 0.001
	// DefaultPinchFactor converts pinch distance change in pixels to scale change.
	DefaultPinchFactor float32 = 0.005
	// DefaultPinchDeadZone is the pinch distance change in pixels ignored as jitter.
	DefaultPinchDeadZone float32 = 0.01
	// DefaultMinScale and DefaultMaxScale bound the uniform scale a pinch can reach.
	DefaultMinScale float32 = 0.05
	DefaultMaxScale float32 = 4.0
)

// ModelProvider yields the object gestures are applied to.
type ModelProvider interface {
	GetCurrentModel() game_object.GameObject
}

// GestureState is the transient state of the drag and pinch gestures.
type GestureState struct {
	Dragging              bool
	PreviousTouchPosition mgl32.Vec2
	Scaling               bool
	PreviousPinchDistance float32
}

// Controller maps touches to model transforms: one finger drags the model in the world
// XY plane, two fingers scale it uniformly. The touch count alone selects the gesture.
// Not safe for concurrent use.
type Controller interface {
	// Update reads the current touches and applies at most one gesture to the current model.
	// Does nothing when there is no model.
	Update()

	// State returns a copy of the gesture state.
	//
	// Returns:
	//   - GestureState: the current state
	State() GestureState

	// Reset returns the gesture state to neutral.
	Reset()
}

type controller struct {
	touches input.TouchSource
	models  ModelProvider

	dragFactor    float32
	pinchFactor   float32
	pinchDeadZone float32
	minScale      float32
	maxScale      float32

	state GestureState
}

var _ Controller = &controller{}

// NewController creates a touch interaction Controller.
//
// Panics if touches or models is nil.
//
// Parameters:
//   - touches: the per-frame touch source
//   - models: provides the active model
//   - options: functional options
//
// Returns:
//   - Controller: the new controller
func NewController(touches input.TouchSource, models ModelProvider, options ...ControllerBuilderOption) Controller {
	if touches == nil || models == nil {
		panic("touch: NewController requires a non-nil TouchSource and ModelProvider")
	}
	c := &controller{
		touches:       touches,
		models:        models,
		dragFactor:    DefaultDragFactor,
		pinchFactor:   DefaultPinchFactor,
		pinchDeadZone: DefaultPinchDeadZone,
		minScale:      DefaultMinScale,
		maxScale:      DefaultMaxScale,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controller) Update() {
	target := c.models.GetCurrentModel()
	if target == nil {
		return
	}

	switch c.touches.TouchCount() {
	case 0:
		c.state = GestureState{}
	case 1:
		c.state.Scaling = false
		c.drag(target, c.touches.Touch(0))
	case 2:
		c.state.Dragging = false
		c.pinch(target, c.touches.Touch(0), c.touches.Touch(1))
	default:
		c.state.Scaling = false
	}
}

func (c *controller) drag(target game_object.GameObject, t common.Touch) {
	switch t.Phase {
	case common.TouchBegan:
		c.state.PreviousTouchPosition = t.Position
		c.state.Dragging = true
	case common.TouchMoved:
		if !c.state.Dragging {
			return
		}
		delta := t.Position.Sub(c.state.PreviousTouchPosition)
		target.Translate(mgl32.Vec3{delta.X() * c.dragFactor, delta.Y() * c.dragFactor, 0})
		c.state.PreviousTouchPosition = t.Position
	case common.TouchEnded, common.TouchCanceled:
		c.state.Dragging = false
	}
}

func (c *controller) pinch(target game_object.GameObject, a, b common.Touch) {
	distance := common.Distance2(a.Position, b.Position)
	if !c.state.Scaling {
		c.state.PreviousPinchDistance = distance
		c.state.Scaling = true
		return
	}

	delta := distance - c.state.PreviousPinchDistance
	if float32(math.Abs(float64(delta))) > c.pinchDeadZone {
		next := mgl32.Clamp(target.LocalScale().X()+delta*c.pinchFactor, c.minScale, c.maxScale)
		target.SetLocalScale(common.UniformScale(next))
	}
	c.state.PreviousPinchDistance = distance
}

func (c *controller) State() GestureState {
	return c.state
}

func (c *controller) Reset() {
	c.state = GestureState{}
}
