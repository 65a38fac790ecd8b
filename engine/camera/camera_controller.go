package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitState places a camera on a sphere around its target.
type OrbitState struct {
	// Radius is the distance from the target.
	Radius float32
	// Azimuth is the angle around world +Y in radians. Zero puts the camera on the target's +Z side.
	Azimuth float32
	// Elevation is the angle above the horizontal plane in radians.
	Elevation float32
}

// CameraController owns the camera's position and look-at target. On desktop it stands in
// for device motion tracking by orbiting a target point.
type CameraController interface {
	// Position returns the camera's world position.
	//
	// Returns:
	//   - mgl32.Vec3: the world position
	Position() mgl32.Vec3

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the world target
	Target() mgl32.Vec3

	// SetTarget moves the orbit pivot, keeping the orbit state.
	//
	// Parameters:
	//   - target: the world target
	SetTarget(target mgl32.Vec3)

	// State returns the current orbit state.
	State() OrbitState

	// SetState replaces the orbit state, clamping radius and elevation to their bounds.
	//
	// Parameters:
	//   - s: the new state
	SetState(s OrbitState)

	// Orbit moves the camera around the target by whole orbit speed steps.
	// Positive azimuth steps move right and positive elevation steps move up.
	//
	// Parameters:
	//   - azimuthSteps: horizontal steps
	//   - elevationSteps: vertical steps
	Orbit(azimuthSteps, elevationSteps float32)

	// Zoom moves the camera toward the target for positive delta, scaled by the zoom speed.
	//
	// Parameters:
	//   - delta: the zoom amount
	Zoom(delta float32)

	// Reset restores the state the controller was built with.
	Reset()
}

type orbitLimits struct {
	minRadius, maxRadius       float32
	minElevation, maxElevation float32
}

type orbitController struct {
	mu sync.Mutex

	target  mgl32.Vec3
	state   OrbitState
	initial OrbitState
	limits  orbitLimits

	orbitSpeed float32
	zoomSpeed  float32
}

var _ CameraController = &orbitController{}

// NewOrbitController creates an orbit controller. The defaults put the camera at the origin
// looking down -Z at a target two units ahead, where an AR session starts.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	c := &orbitController{
		target: mgl32.Vec3{0, 0, -2},
		state:  OrbitState{Radius: 2},
		limits: orbitLimits{
			minRadius:    0.25,
			maxRadius:    20,
			minElevation: -math.Pi/2 + 0.1,
			maxElevation: math.Pi/2 - 0.1,
		},
		orbitSpeed: 0.03,
		zoomSpeed:  0.1,
	}
	for _, option := range options {
		option(c)
	}
	c.state = c.clamp(c.state)
	c.initial = c.state
	return c
}

func (c *orbitController) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	yaw := mgl32.QuatRotate(c.state.Azimuth, mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(-c.state.Elevation, mgl32.Vec3{1, 0, 0})
	return c.target.Add(yaw.Mul(pitch).Rotate(mgl32.Vec3{0, 0, c.state.Radius}))
}

func (c *orbitController) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *orbitController) SetTarget(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
}

func (c *orbitController) State() OrbitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *orbitController) SetState(s OrbitState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.clamp(s)
}

func (c *orbitController) Orbit(azimuthSteps, elevationSteps float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Azimuth += azimuthSteps * c.orbitSpeed
	s.Elevation += elevationSteps * c.orbitSpeed
	c.state = c.clamp(s)
}

func (c *orbitController) Zoom(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Radius -= delta * c.zoomSpeed
	c.state = c.clamp(s)
}

func (c *orbitController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.initial
}

func (c *orbitController) clamp(s OrbitState) OrbitState {
	s.Radius = mgl32.Clamp(s.Radius, c.limits.minRadius, c.limits.maxRadius)
	s.Elevation = mgl32.Clamp(s.Elevation, c.limits.minElevation, c.limits.maxElevation)
	return s
}
