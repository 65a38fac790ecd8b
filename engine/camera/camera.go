package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov    float32
	near   float32
	far    float32
	width  int
	height int

	position mgl32.Vec3
	rotation mgl32.Quat

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
	inverseViewProj      mgl32.Mat4

	controller CameraController
}

// Camera is the AR camera. It holds the perspective settings and the screen size and derives
// its world pose from an attached CameraController each time Update is called.
// Screen coordinates are pixels with the origin at the bottom-left corner.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ScreenSize returns the screen size in pixels.
	//
	// Returns:
	//   - width, height: the screen size
	ScreenSize() (width, height int)

	// SetScreenSize sets the screen size and recomputes matrices. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width, height: the screen size in pixels
	SetScreenSize(width, height int)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// Position returns the camera's world position.
	//
	// Returns:
	//   - mgl32.Vec3: the world position
	Position() mgl32.Vec3

	// Rotation returns the camera's world orientation. The camera looks along its local -Z.
	//
	// Returns:
	//   - mgl32.Quat: the orientation
	Rotation() mgl32.Quat

	// Pose returns the camera's world position and orientation.
	//
	// Returns:
	//   - common.Pose: the pose
	Pose() common.Pose

	// Forward returns the unit world direction the camera looks along.
	//
	// Returns:
	//   - mgl32.Vec3: the forward direction
	Forward() mgl32.Vec3

	// ViewMatrix returns the current view matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the current combined view-projection matrix.
	ViewProjectionMatrix() mgl32.Mat4

	// Frustum returns the view frustum planes for visibility tests.
	Frustum() common.Frustum

	// ScreenPointToRay returns the world ray through a screen point, starting on the near plane.
	//
	// Parameters:
	//   - x, y: the screen point in pixels
	//
	// Returns:
	//   - common.Ray: the ray with a normalized direction
	ScreenPointToRay(x, y float32) common.Ray

	// WorldToScreen projects a world point onto the screen.
	//
	// Parameters:
	//   - p: the world point
	//
	// Returns:
	//   - mgl32.Vec3: screen x, y in pixels and normalized depth in z
	//   - bool: false if the point is behind the camera
	WorldToScreen(p mgl32.Vec3) (mgl32.Vec3, bool)

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// Update reads position/target from the controller and recomputes the pose and matrices.
	// Call once per frame. Does nothing without a controller.
	Update()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		up:                   mgl32.Vec3{0, 1, 0},
		fov:                  mgl32.DegToRad(60),
		near:                 0.1,
		far:                  100.0,
		width:                1280,
		height:               720,
		rotation:             mgl32.QuatIdent(),
		viewMatrix:           mgl32.Ident4(),
		projectionMatrix:     mgl32.Ident4(),
		viewProjectionMatrix: mgl32.Ident4(),
		inverseViewProj:      mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect()
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ScreenSize() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *cameraImpl) SetScreenSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = width
	c.height = height
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Rotation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *cameraImpl) Pose() common.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.Pose{Position: c.position, Rotation: c.rotation}
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustum(c.viewProjectionMatrix)
}

func (c *cameraImpl) ScreenPointToRay(x, y float32) common.Ray {
	c.mu.Lock()
	defer c.mu.Unlock()

	nx := 2*x/float32(c.width) - 1
	ny := 2*y/float32(c.height) - 1

	near := c.inverseViewProj.Mul4x1(mgl32.Vec4{nx, ny, -1, 1})
	far := c.inverseViewProj.Mul4x1(mgl32.Vec4{nx, ny, 1, 1})
	nearPoint := near.Vec3().Mul(1 / near.W())
	farPoint := far.Vec3().Mul(1 / far.W())

	return common.Ray{
		Origin:    nearPoint,
		Direction: farPoint.Sub(nearPoint).Normalize(),
	}
}

func (c *cameraImpl) WorldToScreen(p mgl32.Vec3) (mgl32.Vec3, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	clip := c.viewProjectionMatrix.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec3{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl32.Vec3{
		(ndc.X() + 1) * 0.5 * float32(c.width),
		(ndc.Y() + 1) * 0.5 * float32(c.height),
		ndc.Z(),
	}, true
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

// aspect returns width / height. Caller must hold the mutex.
func (c *cameraImpl) aspect() float32 {
	return float32(c.width) / float32(c.height)
}

// updateMatrices recalculates the pose and the view, projection and inverse view-projection
// matrices. Without a controller the pose is left untouched.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller != nil {
		position := c.controller.Position()
		target := c.controller.Target()

		back := position.Sub(target)
		if back.Len() > 1e-6 {
			back = back.Normalize()
			right := c.up.Cross(back)
			if right.Len() < 1e-6 {
				right = mgl32.Vec3{1, 0, 0}
			}
			right = right.Normalize()
			up := back.Cross(right)

			c.position = position
			c.rotation = common.QuatFromBasis(right, up, back)
		}
	}

	c.viewMatrix = c.rotation.Inverse().Mat4().Mul4(mgl32.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z()))
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect(), c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseViewProj = c.viewProjectionMatrix.Inv()
}
