package placement

import (
	"log"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine/ar"
	"github.com/Carmen-Shannon/oxy-ar/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultFallbackDistance is how far in front of the camera a model is placed when the
// centre ray hits no tracked surface.
const DefaultFallbackDistance float32 = 1.98

// Result reports which branch ResetPosition took.
type Result int

const (
	// NoModel means there was no active model to place.
	NoModel Result = iota
	// HitPlane means the model was moved to the nearest plane hit.
	HitPlane
	// Fallback means the model was placed in front of the camera.
	Fallback
)

func (r Result) String() string {
	switch r {
	case HitPlane:
		return "HitPlane"
	case Fallback:
		return "Fallback"
	default:
		return "NoModel"
	}
}

// Camera is the view the resolver aims from.
type Camera interface {
	Pose() common.Pose
	Forward() mgl32.Vec3
	ScreenSize() (width, height int)
	ScreenPointToRay(x, y float32) common.Ray
}

// ModelProvider yields the object being placed.
type ModelProvider interface {
	GetCurrentModel() game_object.GameObject
}

// Resolver places the active model where the camera is looking.
type Resolver interface {
	// ResetPosition casts a ray through the screen centre and moves the model to the first
	// tracked surface hit, taking the hit orientation. Without a hit the model is put
	// FallbackDistance along the camera forward with the camera orientation. Always succeeds
	// when a model exists.
	//
	// Returns:
	//   - Result: the branch taken
	ResetPosition() Result
}

type resolver struct {
	camera    Camera
	raycaster ar.Raycaster
	models    ModelProvider

	fallbackDistance float32
	mask             ar.TrackableType
}

var _ Resolver = &resolver{}

// NewResolver creates a placement Resolver.
//
// Panics if any collaborator is nil.
//
// Parameters:
//   - cam: the AR camera
//   - raycaster: the plane raycaster
//   - models: provides the active model
//   - options: functional options
//
// Returns:
//   - Resolver: the new resolver
func NewResolver(cam Camera, raycaster ar.Raycaster, models ModelProvider, options ...ResolverBuilderOption) Resolver {
	if cam == nil || raycaster == nil || models == nil {
		panic("placement: NewResolver requires a non-nil Camera, Raycaster and ModelProvider")
	}
	r := &resolver{
		camera:           cam,
		raycaster:        raycaster,
		models:           models,
		fallbackDistance: DefaultFallbackDistance,
		mask:             ar.PlaneWithinPolygon,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *resolver) ResetPosition() Result {
	target := r.models.GetCurrentModel()
	if target == nil {
		return NoModel
	}

	w, h := r.camera.ScreenSize()
	ray := r.camera.ScreenPointToRay(float32(w)*0.5, float32(h)*0.5)

	if hits := r.raycaster.Raycast(ray, r.mask); len(hits) > 0 {
		target.SetPose(hits[0].Pose)
		log.Printf("[Placement] placed %q on plane %s at %v", target.Name(), hits[0].TrackableID, hits[0].Pose.Position)
		return HitPlane
	}

	pose := r.camera.Pose()
	target.SetPose(common.Pose{
		Position: pose.Position.Add(r.camera.Forward().Mul(r.fallbackDistance)),
		Rotation: pose.Rotation,
	})
	log.Printf("[Placement] no plane hit, placed %q %.2f in front of the camera", target.Name(), r.fallbackDistance)
	return Fallback
}
