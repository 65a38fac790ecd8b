package ar

import (
	"log"
	"math"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Raycaster casts world rays against tracked surfaces.
type Raycaster interface {
	// Raycast returns every trackable hit by ray that is selected by mask, nearest first.
	//
	// Parameters:
	//   - ray: the world-space ray
	//   - mask: the trackable types that may be hit
	//
	// Returns:
	//   - []Hit: the hits ordered by distance, empty if none
	Raycast(ray common.Ray, mask TrackableType) []Hit
}

// Tracker is the plane tracking subsystem. Planes are added and removed by whatever drives
// detection (a device session, or a fixed floor on desktop) and queried through Raycast.
// Safe for concurrent use.
type Tracker interface {
	Raycaster

	// AddPlane starts tracking a plane.
	//
	// Parameters:
	//   - pose: the plane centre and orientation
	//   - extents: the full size along the plane's local X and Z
	//   - alignment: the plane orientation class
	//
	// Returns:
	//   - uuid.UUID: the trackable ID
	AddPlane(pose common.Pose, extents mgl32.Vec2, alignment PlaneAlignment) uuid.UUID

	// RemovePlane stops tracking a plane.
	//
	// Parameters:
	//   - id: the trackable ID
	//
	// Returns:
	//   - bool: false if the plane was not tracked
	RemovePlane(id uuid.UUID) bool

	// Plane looks up a tracked plane.
	//
	// Parameters:
	//   - id: the trackable ID
	//
	// Returns:
	//   - Plane: the plane
	//   - bool: false if not tracked
	Plane(id uuid.UUID) (Plane, bool)

	// Planes returns the tracked planes in the order they were added.
	Planes() []Plane
}

type tracker struct {
	mu     sync.RWMutex
	planes []Plane
}

var _ Tracker = &tracker{}

// NewTracker creates an empty Tracker.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Tracker: the new tracker
func NewTracker(options ...TrackerBuilderOption) Tracker {
	t := &tracker{}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *tracker) AddPlane(pose common.Pose, extents mgl32.Vec2, alignment PlaneAlignment) uuid.UUID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.addPlane(pose, extents, alignment)
}

// addPlane registers a plane. Caller must hold t.mu write lock.
func (t *tracker) addPlane(pose common.Pose, extents mgl32.Vec2, alignment PlaneAlignment) uuid.UUID {
	p := Plane{
		ID:        uuid.New(),
		Pose:      common.Pose{Position: pose.Position, Rotation: pose.Rotation.Normalize()},
		Extents:   extents,
		Alignment: alignment,
	}
	t.planes = append(t.planes, p)
	log.Printf("[AR] tracking %s plane %s at %v", alignment, p.ID, pose.Position)
	return p.ID
}

func (t *tracker) RemovePlane(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, p := range t.planes {
		if p.ID == id {
			t.planes = append(t.planes[:i], t.planes[i+1:]...)
			log.Printf("[AR] removed plane %s", id)
			return true
		}
	}
	return false
}

func (t *tracker) Plane(id uuid.UUID) (Plane, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, p := range t.planes {
		if p.ID == id {
			return p, true
		}
	}
	return Plane{}, false
}

func (t *tracker) Planes() []Plane {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Plane(nil), t.planes...)
}

func (t *tracker) Raycast(ray common.Ray, mask TrackableType) []Hit {
	if mask&TrackableAll == 0 {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	var hits []Hit
	for _, p := range t.planes {
		if hit, ok := intersect(ray, p, mask); ok {
			hits = append(hits, hit)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// intersect tests a ray against one plane and classifies the hit by mask.
func intersect(ray common.Ray, p Plane, mask TrackableType) (Hit, bool) {
	normal := p.Normal()
	denom := normal.Dot(ray.Direction)
	if math.Abs(float64(denom)) < 1e-6 {
		return Hit{}, false
	}

	distance := normal.Dot(p.Pose.Position.Sub(ray.Origin)) / denom
	if distance < 0 {
		return Hit{}, false
	}

	point := ray.Point(distance)
	local := p.Pose.Rotation.Inverse().Rotate(point.Sub(p.Pose.Position))
	inside := abs32(local.X()) <= p.Extents.X()*0.5 && abs32(local.Z()) <= p.Extents.Y()*0.5

	hitType := TrackableNone
	switch {
	case inside && mask&PlaneWithinPolygon != 0:
		hitType = PlaneWithinPolygon
	case mask&PlaneWithinInfinity != 0:
		hitType = PlaneWithinInfinity
	default:
		return Hit{}, false
	}

	return Hit{
		TrackableID: p.ID,
		Type:        hitType,
		Pose:        common.Pose{Position: point, Rotation: p.Pose.Rotation},
		Distance:    distance,
	}, true
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
