package scene

import (
	"log"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine/game_object"
	"github.com/Carmen-Shannon/oxy-ar/engine/model"
)

// Scene is the scene graph host. It owns every node spawned into it: named anchor
// nodes that other components receive as parents, and model instances created via
// Instantiate. Destroy releases an instance synchronously.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// NewAnchor creates a named transform node at the given pose and registers it.
	// Creating an anchor with an existing name replaces the previous registration.
	//
	// Parameters:
	//   - name: the anchor name
	//   - pose: the anchor world pose
	//
	// Returns:
	//   - game_object.GameObject: the anchor node
	NewAnchor(name string, pose common.Pose) game_object.GameObject

	// Anchor retrieves a registered anchor node by name.
	// Returns nil if not found.
	//
	// Parameters:
	//   - name: the anchor name
	//
	// Returns:
	//   - game_object.GameObject: the anchor or nil
	Anchor(name string) game_object.GameObject

	// Instantiate spawns a new instance of the model at the parent's world pose,
	// attached under the parent, with the model's initial scale. A nil parent
	// spawns at the origin.
	//
	// Panics if m is nil.
	//
	// Parameters:
	//   - m: the model template
	//   - parent: the node to attach under, or nil
	//
	// Returns:
	//   - game_object.GameObject: the spawned instance
	Instantiate(m model.Model, parent game_object.GameObject) game_object.GameObject

	// Destroy releases the instance and removes it from the scene. Destroying an
	// object that is nil or not owned by the scene is a no-op.
	//
	// Parameters:
	//   - obj: the instance to destroy
	Destroy(obj game_object.GameObject)

	// Get retrieves a live instance by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Count returns the number of live model instances in the scene. Anchors are not counted.
	//
	// Returns:
	//   - int: count of live instances
	Count() int

	// Objects returns the live model instances ordered by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the instances
	Objects() []game_object.GameObject

	// Clear destroys every live instance. Anchors are kept.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	anchors  map[string]game_object.GameObject
	registry map[uint64]game_object.GameObject // live model instances by ID
	nextID   uint64
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		active:   true,
		anchors:  make(map[string]game_object.GameObject),
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) NewAnchor(name string, pose common.Pose) game_object.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAnchor(name, pose)
}

// addAnchor creates and registers an anchor node. Caller must hold s.mu write lock.
func (s *scene) addAnchor(name string, pose common.Pose) game_object.GameObject {
	anchor := game_object.NewGameObject(
		game_object.WithID(s.nextID),
		game_object.WithName(name),
		game_object.WithPose(pose),
	)
	s.nextID++
	s.anchors[name] = anchor
	return anchor
}

func (s *scene) Anchor(name string) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.anchors[name]
}

func (s *scene) Instantiate(m model.Model, parent game_object.GameObject) game_object.GameObject {
	if m == nil {
		panic("scene: cannot Instantiate a nil Model")
	}

	pose := common.IdentityPose()
	if parent != nil {
		pose = parent.Pose()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj := game_object.NewGameObject(
		game_object.WithID(s.nextID),
		game_object.WithModel(m),
		game_object.WithParent(parent),
		game_object.WithPose(pose),
	)
	s.nextID++
	s.registry[obj.ID()] = obj

	log.Printf("[Scene] %s: instantiated %q (id %d)", s.name, m.Name(), obj.ID())
	return obj
}

func (s *scene) Destroy(obj game_object.GameObject) {
	if obj == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owned, exists := s.registry[obj.ID()]
	if !exists || owned != obj {
		return
	}
	delete(s.registry, obj.ID())
	obj.Release()

	log.Printf("[Scene] %s: destroyed %q (id %d)", s.name, obj.Name(), obj.ID())
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objs := make([]game_object.GameObject, 0, len(s.registry))
	for _, o := range s.registry {
		objs = append(objs, o)
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].ID() < objs[j].ID() })
	return objs
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.registry {
		o.Release()
	}
	s.registry = make(map[uint64]game_object.GameObject)
}
