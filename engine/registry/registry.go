package registry

import (
	"log"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine/game_object"
	"github.com/Carmen-Shannon/oxy-ar/engine/model"
	"github.com/Carmen-Shannon/oxy-ar/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Registry owns the ordered list of model templates and the single active model slot.
// At most one instance exists at any time: assigning a new model to the slot destroys
// the previous occupant first.
type Registry interface {
	// Count returns the number of templates.
	//
	// Returns:
	//   - int: the template count
	Count() int

	// Template returns the template at index i, or nil when i is out of range.
	//
	// Parameters:
	//   - i: the template index
	//
	// Returns:
	//   - model.Model: the template or nil
	Template(i int) model.Model

	// SwitchModel destroys the active model, if any, and spawns template index under the
	// anchor. An out-of-range index leaves the slot empty.
	//
	// Parameters:
	//   - index: the template index to spawn
	//
	// Returns:
	//   - bool: true if a model was spawned
	SwitchModel(index int) bool

	// Clear destroys the active model, if any, and leaves the slot empty.
	Clear()

	// GetCurrentModel returns the active model, or nil when the slot is empty.
	//
	// Returns:
	//   - game_object.GameObject: the active model or nil
	GetCurrentModel() game_object.GameObject

	// CurrentIndex returns the template index of the active model, or -1 when the slot is empty.
	//
	// Returns:
	//   - int: the active template index
	CurrentIndex() int

	// InitialScale returns the local scale snapshot taken when the active model spawned.
	//
	// Returns:
	//   - mgl32.Vec3: the snapshot, zero when the slot is empty
	InitialScale() mgl32.Vec3

	// ToggleModel flips the active model's visibility. No-op when the slot is empty.
	ToggleModel()

	// SetVisible sets the active model's visibility. No-op when the slot is empty.
	//
	// Parameters:
	//   - visible: true to show the model
	SetVisible(visible bool)

	// ResetScale restores the active model's local scale to the spawn snapshot.
	ResetScale()

	// ResetRotation sets the active model's orientation to identity.
	ResetRotation()
}

type registry struct {
	host   scene.Scene
	anchor game_object.GameObject

	templates []model.Model

	current      game_object.GameObject
	currentIndex int
	initialScale mgl32.Vec3
}

var _ Registry = &registry{}

// NewRegistry creates a Registry that spawns into host under the configured anchor.
//
// Panics if host is nil.
//
// Parameters:
//   - host: the scene graph host instances are spawned into
//   - options: functional options (templates, anchor)
//
// Returns:
//   - Registry: the newly created registry
func NewRegistry(host scene.Scene, options ...RegistryBuilderOption) Registry {
	if host == nil {
		panic("registry: NewRegistry requires a non-nil Scene")
	}
	r := &registry{
		host:         host,
		currentIndex: -1,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *registry) Count() int {
	return len(r.templates)
}

func (r *registry) Template(i int) model.Model {
	if !common.InRange(i, len(r.templates)) {
		return nil
	}
	return r.templates[i]
}

func (r *registry) SwitchModel(index int) bool {
	r.Clear()

	if !common.InRange(index, len(r.templates)) {
		log.Printf("[Registry] model index %d out of range [0, %d)", index, len(r.templates))
		return false
	}

	obj := r.host.Instantiate(r.templates[index], r.anchor)
	r.current = obj
	r.currentIndex = index
	r.initialScale = obj.LocalScale()
	return true
}

func (r *registry) Clear() {
	if r.current == nil {
		return
	}
	prev := r.current
	r.current = nil
	r.currentIndex = -1
	r.initialScale = mgl32.Vec3{}
	r.host.Destroy(prev)
}

func (r *registry) GetCurrentModel() game_object.GameObject {
	return r.current
}

func (r *registry) CurrentIndex() int {
	return r.currentIndex
}

func (r *registry) InitialScale() mgl32.Vec3 {
	return r.initialScale
}

func (r *registry) ToggleModel() {
	if r.current == nil {
		return
	}
	r.current.SetEnabled(!r.current.Enabled())
}

func (r *registry) SetVisible(visible bool) {
	if r.current == nil {
		return
	}
	r.current.SetEnabled(visible)
}

func (r *registry) ResetScale() {
	if r.current == nil {
		return
	}
	r.current.SetLocalScale(r.initialScale)
}

func (r *registry) ResetRotation() {
	if r.current == nil {
		return
	}
	r.current.SetRotation(mgl32.QuatIdent())
}
