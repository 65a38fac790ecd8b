package model

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	path           string
	initialScale   mgl32.Vec3
	boundingRadius float32
	center         mgl32.Vec3
	meshCount      int
	vertexCount    int
	color          color.RGBA
}

// Model defines the interface for a spawnable model template.
// A Model is immutable once built: the registry instantiates copies of it into the
// scene and never mutates the template itself.
// It is produced by the Loader after importing a model file, or built by hand.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Path retrieves the source file the model was loaded from, or "" for hand-built models.
	//
	// Returns:
	//   - string: the source path
	Path() string

	// InitialScale retrieves the local scale an instance spawns with.
	//
	// Returns:
	//   - mgl32.Vec3: the spawn scale
	InitialScale() mgl32.Vec3

	// BoundingRadius retrieves the radius of a sphere enclosing the mesh at unit scale.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Center retrieves the center of the mesh bounds in model space.
	//
	// Returns:
	//   - mgl32.Vec3: the bounds center
	Center() mgl32.Vec3

	// MeshCount returns the number of meshes found in the source file.
	MeshCount() int

	// VertexCount returns the total POSITION element count across all primitives.
	VertexCount() int

	// Color retrieves the display color used when drawing the model overlay.
	//
	// Returns:
	//   - color.RGBA: the color
	Color() color.RGBA
}

var _ Model = &model{}

// NewModel creates a new Model configured with the given options.
// Defaults to unit scale, a bounding radius of 0.5 and an opaque orange color.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		initialScale:   mgl32.Vec3{1, 1, 1},
		boundingRadius: 0.5,
		color:          color.RGBA{R: 255, G: 140, B: 0, A: 255},
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Path() string {
	return m.path
}

func (m *model) InitialScale() mgl32.Vec3 {
	return m.initialScale
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Center() mgl32.Vec3 {
	return m.center
}

func (m *model) MeshCount() int {
	return m.meshCount
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) Color() color.RGBA {
	return m.color
}
