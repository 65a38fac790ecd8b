package model

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithPath is an option builder that records the source file of the Model.
//
// Parameters:
//   - path: the source file path
//
// Returns:
//   - ModelBuilderOption: a function that applies the path option to a model
func WithPath(path string) ModelBuilderOption {
	return func(m *model) {
		m.path = path
	}
}

// WithInitialScale is an option builder that sets the spawn scale of the Model.
//
// Parameters:
//   - scale: the local scale instances spawn with
//
// Returns:
//   - ModelBuilderOption: a function that applies the scale option to a model
func WithInitialScale(scale mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.initialScale = scale
	}
}

// WithBoundingRadius is an option builder that sets the bounding sphere radius of the Model.
// Non-positive values are ignored.
//
// Parameters:
//   - radius: the bounding radius at unit scale
//
// Returns:
//   - ModelBuilderOption: a function that applies the radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		if radius > 0 {
			m.boundingRadius = radius
		}
	}
}

// WithCenter is an option builder that sets the model-space bounds center.
//
// Parameters:
//   - center: the bounds center
//
// Returns:
//   - ModelBuilderOption: a function that applies the center option to a model
func WithCenter(center mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.center = center
	}
}

// WithMeshStats is an option builder that records mesh and vertex counts from the source file.
//
// Parameters:
//   - meshes: number of meshes
//   - vertices: total vertex count
//
// Returns:
//   - ModelBuilderOption: a function that applies the counts to a model
func WithMeshStats(meshes, vertices int) ModelBuilderOption {
	return func(m *model) {
		m.meshCount = meshes
		m.vertexCount = vertices
	}
}

// WithColor is an option builder that sets the overlay display color.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - ModelBuilderOption: a function that applies the color option to a model
func WithColor(c color.RGBA) ModelBuilderOption {
	return func(m *model) {
		m.color = c
	}
}
