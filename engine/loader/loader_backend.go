package loader

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// importedTemplate is the format-independent result of a backend import.
type importedTemplate struct {
	// Name is the root node name, empty when the file does not provide one.
	Name string
	// Scale is the root node's local scale.
	Scale mgl32.Vec3
	// Min and Max are the model-space bounds across every POSITION attribute.
	Min, Max mgl32.Vec3
	// HasBounds is false when no mesh carried position data.
	HasBounds bool
	// Meshes is the number of meshes in the file.
	Meshes int
	// Vertices is the total POSITION element count.
	Vertices int
}

// loaderBackend defines the generic interface for importing model templates from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a template import from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *importedTemplate: the imported template data
	//   - error: error if loading fails
	Load(path string) (*importedTemplate, error)

	// LoadReader imports a template from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data, false for text-based formats
	//
	// Returns:
	//   - *importedTemplate: the imported template data
	//   - error: error if loading fails
	LoadReader(r io.Reader, isGLB bool) (*importedTemplate, error)
}
