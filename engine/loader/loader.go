package loader

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine/model"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]model.Model
	palette    []color.RGBA
	loaded     int

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching model templates.
// It abstracts the file format (glTF, GLB) behind a generic backend and
// manages a cache of previously loaded templates.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model template
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadAll imports every path in order, stopping at the first failure.
	// The result preserves the order of paths so it can back a model registry.
	//
	// Parameters:
	//   - paths: the model file paths
	//
	// Returns:
	//   - []model.Model: the loaded templates
	//   - error: error naming the first path that failed
	LoadAll(paths []string) ([]model.Model, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key and fallback template name
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache: make(map[string]model.Model),
		palette:    defaultPalette,
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return l.store(path, stem, path, imported), nil
}

func (l *loader) LoadAll(paths []string) ([]model.Model, error) {
	models := make([]model.Model, 0, len(paths))
	for _, p := range paths {
		m, err := l.Load(p)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	if l.backend == nil {
		return nil, fmt.Errorf("no loader backend configured")
	}

	imported, err := l.backend.LoadReader(r, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	return l.store(name, name, "", imported), nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cp := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		cp[k] = v
	}
	return cp
}

// resolveBackend returns the backend able to import the given file.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		if l.backend == nil {
			return nil, fmt.Errorf("no loader backend configured for %s", path)
		}
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %s", path)
	}
}

// store converts an import into a Model, caches it under key and assigns it the next palette color.
func (l *loader) store(key, fallbackName, path string, imported *importedTemplate) model.Model {
	l.mu.Lock()
	defer l.mu.Unlock()

	opts := []model.ModelBuilderOption{
		model.WithName(common.Coalesce(imported.Name, fallbackName)),
		model.WithPath(path),
		model.WithInitialScale(imported.Scale),
		model.WithMeshStats(imported.Meshes, imported.Vertices),
	}
	if imported.HasBounds {
		opts = append(opts,
			model.WithCenter(imported.Min.Add(imported.Max).Mul(0.5)),
			model.WithBoundingRadius(imported.Max.Sub(imported.Min).Len()*0.5),
		)
	}
	if len(l.palette) > 0 {
		opts = append(opts, model.WithColor(l.palette[l.loaded%len(l.palette)]))
	}

	m := model.NewModel(opts...)
	l.modelCache[key] = m
	l.loaded++
	return m
}

// defaultPalette colors templates in load order so switching models is visible in the overlay.
var defaultPalette = []color.RGBA{
	{R: 255, G: 140, B: 0, A: 255},
	{R: 30, G: 144, B: 255, A: 255},
	{R: 50, G: 205, B: 50, A: 255},
	{R: 220, G: 20, B: 60, A: 255},
	{R: 186, G: 85, B: 211, A: 255},
}
