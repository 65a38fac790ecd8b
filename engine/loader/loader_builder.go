package loader

import (
	"image/color"

	"github.com/Carmen-Shannon/oxy-ar/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

// WithPalette is an option builder that sets the colors assigned to templates in load order.
// An empty palette keeps the model default color.
//
// Parameters:
//   - colors: the palette
//
// Returns:
//   - LoaderBuilderOption: a function that applies the palette option to a loader
func WithPalette(colors ...color.RGBA) LoaderBuilderOption {
	return func(l *loader) {
		l.palette = colors
	}
}
