package gallery

import (
	"image/png"
)

// GalleryBuilderOption is a functional option for configuring a Gallery.
type GalleryBuilderOption func(g *gallery)

// WithUniqueNames controls whether saved file names get a uuid suffix. On by default;
// without it a save with a repeated name replaces the earlier file.
func WithUniqueNames(unique bool) GalleryBuilderOption {
	return func(g *gallery) {
		g.uniqueNames = unique
	}
}

// WithCompression sets the PNG compression level used by SaveImage.
func WithCompression(level png.CompressionLevel) GalleryBuilderOption {
	return func(g *gallery) {
		g.encoder = &png.Encoder{CompressionLevel: level}
	}
}
