package placement

import (
	"github.com/Carmen-Shannon/oxy-ar/engine/ar"
)

// ResolverBuilderOption is a functional option for configuring a Resolver.
type ResolverBuilderOption func(r *resolver)

// WithFallbackDistance sets the distance along the camera forward used when nothing is hit.
func WithFallbackDistance(distance float32) ResolverBuilderOption {
	return func(r *resolver) {
		r.fallbackDistance = distance
	}
}

// WithTrackableMask sets which trackables the centre ray may hit.
func WithTrackableMask(mask ar.TrackableType) ResolverBuilderOption {
	return func(r *resolver) {
		r.mask = mask
	}
}
