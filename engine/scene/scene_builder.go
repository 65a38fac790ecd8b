package scene

import (
	"github.com/Carmen-Shannon/oxy-ar/common"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithAnchor registers a named anchor node during scene construction.
//
// Parameters:
//   - name: the anchor name
//   - pose: the anchor world pose
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAnchor(name string, pose common.Pose) SceneBuilderOption {
	return func(s *scene) {
		s.addAnchor(name, pose)
	}
}
