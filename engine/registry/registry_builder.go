package registry

import (
	"github.com/Carmen-Shannon/oxy-ar/engine/game_object"
	"github.com/Carmen-Shannon/oxy-ar/engine/model"
)

// RegistryBuilderOption is a functional option for configuring a Registry.
type RegistryBuilderOption func(r *registry)

// WithTemplates sets the ordered template list. Indices passed to SwitchModel refer to this order.
//
// Parameters:
//   - templates: the model templates
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithTemplates(templates ...model.Model) RegistryBuilderOption {
	return func(r *registry) {
		r.templates = append([]model.Model(nil), templates...)
	}
}

// WithAnchor sets the node spawned models are attached under and take their pose from.
//
// Parameters:
//   - anchor: the parent anchor node
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithAnchor(anchor game_object.GameObject) RegistryBuilderOption {
	return func(r *registry) {
		r.anchor = anchor
	}
}
