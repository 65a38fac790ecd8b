package camera_feed

import (
	"sync"
)

type staticPermissions struct {
	mu sync.Mutex

	granted    map[string]bool
	deny       bool
	grantAfter int
	requested  map[string]int
}

var _ PermissionBroker = &staticPermissions{}

// NewStaticPermissions creates a PermissionBroker for hosts without a permission system.
// By default every requested permission is granted on the first poll after the request.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - PermissionBroker: the broker
func NewStaticPermissions(options ...PermissionsBuilderOption) PermissionBroker {
	p := &staticPermissions{
		granted:   make(map[string]bool),
		requested: make(map[string]int),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *staticPermissions) HasPermission(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.granted[name] {
		return true
	}
	polls, ok := p.requested[name]
	if !ok || p.deny {
		return false
	}
	polls++
	p.requested[name] = polls
	if polls > p.grantAfter {
		p.granted[name] = true
	}
	return p.granted[name]
}

func (p *staticPermissions) RequestPermission(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.requested[name]; !ok {
		p.requested[name] = 0
	}
}

// PermissionsBuilderOption is a functional option for configuring a static PermissionBroker.
type PermissionsBuilderOption func(p *staticPermissions)

// WithGranted grants the named permissions up front.
func WithGranted(names ...string) PermissionsBuilderOption {
	return func(p *staticPermissions) {
		for _, n := range names {
			p.granted[n] = true
		}
	}
}

// WithDenied makes every request go unanswered.
func WithDenied() PermissionsBuilderOption {
	return func(p *staticPermissions) {
		p.deny = true
	}
}

// WithGrantAfterPolls grants a requested permission only after it has been polled n times.
func WithGrantAfterPolls(n int) PermissionsBuilderOption {
	return func(p *staticPermissions) {
		p.grantAfter = n
	}
}
