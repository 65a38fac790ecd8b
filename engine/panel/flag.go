package panel

import (
	"sync/atomic"
)

// Flag is a named visibility flag for one UI element.
type Flag interface {
	Name() string
	Visible() bool
	SetVisible(visible bool)
	// Toggle flips the flag and returns the new value.
	Toggle() bool
}

type flag struct {
	name    string
	visible atomic.Bool
}

var _ Flag = &flag{}

// NewFlag creates a Flag.
//
// Parameters:
//   - name: the element name
//   - visible: the initial visibility
//
// Returns:
//   - Flag: the new flag
func NewFlag(name string, visible bool) Flag {
	f := &flag{name: name}
	f.visible.Store(visible)
	return f
}

func (f *flag) Name() string {
	return f.name
}

func (f *flag) Visible() bool {
	return f.visible.Load()
}

func (f *flag) SetVisible(visible bool) {
	f.visible.Store(visible)
}

func (f *flag) Toggle() bool {
	for {
		old := f.visible.Load()
		if f.visible.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
