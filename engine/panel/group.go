package panel

import (
	"sync"
)

// Group is a set of UI elements hidden and shown together, used to clear the overlay
// before a capture.
type Group interface {
	// Add appends elements to the group. Nil elements are ignored.
	Add(elements ...Flag)
	HideAll()
	ShowAll()
	Elements() []Flag
}

type group struct {
	mu       sync.Mutex
	elements []Flag
}

var _ Group = &group{}

// NewGroup creates a Group holding elements.
//
// Parameters:
//   - elements: the initial elements, nil entries ignored
//
// Returns:
//   - Group: the new group
func NewGroup(elements ...Flag) Group {
	g := &group{}
	g.Add(elements...)
	return g
}

func (g *group) Add(elements ...Flag) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range elements {
		if e != nil {
			g.elements = append(g.elements, e)
		}
	}
}

func (g *group) HideAll() {
	g.setAll(false)
}

func (g *group) ShowAll() {
	g.setAll(true)
}

func (g *group) setAll(visible bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range g.elements {
		e.SetVisible(visible)
	}
}

func (g *group) Elements() []Flag {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Flag(nil), g.elements...)
}
