package panel

import (
	"github.com/Carmen-Shannon/oxy-ar/common"
)

// Switcher shows one of a set of mutually exclusive panels at a time and owns the umbrella
// flag gating the whole UI overlay. Out-of-range indices are ignored.
type Switcher interface {
	// SwitchPanel hides every panel, shows panel index and forces the umbrella flag on.
	//
	// Parameters:
	//   - index: the panel to show
	//
	// Returns:
	//   - bool: false if index is out of range and nothing changed
	SwitchPanel(index int) bool

	// TogglePanel sets one panel's visibility without touching the others.
	//
	// Parameters:
	//   - index: the panel
	//   - show: the new visibility
	//
	// Returns:
	//   - bool: false if index is out of range
	TogglePanel(index int, show bool) bool

	// ToggleUIPanelVisibility flips the umbrella flag. Panel flags are unchanged.
	ToggleUIPanelVisibility()

	// Visible reports whether panel index is visible. Out-of-range indices report false.
	Visible(index int) bool

	// Count returns the number of panels.
	Count() int

	// Panel returns panel index, or nil when out of range.
	Panel(index int) Flag

	// UI returns the umbrella flag.
	UI() Flag
}

type switcher struct {
	panels []Flag
	ui     Flag
}

var _ Switcher = &switcher{}

// NewSwitcher creates a panel Switcher. Without WithUIFlag the umbrella flag starts visible.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Switcher: the new switcher
func NewSwitcher(options ...SwitcherBuilderOption) Switcher {
	s := &switcher{}
	for _, option := range options {
		option(s)
	}
	if s.ui == nil {
		s.ui = NewFlag("ui", true)
	}
	return s
}

func (s *switcher) SwitchPanel(index int) bool {
	if !common.InRange(index, len(s.panels)) {
		return false
	}
	for _, p := range s.panels {
		p.SetVisible(false)
	}
	s.panels[index].SetVisible(true)
	s.ui.SetVisible(true)
	return true
}

func (s *switcher) TogglePanel(index int, show bool) bool {
	if !common.InRange(index, len(s.panels)) {
		return false
	}
	s.panels[index].SetVisible(show)
	return true
}

func (s *switcher) ToggleUIPanelVisibility() {
	s.ui.Toggle()
}

func (s *switcher) Visible(index int) bool {
	if !common.InRange(index, len(s.panels)) {
		return false
	}
	return s.panels[index].Visible()
}

func (s *switcher) Count() int {
	return len(s.panels)
}

func (s *switcher) Panel(index int) Flag {
	if !common.InRange(index, len(s.panels)) {
		return nil
	}
	return s.panels[index]
}

func (s *switcher) UI() Flag {
	return s.ui
}
