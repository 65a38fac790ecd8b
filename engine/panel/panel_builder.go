package panel

// SwitcherBuilderOption is a functional option for configuring a Switcher.
type SwitcherBuilderOption func(s *switcher)

// WithPanels sets the panel flags in index order. Nil flags are skipped.
//
// Parameters:
//   - panels: the panel flags
//
// Returns:
//   - SwitcherBuilderOption: option function to apply
func WithPanels(panels ...Flag) SwitcherBuilderOption {
	return func(s *switcher) {
		for _, p := range panels {
			if p != nil {
				s.panels = append(s.panels, p)
			}
		}
	}
}

// WithPanelNames creates one hidden panel per name, in order.
//
// Parameters:
//   - names: the panel names
//
// Returns:
//   - SwitcherBuilderOption: option function to apply
func WithPanelNames(names ...string) SwitcherBuilderOption {
	return func(s *switcher) {
		for _, n := range names {
			s.panels = append(s.panels, NewFlag(n, false))
		}
	}
}

// WithUIFlag sets the umbrella flag.
//
// Parameters:
//   - ui: the umbrella flag
//
// Returns:
//   - SwitcherBuilderOption: option function to apply
func WithUIFlag(ui Flag) SwitcherBuilderOption {
	return func(s *switcher) {
		s.ui = ui
	}
}
