package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visibility(s Switcher) []bool {
	out := make([]bool, s.Count())
	for i := range out {
		out[i] = s.Visible(i)
	}
	return out
}

func TestSwitchPanel(t *testing.T) {
	t.Parallel()

	ui := NewFlag("ui", false)
	s := NewSwitcher(WithPanelNames("models", "rotate", "capture", "help"), WithUIFlag(ui))

	for i := range s.Count() {
		require.True(t, s.SwitchPanel(i))
		want := make([]bool, s.Count())
		want[i] = true
		assert.Equal(t, want, visibility(s))
		assert.True(t, ui.Visible(), "switching forces the umbrella flag on")
	}

	t.Run("out of range leaves panels unchanged", func(t *testing.T) {
		s.TogglePanel(0, true)
		before := visibility(s)
		ui.SetVisible(false)

		for _, i := range []int{-1, 4, 100} {
			assert.False(t, s.SwitchPanel(i))
			assert.False(t, s.TogglePanel(i, true))
			assert.Equal(t, before, visibility(s))
		}
		assert.False(t, ui.Visible())
	})
}

func TestTogglePanel_Independent(t *testing.T) {
	t.Parallel()

	s := NewSwitcher(WithPanels(NewFlag("a", false), nil, NewFlag("b", true)))
	require.Equal(t, 2, s.Count())

	require.True(t, s.TogglePanel(0, true))
	assert.Equal(t, []bool{true, true}, visibility(s))
	require.True(t, s.TogglePanel(1, false))
	assert.Equal(t, []bool{true, false}, visibility(s))

	assert.Equal(t, "b", s.Panel(1).Name())
	assert.Nil(t, s.Panel(2))
	assert.False(t, s.Visible(7))
}

func TestToggleUIPanelVisibility(t *testing.T) {
	t.Parallel()

	s := NewSwitcher(WithPanelNames("a"))
	require.True(t, s.UI().Visible())
	s.SwitchPanel(0)

	s.ToggleUIPanelVisibility()
	assert.False(t, s.UI().Visible())
	assert.True(t, s.Visible(0), "panel flags survive the umbrella toggle")
	s.ToggleUIPanelVisibility()
	assert.True(t, s.UI().Visible())
}

func TestGroup(t *testing.T) {
	t.Parallel()

	a, b := NewFlag("a", true), NewFlag("b", false)
	g := NewGroup(a, nil, b)
	require.Len(t, g.Elements(), 2)

	g.HideAll()
	assert.False(t, a.Visible())
	assert.False(t, b.Visible())
	g.ShowAll()
	assert.True(t, a.Visible())
	assert.True(t, b.Visible())

	assert.False(t, a.Toggle())
	assert.False(t, a.Visible())
}
