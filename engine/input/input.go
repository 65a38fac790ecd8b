// Package input adapts platform pointer events to the per-frame touch model the
// interaction controllers consume.
package input

import (
	"github.com/Carmen-Shannon/oxy-ar/common"
)

// TouchSource reports the touches active during the current frame.
type TouchSource interface {
	// TouchCount returns the number of touches this frame.
	//
	// Returns:
	//   - int: the touch count
	TouchCount() int

	// Touch returns touch i of the current frame. i must be in [0, TouchCount()).
	//
	// Parameters:
	//   - i: the touch index
	//
	// Returns:
	//   - common.Touch: the touch snapshot
	Touch(i int) common.Touch
}

// Frame is a fixed set of touches. It is the snapshot type the Emulator publishes
// and a convenient TouchSource for scripted input.
type Frame []common.Touch

var _ TouchSource = Frame(nil)

func (f Frame) TouchCount() int {
	return len(f)
}

func (f Frame) Touch(i int) common.Touch {
	return f[i]
}
