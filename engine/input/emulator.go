package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Button identifies the pointer button driving an emulated gesture.
type Button int

const (
	// ButtonPrimary emulates a single finger.
	ButtonPrimary Button = iota
	// ButtonSecondary emulates a two-finger pinch centred on the press point.
	// Dragging horizontally widens or narrows the pinch.
	ButtonSecondary
)

const (
	primaryFinger    = 0
	pinchFingerLeft  = 1
	pinchFingerRight = 2
)

// Emulator turns desktop pointer events into touches.
// Pointer callbacks may arrive at any time; Advance publishes the touches for the next frame.
type Emulator interface {
	TouchSource

	// PointerDown records a button press at window coordinates (origin top-left).
	//
	// Parameters:
	//   - button: the pressed button
	//   - x, y: the pointer position in window pixels
	PointerDown(button Button, x, y float32)

	// PointerMove records pointer motion in window coordinates.
	//
	// Parameters:
	//   - x, y: the pointer position in window pixels
	PointerMove(x, y float32)

	// PointerUp records a button release.
	//
	// Parameters:
	//   - button: the released button
	PointerUp(button Button)

	// SetScreenHeight sets the window height used to flip y into screen space.
	//
	// Parameters:
	//   - height: the window height in pixels
	SetScreenHeight(height int)

	// Advance builds the touch snapshot for the coming frame. A touch reports Began at its
	// press point on its first frame, Moved or Stationary while held, Ended on the frame after release and is
	// dropped afterwards.
	Advance()
}

type finger struct {
	id       int
	pos      mgl32.Vec2
	last     mgl32.Vec2
	began    bool
	released bool
}

type emulator struct {
	mu sync.Mutex

	screenHeight float32
	pinchSpread  float32

	pointer    mgl32.Vec2
	pinchPress mgl32.Vec2
	fingers    []*finger

	frame Frame
}

var _ Emulator = &emulator{}

// NewEmulator creates a pointer-to-touch Emulator.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Emulator: the new emulator
func NewEmulator(options ...EmulatorBuilderOption) Emulator {
	e := &emulator{
		screenHeight: 720,
		pinchSpread:  100,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *emulator) TouchCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.frame)
}

func (e *emulator) Touch(i int) common.Touch {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame[i]
}

func (e *emulator) SetScreenHeight(height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.screenHeight = float32(height)
}

func (e *emulator) PointerDown(button Button, x, y float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.toScreen(x, y)
	e.pointer = p

	switch button {
	case ButtonPrimary:
		e.press(primaryFinger, p)
	case ButtonSecondary:
		e.pinchPress = p
		half := mgl32.Vec2{e.pinchSpread * 0.5, 0}
		e.press(pinchFingerLeft, p.Sub(half))
		e.press(pinchFingerRight, p.Add(half))
	}
}

func (e *emulator) PointerMove(x, y float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.toScreen(x, y)
	e.pointer = p

	if f := e.find(primaryFinger); f != nil && !f.released {
		f.pos = p
	}

	left, right := e.find(pinchFingerLeft), e.find(pinchFingerRight)
	if left != nil && right != nil && !left.released && !right.released {
		half := e.pinchSpread*0.5 + (p.X() - e.pinchPress.X())
		if half < 1 {
			half = 1
		}
		left.pos = mgl32.Vec2{e.pinchPress.X() - half, e.pinchPress.Y()}
		right.pos = mgl32.Vec2{e.pinchPress.X() + half, e.pinchPress.Y()}
	}
}

func (e *emulator) PointerUp(button Button) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch button {
	case ButtonPrimary:
		e.release(primaryFinger)
	case ButtonSecondary:
		e.release(pinchFingerLeft)
		e.release(pinchFingerRight)
	}
}

func (e *emulator) Advance() {
	e.mu.Lock()
	defer e.mu.Unlock()

	frame := make(Frame, 0, len(e.fingers))
	kept := e.fingers[:0]
	for _, f := range e.fingers {
		t := common.Touch{FingerID: f.id, Position: f.pos}
		switch {
		case f.began:
			// last still holds the press point; motion since then surfaces as Moved next frame.
			t.Phase = common.TouchBegan
			t.Position = f.last
			f.began = false
			kept = append(kept, f)
			frame = append(frame, t)
			continue
		case f.released:
			t.Phase = common.TouchEnded
		case f.pos != f.last:
			t.Phase = common.TouchMoved
			kept = append(kept, f)
		default:
			t.Phase = common.TouchStationary
			kept = append(kept, f)
		}
		f.last = f.pos
		frame = append(frame, t)
	}
	e.fingers = kept
	e.frame = frame
}

// press adds a finger or restarts one that was released before its end was published.
// Caller must hold e.mu.
func (e *emulator) press(id int, p mgl32.Vec2) {
	if f := e.find(id); f != nil {
		if !f.released {
			return
		}
		*f = finger{id: id, pos: p, last: p, began: true}
		return
	}

	f := &finger{id: id, pos: p, last: p, began: true}
	i := 0
	for i < len(e.fingers) && e.fingers[i].id < id {
		i++
	}
	e.fingers = append(e.fingers, nil)
	copy(e.fingers[i+1:], e.fingers[i:])
	e.fingers[i] = f
}

// release marks a finger lifted. Caller must hold e.mu.
func (e *emulator) release(id int) {
	if f := e.find(id); f != nil {
		f.released = true
	}
}

// find returns the finger with id, or nil. Caller must hold e.mu.
func (e *emulator) find(id int) *finger {
	for _, f := range e.fingers {
		if f.id == id {
			return f
		}
	}
	return nil
}

// toScreen flips window coordinates into bottom-left origin screen coordinates.
func (e *emulator) toScreen(x, y float32) mgl32.Vec2 {
	return mgl32.Vec2{x, e.screenHeight - y}
}
