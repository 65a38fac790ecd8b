package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-ar/engine/profiler"
	"github.com/Carmen-Shannon/oxy-ar/engine/window"
)

// Updater is advanced once per engine step with the frame delta in seconds.
type Updater interface {
	Update(dt float32)
}

// UpdaterFunc adapts a function to the Updater interface.
type UpdaterFunc func(dt float32)

// Update calls f(dt).
func (f UpdaterFunc) Update(dt float32) {
	f(dt)
}

// engine implements the Engine interface.
// All frame work runs on a single update thread: either the window's message loop or a ticker.
type engine struct {
	mu sync.Mutex

	quitChannel chan struct{}
	quitOnce    sync.Once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	updaters       []Updater
	renderCallback func(deltaTime float32)

	commands   []func()
	endOfFrame []func()
	teardown   []func()

	elapsed time.Duration
	frame   uint64
}

// Engine is the main entry point for the engine.
// It owns the frame loop and the ordering of work inside a frame.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// AddUpdater appends an Updater. Updaters run in registration order each step.
	//
	// Parameters:
	//   - u: the updater
	AddUpdater(u Updater)

	// SetRenderCallback registers the function called each step after the updaters.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// Dispatch queues fn to run at the start of the next step on the update thread.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the command
	Dispatch(fn func())

	// AtEndOfFrame queues fn to run once after the current or next frame has rendered.
	//
	// Parameters:
	//   - fn: the hook
	AtEndOfFrame(fn func())

	// OnTeardown registers fn to run after the loop exits. Hooks run in reverse order.
	//
	// Parameters:
	//   - fn: the hook
	OnTeardown(fn func())

	// Step advances one frame: queued commands, updaters, render callback, end-of-frame
	// hooks, then the profiler.
	//
	// Parameters:
	//   - dt: the frame delta in seconds
	Step(dt float32)

	// Elapsed returns the accumulated engine time.
	//
	// Returns:
	//   - time.Duration: sum of every step's delta
	Elapsed() time.Duration

	// Frame returns the number of completed steps.
	//
	// Returns:
	//   - uint64: the frame counter
	Frame() uint64

	// Run drives Step at the tick rate until the window closes or Quit is called,
	// then runs the teardown hooks.
	Run()

	// Quit stops the loop. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:    make(chan struct{}),
		profiler:       profiler.NewProfiler(),
		engineTickRate: time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.mu.Lock()
	e.engineTickRate = time.Duration(float64(time.Second) / fps)
	e.mu.Unlock()
}

func (e *engine) AddUpdater(u Updater) {
	if u == nil {
		return
	}
	e.updaters = append(e.updaters, u)
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.commands = append(e.commands, fn)
	e.mu.Unlock()
}

func (e *engine) AtEndOfFrame(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.endOfFrame = append(e.endOfFrame, fn)
	e.mu.Unlock()
}

func (e *engine) OnTeardown(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.teardown = append(e.teardown, fn)
	e.mu.Unlock()
}

func (e *engine) Step(dt float32) {
	e.mu.Lock()
	commands := e.commands
	e.commands = nil
	e.elapsed += time.Duration(float64(dt) * float64(time.Second))
	e.mu.Unlock()

	for _, cmd := range commands {
		cmd()
	}

	for _, u := range e.updaters {
		u.Update(dt)
	}

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	e.mu.Lock()
	hooks := e.endOfFrame
	e.endOfFrame = nil
	e.frame++
	e.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsed
}

func (e *engine) Frame() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

func (e *engine) Run() {
	if e.window != nil {
		e.runWindow()
	} else {
		e.runTicker()
	}

	e.mu.Lock()
	hooks := e.teardown
	e.teardown = nil
	e.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
	log.Printf("[Engine] stopped after %d frames", e.Frame())
}

// runWindow steps on the window's message loop, pacing to the tick rate. The window is
// closed when the loop ends.
func (e *engine) runWindow() {
	last := time.Now()
	closed := false
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			if !closed {
				closed = true
				e.closeWindow()
			}
			return
		default:
		}

		e.mu.Lock()
		tick := e.engineTickRate
		e.mu.Unlock()

		if wait := tick - time.Since(last); wait > 0 {
			time.Sleep(wait)
		}
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		e.safeStep(dt)
	})
	e.window.ProcessMessages()
	e.Quit()
	if !closed {
		e.closeWindow()
	}
}

func (e *engine) closeWindow() {
	if err := e.window.Close(); err != nil {
		log.Printf("[Engine] WARN: failed to close window: %v", err)
	}
}

// runTicker steps on a ticker until Quit.
func (e *engine) runTicker() {
	e.mu.Lock()
	tick := e.engineTickRate
	e.mu.Unlock()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			e.safeStep(dt)

			e.mu.Lock()
			if e.engineTickRate != tick {
				tick = e.engineTickRate
				ticker.Reset(tick)
			}
			e.mu.Unlock()
		}
	}
}

// safeStep runs a step, recovering a panic by logging it and quitting.
func (e *engine) safeStep(dt float32) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] ERROR: frame %d panicked: %v", e.Frame(), r)
			e.Quit()
		}
	}()
	e.Step(dt)
}

// Quit signals the loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}
