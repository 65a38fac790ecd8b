package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one profiling interval's summary.
type Stats struct {
	FrameRate   float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(p *Profiler)

// WithInterval sets how often stats are computed and logged.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame.
// Logs frame rate, heap usage, allocation rate and GC pauses when the interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FrameRate:   float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}
	s.LastPauseUs, s.MaxPauseUs = p.pauses()

	log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FrameRate, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// pauses returns the last GC pause and the longest pause since the previous interval.
// PauseNs is a circular buffer of the last 256 pauses.
func (p *Profiler) pauses() (last, longest uint64) {
	gcCount := p.memStats.NumGC
	if gcCount == 0 {
		return 0, 0
	}
	last = p.memStats.PauseNs[(gcCount-1)%256] / 1000

	start := p.lastGCCount
	if gcCount-start > 256 {
		start = gcCount - 256
	}
	for i := start; i < gcCount; i++ {
		longest = max(longest, p.memStats.PauseNs[i%256]/1000)
	}
	return last, longest
}

// Last returns the stats from the most recent logged interval.
func (p *Profiler) Last() Stats {
	return p.last
}
