package camera_feed

import (
	"fmt"
	"image"
	"image/color"
	"sync"
)

// warmupSize is the frame edge a device reports before it delivers real frames.
const warmupSize = 16

type syntheticProvider struct {
	devices     []DeviceInfo
	warmupPolls int
	rotation    int
}

var _ Provider = &syntheticProvider{}

// NewSyntheticProvider creates a Provider with one virtual camera producing a moving test
// pattern. Used where no real camera is available and in tests.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Provider: the provider
func NewSyntheticProvider(options ...SyntheticBuilderOption) Provider {
	p := &syntheticProvider{
		devices:     []DeviceInfo{{Name: "synthetic"}},
		warmupPolls: 3,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *syntheticProvider) Devices() []DeviceInfo {
	return append([]DeviceInfo(nil), p.devices...)
}

func (p *syntheticProvider) Open(name string, width, height, fps int) (Device, error) {
	for _, d := range p.devices {
		if d.Name == name {
			return &syntheticDevice{
				name:        name,
				width:       width,
				height:      height,
				warmupPolls: p.warmupPolls,
				rotation:    p.rotation,
			}, nil
		}
	}
	return nil, fmt.Errorf("unknown device %q", name)
}

type syntheticDevice struct {
	mu sync.Mutex

	name        string
	width       int
	height      int
	rotation    int
	warmupPolls int
	polls       int
	phase       int
	stopped     bool
}

var _ Device = &syntheticDevice{}

func (d *syntheticDevice) Name() string {
	return d.name
}

// Width counts as a poll. The device warms up after warmupPolls polls; a negative
// warmupPolls never warms up.
func (d *syntheticDevice) Width() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.polls++
	if !d.ready() {
		return warmupSize
	}
	return d.width
}

func (d *syntheticDevice) Height() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready() {
		return warmupSize
	}
	return d.height
}

func (d *syntheticDevice) RotationAngle() int {
	return d.rotation
}

func (d *syntheticDevice) Frame() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready() {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	bar := d.phase % d.width
	d.phase += 4
	for y := 0; y < d.height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < d.width; x++ {
			c := color.RGBA{R: uint8(x * 255 / d.width), G: uint8(y * 255 / d.height), B: 96, A: 255}
			if x >= bar && x < bar+8 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}

func (d *syntheticDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	return nil
}

// ready reports whether warm-up finished. Caller must hold d.mu.
func (d *syntheticDevice) ready() bool {
	return !d.stopped && d.warmupPolls >= 0 && d.polls > d.warmupPolls
}

// SyntheticBuilderOption is a functional option for configuring the synthetic Provider.
type SyntheticBuilderOption func(p *syntheticProvider)

// WithNoDevices makes the provider enumerate no devices.
func WithNoDevices() SyntheticBuilderOption {
	return func(p *syntheticProvider) {
		p.devices = nil
	}
}

// WithWarmupPolls sets how many dimension polls pass before frames become valid.
// A negative value never warms up.
func WithWarmupPolls(n int) SyntheticBuilderOption {
	return func(p *syntheticProvider) {
		p.warmupPolls = n
	}
}

// WithRotationAngle sets the rotation angle the virtual device reports.
func WithRotationAngle(degrees int) SyntheticBuilderOption {
	return func(p *syntheticProvider) {
		p.rotation = degrees
	}
}
