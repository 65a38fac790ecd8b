//go:build gocv

package camera_feed

import (
	"fmt"
	"image"
	"log"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// maxProbedDevices is how many capture indices Devices probes.
const maxProbedDevices = 4

type gocvProvider struct {
	probe int
}

var _ Provider = &gocvProvider{}

// NewDeviceProvider returns the Provider backed by OpenCV video capture. Devices are named
// by their capture index.
//
// Returns:
//   - Provider: the provider
func NewDeviceProvider() Provider {
	return &gocvProvider{probe: maxProbedDevices}
}

func (p *gocvProvider) Devices() []DeviceInfo {
	var out []DeviceInfo
	for i := 0; i < p.probe; i++ {
		vc, err := gocv.OpenVideoCapture(i)
		if err != nil {
			continue
		}
		if vc.IsOpened() {
			out = append(out, DeviceInfo{Name: strconv.Itoa(i)})
		}
		vc.Close()
	}
	return out
}

func (p *gocvProvider) Open(name string, width, height, fps int) (Device, error) {
	id, err := strconv.Atoi(name)
	if err != nil {
		return nil, fmt.Errorf("invalid capture index %q: %w", name, err)
	}
	vc, err := gocv.OpenVideoCapture(id)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture %d: %w", id, err)
	}
	vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	vc.Set(gocv.VideoCaptureFPS, float64(fps))

	d := &gocvDevice{
		name: name,
		vc:   vc,
		done: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.readLoop()
	return d, nil
}

// gocvDevice reads frames on its own goroutine and keeps the latest one.
type gocvDevice struct {
	mu sync.RWMutex

	name   string
	vc     *gocv.VideoCapture
	latest image.Image
	width  int
	height int

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

var _ Device = &gocvDevice{}

func (d *gocvDevice) readLoop() {
	defer d.wg.Done()

	mat := gocv.NewMat()
	defer mat.Close()

	for {
		select {
		case <-d.done:
			return
		default:
		}

		if ok := d.vc.Read(&mat); !ok || mat.Empty() {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		img, err := mat.ToImage()
		if err != nil {
			log.Printf("[CameraFeed] failed to convert frame from %q: %v", d.name, err)
			continue
		}

		d.mu.Lock()
		d.latest = img
		d.width = mat.Cols()
		d.height = mat.Rows()
		d.mu.Unlock()
	}
}

func (d *gocvDevice) Name() string {
	return d.name
}

func (d *gocvDevice) Width() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.width
}

func (d *gocvDevice) Height() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.height
}

// RotationAngle is always 0: desktop capture devices deliver upright frames.
func (d *gocvDevice) RotationAngle() int {
	return 0
}

func (d *gocvDevice) Frame() image.Image {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.latest
}

func (d *gocvDevice) Stop() error {
	var err error
	d.stopOnce.Do(func() {
		close(d.done)
		d.wg.Wait()
		err = d.vc.Close()
	})
	return err
}
