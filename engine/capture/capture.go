package capture

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-ar/engine/gallery"
	"golang.org/x/image/draw"
)

// Pipeline freezes frames of the composited view and hands them to the gallery.
// The capture entry points run on the update thread; encoding and saving run on a worker
// pool so a capture never stalls the frame loop. Every capture is attempted once and
// failures are logged, never retried.
type Pipeline interface {
	// CaptureImage renders one frame offscreen at the current screen size, reads the pixels
	// back and queues them for saving to the image album. The render target is released
	// before returning.
	//
	// Returns:
	//   - error: ErrNoRenderer or ErrPipelineClosed; save failures are reported asynchronously
	CaptureImage() error

	// CapturePhoto arms a screenshot taken at the next EndOfFrame. Several calls within one
	// frame produce a single capture.
	CapturePhoto()

	// EndOfFrame takes an armed screenshot from the presented frame. Call after the frame
	// has been presented.
	EndOfFrame()

	// Armed reports whether a screenshot is waiting for EndOfFrame.
	Armed() bool

	// LastCapture returns the most recent screenshot handed to the gallery, or nil.
	LastCapture() image.Image

	// Flush blocks until every queued save has finished.
	Flush()

	// Close flushes and stops the worker pool. Later captures fail with ErrPipelineClosed.
	Close()
}

type pipeline struct {
	mu sync.Mutex

	gallery     gallery.Gallery
	renderer    FrameRenderer
	framebuffer FramebufferReader

	imageAlbum string
	photoAlbum string
	fileName   string
	tempDir    string
	workers    int
	onResult   func(Result)

	pool   worker.DynamicWorkerPool
	wg     sync.WaitGroup
	taskID int

	// saveMu serialises gallery writes. Encoding runs in parallel across workers.
	saveMu sync.Mutex

	armed       bool
	closed      bool
	lastCapture image.Image
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a capture Pipeline saving into g.
//
// Panics if g is nil.
//
// Parameters:
//   - g: the gallery captures are saved to
//   - options: functional options
//
// Returns:
//   - Pipeline: the pipeline
func NewPipeline(g gallery.Gallery, options ...PipelineBuilderOption) Pipeline {
	if g == nil {
		panic("capture: NewPipeline requires a non-nil Gallery")
	}
	p := &pipeline{
		gallery:    g,
		imageAlbum: DefaultImageAlbum,
		photoAlbum: DefaultPhotoAlbum,
		fileName:   DefaultFileName,
		tempDir:    os.TempDir(),
		workers:    2,
	}
	for _, option := range options {
		option(p)
	}
	p.pool = worker.NewDynamicWorkerPool(p.workers, 16, time.Second)
	return p
}

func (p *pipeline) CaptureImage() error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrPipelineClosed
	}
	if p.renderer == nil {
		return ErrNoRenderer
	}

	readback := p.renderOffscreen()
	log.Printf("[Capture] rendered %dx%d offscreen frame", readback.Bounds().Dx(), readback.Bounds().Dy())

	p.submit(func() Result {
		res := Result{Strategy: StrategyRenderTexture}
		p.saveMu.Lock()
		defer p.saveMu.Unlock()
		res.Path, res.Err = p.gallery.SaveImage(readback, p.imageAlbum, p.fileName)
		return res
	})
	return nil
}

// renderOffscreen redirects the renderer into a screen sized target for one frame and
// returns an opaque copy of the result.
func (p *pipeline) renderOffscreen() *image.RGBA {
	w, h := p.renderer.ScreenSize()
	bounds := image.Rect(0, 0, max(w, 1), max(h, 1))

	target := image.NewRGBA(bounds)
	p.renderer.SetTarget(target)
	defer p.renderer.SetTarget(nil)
	p.renderer.Render()

	readback := image.NewRGBA(bounds)
	draw.Draw(readback, bounds, target, bounds.Min, draw.Src)
	for i := 3; i < len(readback.Pix); i += 4 {
		readback.Pix[i] = 0xff
	}
	return readback
}

func (p *pipeline) CapturePhoto() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		log.Printf("[Capture] WARN: photo requested after close")
		return
	}
	p.armed = true
}

func (p *pipeline) EndOfFrame() {
	p.mu.Lock()
	if !p.armed {
		p.mu.Unlock()
		return
	}
	p.armed = false
	p.mu.Unlock()

	var frame image.Image
	if p.framebuffer != nil {
		frame = p.framebuffer.ReadFramebuffer()
	}
	if frame == nil {
		p.report(Result{Strategy: StrategyScreenshot, Err: ErrNoFramebuffer})
		return
	}

	snapshot := image.NewRGBA(frame.Bounds())
	draw.Draw(snapshot, snapshot.Bounds(), frame, frame.Bounds().Min, draw.Src)

	p.submit(func() Result {
		return p.saveScreenshot(snapshot)
	})
}

// saveScreenshot encodes the snapshot to a private temp file and hands the file to the gallery.
func (p *pipeline) saveScreenshot(img image.Image) Result {
	res := Result{Strategy: StrategyScreenshot}

	tmp, err := os.CreateTemp(p.tempDir, "capture-*.png")
	if err != nil {
		res.Err = fmt.Errorf("failed to create temp file: %w", err)
		return res
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		res.Err = fmt.Errorf("failed to encode screenshot: %w", err)
		return res
	}
	if err := tmp.Close(); err != nil {
		res.Err = fmt.Errorf("failed to write screenshot: %w", err)
		return res
	}

	p.saveMu.Lock()
	if p.gallery.IsBusy() {
		p.saveMu.Unlock()
		res.Err = gallery.ErrGalleryBusy
		return res
	}
	res.Path, res.Err = p.gallery.SaveFile(tmp.Name(), p.photoAlbum, p.fileName)
	p.saveMu.Unlock()
	if res.Err != nil {
		return res
	}

	p.mu.Lock()
	p.lastCapture = img
	p.mu.Unlock()
	return res
}

func (p *pipeline) Armed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.armed
}

func (p *pipeline) LastCapture() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastCapture
}

func (p *pipeline) Flush() {
	p.wg.Wait()
}

func (p *pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.armed = false
	p.mu.Unlock()

	p.wg.Wait()
	p.pool.Stop()
}

// submit queues a save on the worker pool. The WaitGroup backs Flush.
func (p *pipeline) submit(save func() Result) {
	p.mu.Lock()
	id := p.taskID
	p.taskID++
	p.mu.Unlock()

	p.wg.Add(1)
	p.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer p.wg.Done()
			res := save()
			p.report(res)
			return res, res.Err
		},
	})
}

// report logs a result and forwards it to the result callback.
func (p *pipeline) report(res Result) {
	switch {
	case res.Err == nil:
		log.Printf("[Capture] %s saved to %s", res.Strategy, res.Path)
	case res.Err == gallery.ErrGalleryBusy:
		log.Printf("[Capture] WARN: gallery busy, %s discarded", res.Strategy)
	default:
		log.Printf("[Capture] ERROR: %s failed: %v", res.Strategy, res.Err)
	}
	if p.onResult != nil {
		p.onResult(res)
	}
}
