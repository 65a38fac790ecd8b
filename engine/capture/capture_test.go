package capture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Carmen-Shannon/oxy-ar/engine/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	w, h    int
	target  *image.RGBA
	targets []*image.RGBA
	renders int
}

func (r *fakeRenderer) ScreenSize() (int, int) { return r.w, r.h }

func (r *fakeRenderer) SetTarget(target *image.RGBA) {
	r.target = target
	r.targets = append(r.targets, target)
}

func (r *fakeRenderer) Render() {
	r.renders++
	if r.target == nil {
		return
	}
	for i := 0; i < len(r.target.Pix); i += 4 {
		r.target.Pix[i], r.target.Pix[i+1], r.target.Pix[i+2], r.target.Pix[i+3] = 10, 20, 30, 128
	}
}

type fakeFramebuffer struct {
	frame image.Image
	reads int
}

func (f *fakeFramebuffer) ReadFramebuffer() image.Image {
	f.reads++
	return f.frame
}

type busyGallery struct {
	gallery.Gallery
	saves atomic.Int32
}

func (g *busyGallery) IsBusy() bool { return true }

func (g *busyGallery) SaveFile(path, album, name string) (string, error) {
	g.saves.Add(1)
	return g.Gallery.SaveFile(path, album, name)
}

// racingGallery reports idle but rejects the save, as when another writer claims it first.
type racingGallery struct {
	gallery.Gallery
}

func (g *racingGallery) IsBusy() bool { return false }

func (g *racingGallery) SaveFile(path, album, name string) (string, error) {
	return "", gallery.ErrGalleryBusy
}

type results struct {
	mu  sync.Mutex
	all []Result
}

func (r *results) add(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, res)
}

func (r *results) list() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.all...)
}

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestCaptureImage_SavesOpaqueOffscreenFrame(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	r := &fakeRenderer{w: 8, h: 4}
	var got results
	p := NewPipeline(gallery.NewGallery(root), WithRenderer(r), WithResultCallback(got.add))
	defer p.Close()

	require.NoError(t, p.CaptureImage())
	p.Flush()

	require.Len(t, r.targets, 2)
	assert.NotNil(t, r.targets[0])
	assert.Nil(t, r.targets[1], "render target must be released")
	assert.Equal(t, 1, r.renders)

	res := got.list()
	require.Len(t, res, 1)
	require.NoError(t, res[0].Err)
	assert.Equal(t, StrategyRenderTexture, res[0].Strategy)
	assert.Equal(t, filepath.Join(root, DefaultImageAlbum), filepath.Dir(res[0].Path))

	img := decode(t, res[0].Path)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, color.RGBAModel.Convert(img.At(3, 2)))
}

func TestCaptureImage_WithoutRenderer(t *testing.T) {
	t.Parallel()

	p := NewPipeline(gallery.NewGallery(t.TempDir()))
	defer p.Close()
	assert.ErrorIs(t, p.CaptureImage(), ErrNoRenderer)
}

func TestCapturePhoto_CollapsesWithinFrame(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	tmp := t.TempDir()
	fb := &fakeFramebuffer{frame: solidFrame(6, 6, color.RGBA{200, 0, 0, 255})}
	var got results
	p := NewPipeline(gallery.NewGallery(root),
		WithFramebuffer(fb),
		WithTempDir(tmp),
		WithResultCallback(got.add),
	)
	defer p.Close()

	assert.Nil(t, p.LastCapture())
	p.CapturePhoto()
	p.CapturePhoto()
	p.CapturePhoto()
	assert.True(t, p.Armed())

	p.EndOfFrame()
	p.EndOfFrame()
	p.Flush()

	assert.False(t, p.Armed())
	assert.Equal(t, 1, fb.reads)

	res := got.list()
	require.Len(t, res, 1)
	require.NoError(t, res[0].Err)
	assert.Equal(t, StrategyScreenshot, res[0].Strategy)
	assert.Equal(t, filepath.Join(root, DefaultPhotoAlbum), filepath.Dir(res[0].Path))
	assert.Equal(t, color.RGBA{200, 0, 0, 255}, color.RGBAModel.Convert(decode(t, res[0].Path).At(1, 1)))

	require.NotNil(t, p.LastCapture())
	assert.Equal(t, fb.frame.Bounds(), p.LastCapture().Bounds())

	staged, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, staged, "staging file must be removed")
}

func TestCapturePhoto_BusyGalleryDiscards(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	g := &busyGallery{Gallery: gallery.NewGallery(root)}
	fb := &fakeFramebuffer{frame: solidFrame(2, 2, color.RGBA{0, 0, 255, 255})}
	var got results
	p := NewPipeline(g, WithFramebuffer(fb), WithTempDir(t.TempDir()), WithResultCallback(got.add))
	defer p.Close()

	p.CapturePhoto()
	p.EndOfFrame()
	p.Flush()

	res := got.list()
	require.Len(t, res, 1)
	assert.ErrorIs(t, res[0].Err, gallery.ErrGalleryBusy)
	assert.Zero(t, g.saves.Load())
	assert.Nil(t, p.LastCapture(), "aborted capture is not previewed")
	_, err := os.Stat(filepath.Join(root, DefaultPhotoAlbum))
	assert.True(t, os.IsNotExist(err))
}

func TestCapturePhoto_RejectedSaveIsNotPreviewed(t *testing.T) {
	t.Parallel()

	g := &racingGallery{Gallery: gallery.NewGallery(t.TempDir())}
	fb := &fakeFramebuffer{frame: solidFrame(2, 2, color.RGBA{0, 255, 0, 255})}
	var got results
	p := NewPipeline(g, WithFramebuffer(fb), WithTempDir(t.TempDir()), WithResultCallback(got.add))
	defer p.Close()

	p.CapturePhoto()
	p.EndOfFrame()
	p.Flush()

	res := got.list()
	require.Len(t, res, 1)
	assert.ErrorIs(t, res[0].Err, gallery.ErrGalleryBusy)
	assert.Nil(t, p.LastCapture())
}

func TestCaptureImage_BackToBackAllSaved(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var got results
	p := NewPipeline(gallery.NewGallery(root),
		WithRenderer(&fakeRenderer{w: 512, h: 512}),
		WithWorkers(4),
		WithResultCallback(got.add),
	)

	const shots = 4
	for i := 0; i < shots; i++ {
		require.NoError(t, p.CaptureImage())
	}
	p.Close()

	res := got.list()
	require.Len(t, res, shots)
	for _, r := range res {
		assert.NoError(t, r.Err)
	}
	files, err := os.ReadDir(filepath.Join(root, DefaultImageAlbum))
	require.NoError(t, err)
	assert.Len(t, files, shots)
}

func TestCapturePhoto_NothingPresented(t *testing.T) {
	t.Parallel()

	var got results
	p := NewPipeline(gallery.NewGallery(t.TempDir()),
		WithFramebuffer(&fakeFramebuffer{}),
		WithResultCallback(got.add),
	)
	defer p.Close()

	p.CapturePhoto()
	p.EndOfFrame()
	p.Flush()

	res := got.list()
	require.Len(t, res, 1)
	assert.ErrorIs(t, res[0].Err, ErrNoFramebuffer)
	assert.Nil(t, p.LastCapture())
}

func TestPipeline_CustomAlbumsAndClose(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var got results
	p := NewPipeline(gallery.NewGallery(root, gallery.WithUniqueNames(false)),
		WithRenderer(&fakeRenderer{w: 2, h: 2}),
		WithAlbums("Shots", "Photos"),
		WithFileName("frame.png"),
		WithWorkers(1),
		WithResultCallback(got.add),
	)

	require.NoError(t, p.CaptureImage())
	p.Close()

	res := got.list()
	require.Len(t, res, 1)
	assert.Equal(t, filepath.Join(root, "Shots", "frame.png"), res[0].Path)

	assert.ErrorIs(t, p.CaptureImage(), ErrPipelineClosed)
	p.CapturePhoto()
	assert.False(t, p.Armed())
	p.Close()
}

func TestNewPipeline_PanicsWithoutGallery(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewPipeline(nil) })
}
