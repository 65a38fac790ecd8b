package compositor

import (
	"image"
	"image/color"

	"github.com/Carmen-Shannon/oxy-ar/common"
	"github.com/Carmen-Shannon/oxy-ar/engine/camera_feed"
	"github.com/Carmen-Shannon/oxy-ar/engine/capture"
	"github.com/Carmen-Shannon/oxy-ar/engine/game_object"
	"github.com/Carmen-Shannon/oxy-ar/engine/panel"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// Projector is the camera view the compositor projects the model through.
type Projector interface {
	ScreenSize() (width, height int)
	Rotation() mgl32.Quat
	Frustum() common.Frustum
	WorldToScreen(p mgl32.Vec3) (mgl32.Vec3, bool)
}

// FrameSource supplies the live camera frame and the rotation it is shown at.
type FrameSource interface {
	Frame() image.Image
	PreviewRotation() float32
}

// ModelProvider supplies the model drawn over the camera frame.
type ModelProvider interface {
	GetCurrentModel() game_object.GameObject
}

// PanelSource supplies the panel flags drawn as HUD bars.
type PanelSource interface {
	Count() int
	Visible(index int) bool
	UI() panel.Flag
}

// ElementSource supplies the on-screen controls drawn along the top edge.
type ElementSource interface {
	Elements() []panel.Flag
}

// Compositor draws the composited AR view on the CPU: the camera frame, the active model
// as a projected marker, the loading indicator and the HUD. It renders into its display
// buffer unless a target is set.
type Compositor interface {
	capture.FrameRenderer
	capture.FramebufferReader
	camera_feed.Indicator

	// SetFrameSource replaces the camera frame drawn behind the view. nil draws the background only.
	//
	// Parameters:
	//   - source: the frame source
	SetFrameSource(source FrameSource)

	// LoadingVisible reports whether the loading indicator is drawn.
	LoadingVisible() bool

	// Display returns the display buffer holding the last frame rendered without a target.
	Display() *image.RGBA

	// Frames returns the number of frames rendered.
	Frames() uint64
}

type compositor struct {
	projector Projector
	source    FrameSource
	models    ModelProvider
	panels    PanelSource
	elements  ElementSource

	background color.RGBA
	hudHeight  int

	display *image.RGBA
	target  *image.RGBA

	loading bool
	frames  uint64
}

var _ Compositor = &compositor{}

// NewCompositor creates a Compositor drawing through projector. The display buffer follows
// the projector's screen size.
//
// Panics if projector is nil.
//
// Parameters:
//   - projector: the camera view
//   - options: functional options (frame source, models, panels, colors)
//
// Returns:
//   - Compositor: the compositor
func NewCompositor(projector Projector, options ...CompositorBuilderOption) Compositor {
	if projector == nil {
		panic("compositor: NewCompositor requires a non-nil Projector")
	}
	c := &compositor{
		projector:  projector,
		background: color.RGBA{R: 24, G: 24, B: 28, A: 255},
		hudHeight:  24,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *compositor) ScreenSize() (int, int) {
	return c.projector.ScreenSize()
}

func (c *compositor) SetTarget(target *image.RGBA) {
	c.target = target
}

func (c *compositor) Render() {
	dst := c.target
	if dst == nil {
		dst = c.displayBuffer()
	}
	c.frames++

	draw.Draw(dst, dst.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
	c.drawCameraFrame(dst)
	c.drawModel(dst)
	if c.loading {
		drawSpinner(dst, c.frames)
	}
	c.drawHUD(dst)
	c.drawElements(dst)
}

func (c *compositor) ReadFramebuffer() image.Image {
	if c.display == nil {
		return nil
	}
	return c.display
}

func (c *compositor) SetFrameSource(source FrameSource) {
	c.source = source
}

func (c *compositor) SetVisible(visible bool) {
	c.loading = visible
}

func (c *compositor) LoadingVisible() bool {
	return c.loading
}

func (c *compositor) Display() *image.RGBA {
	return c.display
}

func (c *compositor) Frames() uint64 {
	return c.frames
}

// displayBuffer returns the display buffer, reallocated when the screen size changed.
func (c *compositor) displayBuffer() *image.RGBA {
	w, h := c.projector.ScreenSize()
	bounds := image.Rect(0, 0, max(w, 1), max(h, 1))
	if c.display == nil || c.display.Bounds() != bounds {
		c.display = image.NewRGBA(bounds)
	}
	return c.display
}

// drawCameraFrame scales the rotated camera frame to cover dst, cropping the overflow.
func (c *compositor) drawCameraFrame(dst *image.RGBA) {
	if c.source == nil {
		return
	}
	frame := c.source.Frame()
	if frame == nil || frame.Bounds().Empty() {
		return
	}
	frame = rotate(frame, c.source.PreviewRotation())
	draw.ApproxBiLinear.Scale(dst, coverRect(dst.Bounds(), frame.Bounds()), frame, frame.Bounds(), draw.Src, nil)
}

// drawModel draws the active model as a square sized by its projected bounding sphere,
// with a tick along its local forward axis.
func (c *compositor) drawModel(dst *image.RGBA) {
	if c.models == nil {
		return
	}
	obj := c.models.GetCurrentModel()
	if obj == nil || !obj.Enabled() || obj.Model() == nil {
		return
	}
	m := obj.Model()
	scale := obj.LocalScale()
	rot := obj.Rotation()

	center := obj.Position().Add(rot.Rotate(mulElem(m.Center(), scale)))
	radius := m.BoundingRadius() * maxAbs(scale)
	if radius <= 0 || !c.projector.Frustum().ContainsSphere(center, radius) {
		return
	}

	sc, ok := c.project(dst, center)
	if !ok {
		return
	}
	up := c.projector.Rotation().Rotate(mgl32.Vec3{0, 1, 0})
	edge, ok := c.project(dst, center.Add(up.Mul(radius)))
	if !ok {
		return
	}
	half := int(sc.Sub(edge).Len())
	half = max(half, 2)

	px, py := int(sc.X()), int(sc.Y())
	fill(dst, image.Rect(px-half, py-half, px+half, py+half), m.Color())

	tip, ok := c.project(dst, center.Add(rot.Rotate(mgl32.Vec3{0, 0, 1}).Mul(radius)))
	if ok {
		line(dst, sc, tip, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
}

// project maps a world point to dst pixel coordinates with y pointing down.
func (c *compositor) project(dst *image.RGBA, p mgl32.Vec3) (mgl32.Vec2, bool) {
	s, ok := c.projector.WorldToScreen(p)
	if !ok {
		return mgl32.Vec2{}, false
	}
	w, h := c.projector.ScreenSize()
	b := dst.Bounds()
	sx := float32(b.Dx()) / float32(max(w, 1))
	sy := float32(b.Dy()) / float32(max(h, 1))
	return mgl32.Vec2{s.X() * sx, float32(b.Dy()) - s.Y()*sy}, true
}

// drawHUD draws one bar slot per panel along the bottom edge, filled for visible panels.
func (c *compositor) drawHUD(dst *image.RGBA) {
	if c.panels == nil || c.panels.Count() == 0 || c.panels.UI() == nil || !c.panels.UI().Visible() {
		return
	}
	b := dst.Bounds()
	n := c.panels.Count()
	slot := b.Dx() / n
	top := b.Max.Y - min(c.hudHeight, b.Dy())
	for i := 0; i < n; i++ {
		if !c.panels.Visible(i) {
			continue
		}
		r := image.Rect(b.Min.X+i*slot+2, top, b.Min.X+(i+1)*slot-2, b.Max.Y)
		blend(dst, r, hudPalette[i%len(hudPalette)])
	}
}

// drawElements draws one square per visible control along the top edge.
func (c *compositor) drawElements(dst *image.RGBA) {
	if c.elements == nil {
		return
	}
	const size, gap = 12, 4
	b := dst.Bounds()
	for i, el := range c.elements.Elements() {
		if el == nil || !el.Visible() {
			continue
		}
		x := b.Min.X + gap + i*(size+gap)
		blend(dst, image.Rect(x, b.Min.Y+gap, x+size, b.Min.Y+gap+size), color.RGBA{R: 255, G: 255, B: 255, A: 200})
	}
}

var hudPalette = []color.RGBA{
	{R: 240, G: 240, B: 240, A: 180},
	{R: 255, G: 200, B: 40, A: 180},
	{R: 60, G: 180, B: 255, A: 180},
	{R: 120, G: 220, B: 120, A: 180},
}
