package compositor

import (
	"image"
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/oxy-ar/engine/camera"
	"github.com/Carmen-Shannon/oxy-ar/engine/game_object"
	"github.com/Carmen-Shannon/oxy-ar/engine/model"
	"github.com/Carmen-Shannon/oxy-ar/engine/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	bg    = color.RGBA{R: 1, G: 2, B: 3, A: 255}
)

type fixedModel struct {
	obj game_object.GameObject
}

func (f fixedModel) GetCurrentModel() game_object.GameObject { return f.obj }

type fixedFrame struct {
	img      image.Image
	rotation float32
}

func (f fixedFrame) Frame() image.Image        { return f.img }
func (f fixedFrame) PreviewRotation() float32 { return f.rotation }

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func newMarker(z float32) game_object.GameObject {
	m := model.NewModel(model.WithBoundingRadius(0.2), model.WithColor(red))
	return game_object.NewGameObject(game_object.WithModel(m), game_object.WithPosition(0, 0, z))
}

func TestRender_ModelMarker(t *testing.T) {
	t.Parallel()

	cam := camera.NewCamera(camera.WithScreenSize(64, 48))
	obj := newMarker(-2)
	c := NewCompositor(cam, WithModels(fixedModel{obj}), WithBackground(bg))

	c.Render()
	d := c.Display()
	require.NotNil(t, d)
	assert.Equal(t, image.Rect(0, 0, 64, 48), d.Bounds())
	assert.Equal(t, red, d.RGBAAt(34, 26))
	assert.Equal(t, bg, d.RGBAAt(1, 1))

	obj.SetEnabled(false)
	c.Render()
	assert.Equal(t, bg, d.RGBAAt(34, 26), "hidden model is not drawn")

	obj.SetEnabled(true)
	obj.SetPosition(obj.Position().Mul(-1))
	c.Render()
	assert.Equal(t, bg, d.RGBAAt(34, 26), "model behind the camera is culled")
	assert.Equal(t, uint64(3), c.Frames())
}

func TestRender_TargetRedirect(t *testing.T) {
	t.Parallel()

	cam := camera.NewCamera(camera.WithScreenSize(64, 48))
	c := NewCompositor(cam, WithModels(fixedModel{newMarker(-2)}))

	target := image.NewRGBA(image.Rect(0, 0, 64, 48))
	c.SetTarget(target)
	c.Render()
	c.SetTarget(nil)

	assert.Equal(t, red, target.RGBAAt(34, 26))
	assert.Nil(t, c.Display())
	assert.Nil(t, c.ReadFramebuffer())

	c.Render()
	assert.NotNil(t, c.ReadFramebuffer())
}

func TestRender_CameraFrameCoversView(t *testing.T) {
	t.Parallel()

	cam := camera.NewCamera(camera.WithScreenSize(32, 16))
	c := NewCompositor(cam, WithFrameSource(fixedFrame{img: solid(8, 8, green), rotation: -90}), WithBackground(bg))

	c.Render()
	d := c.Display()
	for _, p := range []image.Point{{0, 0}, {31, 0}, {0, 15}, {31, 15}, {16, 8}} {
		assert.Equal(t, green, d.RGBAAt(p.X, p.Y), "pixel %v", p)
	}
}

func TestSetFrameSource(t *testing.T) {
	t.Parallel()

	cam := camera.NewCamera(camera.WithScreenSize(16, 16))
	c := NewCompositor(cam, WithBackground(bg))

	c.SetFrameSource(fixedFrame{img: solid(4, 4, green)})
	c.Render()
	assert.Equal(t, green, c.Display().RGBAAt(8, 8))

	c.SetFrameSource(nil)
	c.Render()
	assert.Equal(t, bg, c.Display().RGBAAt(8, 8))
}

func TestRender_HUD(t *testing.T) {
	t.Parallel()

	cam := camera.NewCamera(camera.WithScreenSize(40, 30))
	panels := panel.NewSwitcher(panel.WithPanelNames("main", "settings"))
	c := NewCompositor(cam, WithPanels(panels), WithBackground(bg), WithHUDHeight(5))

	require.True(t, panels.SwitchPanel(1))
	c.Render()
	d := c.Display()
	assert.Equal(t, bg, d.RGBAAt(10, 28), "hidden panel slot")
	assert.NotEqual(t, bg, d.RGBAAt(30, 28), "visible panel slot")
	assert.Equal(t, bg, d.RGBAAt(30, 10), "above the HUD")

	panels.ToggleUIPanelVisibility()
	c.Render()
	assert.Equal(t, bg, d.RGBAAt(30, 28), "umbrella flag hides the HUD")
}

func TestRender_Elements(t *testing.T) {
	t.Parallel()

	shutter := panel.NewFlag("shutter", true)
	menu := panel.NewFlag("menu", true)
	group := panel.NewGroup(shutter, menu)
	c := NewCompositor(camera.NewCamera(camera.WithScreenSize(64, 48)), WithElements(group), WithBackground(bg))

	c.Render()
	d := c.Display()
	assert.NotEqual(t, bg, d.RGBAAt(8, 8))
	assert.NotEqual(t, bg, d.RGBAAt(24, 8))

	group.HideAll()
	c.Render()
	assert.Equal(t, bg, d.RGBAAt(8, 8))
	assert.Equal(t, bg, d.RGBAAt(24, 8))
}

func TestLoadingIndicator(t *testing.T) {
	t.Parallel()

	c := NewCompositor(camera.NewCamera(camera.WithScreenSize(64, 64)), WithBackground(bg))
	assert.False(t, c.LoadingVisible())

	c.SetVisible(true)
	assert.True(t, c.LoadingVisible())
	c.Render()

	lit := 0
	d := c.Display()
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if d.RGBAAt(x, y) != bg {
				lit++
			}
		}
	}
	assert.Positive(t, lit)

	c.SetVisible(false)
	c.Render()
	assert.Equal(t, bg, d.RGBAAt(32+6, 32))
}

func TestRotate(t *testing.T) {
	t.Parallel()

	a := color.RGBA{R: 10, A: 255}
	b := color.RGBA{G: 20, A: 255}
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, a)
	src.SetRGBA(1, 0, b)

	tests := []struct {
		name    string
		degrees float32
		bounds  image.Rectangle
		at      map[image.Point]color.RGBA
	}{
		{"none", 0, image.Rect(0, 0, 2, 1), map[image.Point]color.RGBA{{0, 0}: a, {1, 0}: b}},
		{"counterclockwise", 90, image.Rect(0, 0, 1, 2), map[image.Point]color.RGBA{{0, 0}: b, {0, 1}: a}},
		{"clockwise", -90, image.Rect(0, 0, 1, 2), map[image.Point]color.RGBA{{0, 0}: a, {0, 1}: b}},
		{"half turn", 180, image.Rect(0, 0, 2, 1), map[image.Point]color.RGBA{{0, 0}: b, {1, 0}: a}},
		{"rounds to quarter", 265, image.Rect(0, 0, 1, 2), map[image.Point]color.RGBA{{0, 0}: a, {0, 1}: b}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := rotate(src, tt.degrees)
			assert.Equal(t, tt.bounds, out.Bounds())
			for p, want := range tt.at {
				assert.Equal(t, want, color.RGBAModel.Convert(out.At(p.X, p.Y)), "pixel %v", p)
			}
		})
	}
}

func TestCoverRect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, image.Rect(0, -25, 100, 75), coverRect(image.Rect(0, 0, 100, 50), image.Rect(0, 0, 10, 10)))
	assert.Equal(t, image.Rect(0, 0, 64, 48), coverRect(image.Rect(0, 0, 64, 48), image.Rect(0, 0, 32, 24)))
}

func TestNewCompositor_PanicsWithoutProjector(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewCompositor(nil) })
}
