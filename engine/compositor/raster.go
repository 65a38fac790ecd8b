package compositor

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// rotate returns img turned counterclockwise by degrees rounded to the nearest quarter turn.
// Negative angles turn clockwise.
func rotate(img image.Image, degrees float32) image.Image {
	quarter := ((int(math.Round(float64(degrees)/90)) % 4) + 4) % 4
	if quarter == 0 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	if quarter != 2 {
		out = image.NewRGBA(image.Rect(0, 0, h, w))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(b.Min.X+x, b.Min.Y+y)
			switch quarter {
			case 1:
				out.Set(y, w-1-x, c)
			case 2:
				out.Set(w-1-x, h-1-y, c)
			case 3:
				out.Set(h-1-y, x, c)
			}
		}
	}
	return out
}

// coverRect returns the rectangle src is scaled into so that it covers dst with its aspect
// ratio kept, centred on dst.
func coverRect(dst, src image.Rectangle) image.Rectangle {
	scale := math.Max(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	w := int(math.Ceil(float64(src.Dx()) * scale))
	h := int(math.Ceil(float64(src.Dy()) * scale))
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func blend(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// line draws a one pixel line from a to b.
func line(dst *image.RGBA, a, b mgl32.Vec2, c color.RGBA) {
	steps := int(math.Ceil(float64(max(abs32(b.X()-a.X()), abs32(b.Y()-a.Y())))))
	if steps == 0 {
		dst.SetRGBA(int(a.X()), int(a.Y()), c)
		return
	}
	for i := 0; i <= steps; i++ {
		p := a.Add(b.Sub(a).Mul(float32(i) / float32(steps)))
		dst.SetRGBA(int(p.X()), int(p.Y()), c)
	}
}

// drawSpinner draws eight dots around the centre of dst with one lit dot advancing per frame.
func drawSpinner(dst *image.RGBA, frame uint64) {
	b := dst.Bounds()
	cx, cy := b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2
	radius := float64(min(b.Dx(), b.Dy())) / 10
	dot := max(int(radius/4), 1)
	lit := int(frame/4) % 8

	for i := 0; i < 8; i++ {
		angle := float64(i) * math.Pi / 4
		x := cx + int(radius*math.Cos(angle))
		y := cy + int(radius*math.Sin(angle))
		c := color.RGBA{R: 120, G: 120, B: 120, A: 255}
		if i == lit {
			c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		fill(dst, image.Rect(x-dot, y-dot, x+dot, y+dot), c)
	}
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

func maxAbs(v mgl32.Vec3) float32 {
	return max(abs32(v.X()), abs32(v.Y()), abs32(v.Z()))
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
