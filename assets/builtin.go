package assets

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/vector"
)

// Built-in images, addressed as "builtin:<name>".
const (
	BuiltinLogo     = "logo"
	BuiltinPhone    = "phone"
	BuiltinLocation = "location"
	BuiltinGlobe    = "globe"
)

const (
	iconPx = 64
	logoPx = 128
	// kappa places cubic control points on a quarter circle.
	kappa = 0.5522847
)

var (
	accent  = color.NRGBA{R: 0, G: 173, B: 239, A: 255}
	primary = color.NRGBA{R: 10, G: 45, B: 90, A: 255}
	white   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Builtin rasterizes one of the built-in images.
func Builtin(name string) (image.Image, error) {
	switch name {
	case BuiltinLogo:
		return logo(), nil
	case BuiltinPhone:
		return phone(), nil
	case BuiltinLocation:
		return location(), nil
	case BuiltinGlobe:
		return globe(), nil
	}
	return nil, errors.Errorf("assets: unknown builtin %q", name)
}

type canvas struct {
	img *image.NRGBA
	z   *vector.Rasterizer
}

func newCanvas(px int) *canvas {
	return &canvas{
		img: image.NewNRGBA(image.Rect(0, 0, px, px)),
		z:   vector.NewRasterizer(px, px),
	}
}

// fill paints the current path with c and starts a new one.
func (cv *canvas) fill(c color.NRGBA) {
	cv.z.Draw(cv.img, cv.img.Bounds(), image.NewUniform(c), image.Point{})
	b := cv.img.Bounds()
	cv.z.Reset(b.Dx(), b.Dy())
}

func (cv *canvas) rect(x0, y0, x1, y1 float32) {
	cv.z.MoveTo(x0, y0)
	cv.z.LineTo(x1, y0)
	cv.z.LineTo(x1, y1)
	cv.z.LineTo(x0, y1)
	cv.z.ClosePath()
}

// circle adds a circle. Reversed circles punch holes in shapes added in the
// normal direction.
func (cv *canvas) circle(cx, cy, r float32, reversed bool) {
	k := r * kappa
	z := cv.z
	z.MoveTo(cx+r, cy)
	if !reversed {
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	} else {
		z.CubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		z.CubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		z.CubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		z.CubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	}
	z.ClosePath()
}

func (cv *canvas) ring(cx, cy, outer, inner float32) {
	cv.circle(cx, cy, outer, false)
	cv.circle(cx, cy, inner, true)
}

func phone() image.Image {
	cv := newCanvas(iconPx)
	cv.rect(18, 4, 46, 60)
	cv.fill(accent)
	cv.rect(22, 10, 42, 46)
	cv.fill(white)
	cv.circle(32, 53, 3, false)
	cv.fill(white)
	return cv.img
}

func location() image.Image {
	cv := newCanvas(iconPx)
	cv.circle(32, 24, 17, false)
	cv.z.MoveTo(17, 31)
	cv.z.LineTo(47, 31)
	cv.z.LineTo(32, 60)
	cv.z.ClosePath()
	cv.fill(accent)
	cv.circle(32, 24, 7, false)
	cv.fill(white)
	return cv.img
}

func globe() image.Image {
	cv := newCanvas(iconPx)
	cv.ring(32, 32, 27, 23)
	cv.fill(accent)
	cv.rect(7, 30, 57, 34)
	cv.fill(accent)
	cv.rect(30, 7, 34, 57)
	cv.fill(accent)
	cv.ring(32, 32, 14, 11)
	cv.fill(accent)
	return cv.img
}

func logo() image.Image {
	cv := newCanvas(logoPx)
	cv.circle(64, 64, 62, false)
	cv.fill(primary)
	cv.ring(60, 60, 38, 27)
	cv.fill(white)
	cv.z.MoveTo(72, 80)
	cv.z.LineTo(82, 70)
	cv.z.LineTo(104, 94)
	cv.z.LineTo(94, 104)
	cv.z.ClosePath()
	cv.fill(accent)
	return cv.img
}
