package images

import (
	"image"
	"image/color"
	"strconv"
	"strings"
)

// Mapping converts between image pixel coordinates and the coordinates of a
// scaled display copy. The zero value is the identity.
type Mapping struct {
	Image   image.Rectangle
	Display image.Rectangle
}

// NewMapping builds a mapping for an image of bounds src shown at w x h.
func NewMapping(src image.Rectangle, w, h int) Mapping {
	return Mapping{Image: src, Display: image.Rect(0, 0, w, h)}
}

func (m Mapping) identity() bool {
	return m.Image.Dx() == 0 || m.Display.Dx() == 0 ||
		(m.Image.Dx() == m.Display.Dx() && m.Image.Dy() == m.Display.Dy())
}

// ToImage maps a display point to the image pixel under it, clamped to the
// image bounds.
func (m Mapping) ToImage(p image.Point) image.Point {
	if m.identity() {
		return p
	}
	x := m.Image.Min.X + (p.X-m.Display.Min.X)*m.Image.Dx()/m.Display.Dx()
	y := m.Image.Min.Y + (p.Y-m.Display.Min.Y)*m.Image.Dy()/m.Display.Dy()
	return image.Pt(clamp(x, m.Image.Min.X, m.Image.Max.X), clamp(y, m.Image.Min.Y, m.Image.Max.Y))
}

// RectToImage maps a rectangle dragged on the display (two corners, any order)
// to a half-open image rectangle.
func (m Mapping) RectToImage(a, b image.Point) image.Rectangle {
	return image.Rectangle{Min: m.ToImage(a), Max: m.ToImage(b)}.Canon()
}

// RectToDisplay maps an image rectangle onto the display.
func (m Mapping) RectToDisplay(r image.Rectangle) image.Rectangle {
	if m.identity() {
		return r
	}
	sx := func(x int) int { return m.Display.Min.X + (x-m.Image.Min.X)*m.Display.Dx()/m.Image.Dx() }
	sy := func(y int) int { return m.Display.Min.Y + (y-m.Image.Min.Y)*m.Display.Dy()/m.Image.Dy() }
	return image.Rect(sx(r.Min.X), sy(r.Min.Y), sx(r.Max.X), sy(r.Max.Y))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DrawOutline strokes a one pixel outline of r onto dst, clipped to dst bounds.
// Rectangles thinner than 2 pixels are filled.
func DrawOutline(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	if dst == nil {
		return
	}
	r = r.Canon().Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetRGBA(x, r.Min.Y, c)
		dst.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetRGBA(r.Min.X, y, c)
		dst.SetRGBA(r.Max.X-1, y, c)
	}
}

// ParseHexColor parses #rrggbb. Invalid input yields opaque red.
func ParseHexColor(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.RGBA{R: 0xff, A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Placeholder returns a blank w x h image shown when nothing is loaded.
func Placeholder(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}
