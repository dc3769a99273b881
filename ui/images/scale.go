package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Filter selects the resampling used when a frame is scaled down for display.
type Filter int

const (
	// Nearest keeps individual pixels crisp.
	Nearest Filter = iota
	// Smooth averages source pixels (box filter).
	Smooth
)

// ParseFilter maps a config string to a Filter; unknown values give Nearest.
func ParseFilter(s string) Filter {
	if s == "smooth" {
		return Smooth
	}
	return Nearest
}

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// FitSize returns the largest w x h that fits within maxW x maxH and keeps the
// aspect ratio of src. Sources that already fit keep their size.
func FitSize(src image.Rectangle, maxW, maxH int) (int, int) {
	w, h := src.Dx(), src.Dy()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := float64(maxW) / float64(w)
	if r := float64(maxH) / float64(h); r < ratio {
		ratio = r
	}
	newW := int(float64(w)*ratio + 0.5)
	newH := int(float64(h)*ratio + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH
}

// ScaleToFit scales src so that the returned image fits within maxW x maxH
// preserving aspect ratio. The result is always a fresh *image.RGBA so callers
// may draw on it.
func ScaleToFit(src image.Image, maxW, maxH int, f Filter) *image.RGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := FitSize(b, maxW, maxH)
	if w == 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	if f == Smooth {
		resized := imaging.Resize(src, w, h, imaging.Box)
		draw.Draw(dst, dst.Bounds(), resized, resized.Bounds().Min, draw.Src)
		return dst
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
