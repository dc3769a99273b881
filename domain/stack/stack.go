package stack

import (
	"errors"
	"fmt"
	"image"

	"gonum.org/v1/gonum/floats"
)

// DataType names the element type of the source pixels.
type DataType string

const (
	Uint8  DataType = "uint8"
	Uint16 DataType = "uint16"
)

var (
	// ErrEmptyStack is returned when a stack is built without frames.
	ErrEmptyStack = errors.New("stack has no frames")
	// ErrInconsistentFrames is returned when frames do not share dimensions.
	ErrInconsistentFrames = errors.New("frames differ in size")
)

// Frame holds the raw pixel values of one 2D image in row-major order.
// Pix is never modified after construction.
type Frame struct {
	Width  int
	Height int
	Pix    []float64
	min    float64
	max    float64
}

// NewFrame wraps pix (len must equal width*height) and caches its value range.
func NewFrame(width, height int, pix []float64) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("frame %dx%d expects %d values, got %d", width, height, width*height, len(pix))
	}
	return &Frame{Width: width, Height: height, Pix: pix, min: floats.Min(pix), max: floats.Max(pix)}, nil
}

// Bounds returns the frame rectangle anchored at the origin.
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.Width, f.Height) }

// At returns the raw value at (x, y). Callers keep coordinates in bounds.
func (f *Frame) At(x, y int) float64 { return f.Pix[y*f.Width+x] }

// Range returns the cached minimum and maximum raw value.
func (f *Frame) Range() (min, max float64) { return f.min, f.max }

// Values copies the raw values inside r (already clipped) into a new slice.
func (f *Frame) Values(r image.Rectangle) []float64 {
	r = r.Intersect(f.Bounds())
	if r.Empty() {
		return nil
	}
	out := make([]float64, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := f.Pix[y*f.Width : (y+1)*f.Width]
		out = append(out, row[r.Min.X:r.Max.X]...)
	}
	return out
}

// ImageStack is an ordered, non-empty sequence of equally sized frames.
// A stack is immutable; loading a new file replaces it wholesale.
type ImageStack struct {
	frames   []*Frame
	dataType DataType
}

// New validates frames and returns a stack.
func New(frames []*Frame, dt DataType) (*ImageStack, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyStack
	}
	w, h := frames[0].Width, frames[0].Height
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("frame %d: nil", i)
		}
		if f.Width != w || f.Height != h {
			return nil, fmt.Errorf("frame %d is %dx%d, first is %dx%d: %w", i, f.Width, f.Height, w, h, ErrInconsistentFrames)
		}
	}
	return &ImageStack{frames: frames, dataType: dt}, nil
}

func (s *ImageStack) Width() int         { return s.frames[0].Width }
func (s *ImageStack) Height() int        { return s.frames[0].Height }
func (s *ImageStack) Len() int           { return len(s.frames) }
func (s *ImageStack) DataType() DataType { return s.dataType }

// Bounds returns the shared frame rectangle.
func (s *ImageStack) Bounds() image.Rectangle { return s.frames[0].Bounds() }

// Frame returns frame i after clamping i into [0, Len()-1].
func (s *ImageStack) Frame(i int) *Frame { return s.frames[s.Clamp(i)] }

// Clamp resolves i to the nearest valid frame index.
func (s *ImageStack) Clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(s.frames) {
		return len(s.frames) - 1
	}
	return i
}

// Range returns the minimum and maximum over all frames.
func (s *ImageStack) Range() (min, max float64) {
	min, max = s.frames[0].Range()
	for _, f := range s.frames[1:] {
		lo, hi := f.Range()
		if lo < min {
			min = lo
		}
		if hi > max {
			max = hi
		}
	}
	return min, max
}
