package stack

import (
	"image"
	"math"
	"strings"
)

// ContrastMode selects the intensity transfer curve used for display.
type ContrastMode int

const (
	// ContrastLinear scales the normalized value around mid-grey by c.
	ContrastLinear ContrastMode = iota
	// ContrastGamma raises the normalized value to 1/c.
	ContrastGamma
)

// minGamma keeps the gamma exponent finite.
const minGamma = 0.1

func (m ContrastMode) String() string {
	switch m {
	case ContrastGamma:
		return "gamma"
	default:
		return "linear"
	}
}

// ParseContrastMode maps a config string to a mode; unknown values fall back to linear.
func ParseContrastMode(s string) ContrastMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gamma":
		return ContrastGamma
	default:
		return ContrastLinear
	}
}

// Rescale produces the 8-bit display buffer for f with contrast c. The transform
// is anchored at the frame's own value range; a uniform frame renders black.
// f.Pix is only read.
func Rescale(f *Frame, c float64, mode ContrastMode) *image.Gray {
	out := image.NewGray(f.Bounds())
	lo, hi := f.Range()
	span := hi - lo
	if span == 0 {
		return out
	}
	if mode == ContrastGamma && c < minGamma {
		c = minGamma
	}
	for i, v := range f.Pix {
		n := (v - lo) / span
		switch mode {
		case ContrastGamma:
			n = math.Pow(n, 1/c)
		default:
			n = 0.5 + (n-0.5)*c
		}
		out.Pix[i] = toByte(n)
	}
	return out
}

func toByte(n float64) uint8 {
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	if n >= 1 {
		return 255
	}
	return uint8(math.Round(n * 255))
}
