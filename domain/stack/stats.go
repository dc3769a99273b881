package stack

import (
	"errors"
	"image"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoSelection is returned for a region with zero area after clipping.
var ErrNoSelection = errors.New("no selection")

// Stats summarises the raw pixel values inside a region.
type Stats struct {
	Region image.Rectangle
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64 // population standard deviation
	Median float64
}

// ClipROI canonicalizes r and intersects it with bounds.
func ClipROI(r, bounds image.Rectangle) image.Rectangle {
	r = r.Canon().Intersect(bounds)
	if r.Empty() {
		return image.Rectangle{}
	}
	return r
}

// ComputeStats reduces the raw values of f inside r. The result depends only
// on the pixel data and the clipped rectangle.
func ComputeStats(f *Frame, r image.Rectangle) (Stats, error) {
	if f == nil {
		return Stats{}, ErrNoSelection
	}
	r = ClipROI(r, f.Bounds())
	vals := f.Values(r)
	if len(vals) == 0 {
		return Stats{}, ErrNoSelection
	}
	mean, std := stat.PopMeanStdDev(vals, nil)
	s := Stats{
		Region: r,
		Count:  len(vals),
		Min:    floats.Min(vals),
		Max:    floats.Max(vals),
		Mean:   mean,
		StdDev: std,
	}
	// vals is a private copy, sorting it in place is fine.
	sort.Float64s(vals)
	s.Median = median(vals)
	return s, nil
}

// median of sorted values; even counts average the two central values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
