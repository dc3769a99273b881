package stack

import (
	"errors"
	"image"
	"math"
	"sort"
	"testing"
)

// rampFrame returns a w x h frame where value = base + y*w + x.
func rampFrame(t *testing.T, w, h int, base float64) *Frame {
	t.Helper()
	pix := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix[y*w+x] = base + float64(y*w+x)
		}
	}
	f, err := NewFrame(w, h, pix)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	return f
}

func TestNewFrame_RejectsBadLength(t *testing.T) {
	if _, err := NewFrame(2, 2, []float64{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short pixel slice")
	}
	if _, err := NewFrame(0, 2, nil); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestNewFrame_CachesRange(t *testing.T) {
	f, err := NewFrame(3, 1, []float64{5, -2, 9})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	lo, hi := f.Range()
	if lo != -2 || hi != 9 {
		t.Fatalf("expected range -2..9, got %v..%v", lo, hi)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, Uint8); !errors.Is(err, ErrEmptyStack) {
		t.Fatalf("expected ErrEmptyStack, got %v", err)
	}
	a := rampFrame(t, 4, 4, 0)
	b := rampFrame(t, 5, 4, 0)
	if _, err := New([]*Frame{a, b}, Uint8); !errors.Is(err, ErrInconsistentFrames) {
		t.Fatalf("expected ErrInconsistentFrames, got %v", err)
	}
}

func TestImageStack_ClampAndRange(t *testing.T) {
	s, err := New([]*Frame{rampFrame(t, 4, 4, 0), rampFrame(t, 4, 4, 100), rampFrame(t, 4, 4, 50)}, Uint16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cases := []struct{ in, want int }{{-5, 0}, {0, 0}, {1, 1}, {2, 2}, {3, 2}, {99, 2}}
	for _, c := range cases {
		if got := s.Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%d) = %d, want %d", c.in, got, c.want)
		}
	}
	if s.Frame(99) != s.Frame(2) {
		t.Fatalf("Frame should clamp to last frame")
	}
	lo, hi := s.Range()
	if lo != 0 || hi != 115 {
		t.Fatalf("expected stack range 0..115, got %v..%v", lo, hi)
	}
	if s.Width() != 4 || s.Height() != 4 || s.Len() != 3 || s.DataType() != Uint16 {
		t.Fatalf("unexpected stack attributes %dx%d len=%d dt=%s", s.Width(), s.Height(), s.Len(), s.DataType())
	}
}

func TestFrame_ValuesClipped(t *testing.T) {
	f := rampFrame(t, 4, 3, 0)
	vals := f.Values(image.Rect(2, 1, 10, 10))
	want := []float64{6, 7, 10, 11}
	if len(vals) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(vals))
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("value %d: got %v want %v", i, vals[i], want[i])
		}
	}
}

func TestComputeStats_Block(t *testing.T) {
	f := rampFrame(t, 100, 100, 0)
	r := image.Rect(10, 10, 20, 20)
	s, err := ComputeStats(f, r)
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}
	var vals []float64
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			vals = append(vals, f.At(x, y))
		}
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var ss float64
	for _, v := range vals {
		ss += (v - mean) * (v - mean)
	}
	std := math.Sqrt(ss / float64(len(vals)))
	sort.Float64s(vals)
	med := (vals[49] + vals[50]) / 2

	if s.Count != 100 || s.Region != r {
		t.Fatalf("unexpected count/region %d %v", s.Count, s.Region)
	}
	if s.Min != 1010 || s.Max != 1919 {
		t.Fatalf("unexpected min/max %v/%v", s.Min, s.Max)
	}
	if math.Abs(s.Mean-mean) > 1e-9 || math.Abs(s.StdDev-std) > 1e-9 || s.Median != med {
		t.Fatalf("got mean=%v std=%v median=%v, want %v %v %v", s.Mean, s.StdDev, s.Median, mean, std, med)
	}
}

func TestComputeStats_Deterministic(t *testing.T) {
	f := rampFrame(t, 32, 32, 7)
	r := image.Rect(3, 5, 17, 29)
	a, errA := ComputeStats(f, r)
	b, errB := ComputeStats(f, r)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors %v %v", errA, errB)
	}
	if a != b {
		t.Fatalf("repeated stats differ: %+v vs %+v", a, b)
	}
}

func TestComputeStats_Degenerate(t *testing.T) {
	f := rampFrame(t, 10, 10, 0)
	for _, r := range []image.Rectangle{
		image.Rect(3, 3, 3, 8),     // zero width
		image.Rect(3, 3, 8, 3),     // zero height
		image.Rect(20, 20, 30, 30), // outside
		{},
	} {
		if _, err := ComputeStats(f, r); !errors.Is(err, ErrNoSelection) {
			t.Errorf("rect %v: expected ErrNoSelection, got %v", r, err)
		}
	}
	if _, err := ComputeStats(nil, image.Rect(0, 0, 1, 1)); !errors.Is(err, ErrNoSelection) {
		t.Errorf("nil frame: expected ErrNoSelection, got %v", err)
	}
}

func TestComputeStats_OddMedianAndReversedRect(t *testing.T) {
	f, _ := NewFrame(3, 1, []float64{9, 1, 4})
	s, err := ComputeStats(f, image.Rectangle{Min: image.Pt(3, 1), Max: image.Pt(0, 0)})
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}
	if s.Median != 4 || s.Region != image.Rect(0, 0, 3, 1) {
		t.Fatalf("expected median 4 over full row, got %v over %v", s.Median, s.Region)
	}
	// source order must survive the median sort
	if f.Pix[0] != 9 || f.Pix[1] != 1 || f.Pix[2] != 4 {
		t.Fatalf("raw pixels modified: %v", f.Pix)
	}
}

func TestClipROI(t *testing.T) {
	b := image.Rect(0, 0, 50, 40)
	if got := ClipROI(image.Rect(-5, -5, 10, 10), b); got != image.Rect(0, 0, 10, 10) {
		t.Fatalf("unexpected clip %v", got)
	}
	if got := ClipROI(image.Rect(60, 60, 70, 70), b); got != (image.Rectangle{}) {
		t.Fatalf("expected empty rect, got %v", got)
	}
}
