package model

import (
	"image"
	"testing"

	"github.com/soocke/tiffscope/domain/stack"
)

func testStack(t *testing.T, frames int) *stack.ImageStack {
	t.Helper()
	fs := make([]*stack.Frame, frames)
	for i := range fs {
		pix := make([]float64, 16)
		for j := range pix {
			pix[j] = float64(i*100 + j)
		}
		f, err := stack.NewFrame(4, 4, pix)
		if err != nil {
			t.Fatalf("NewFrame: %v", err)
		}
		fs[i] = f
	}
	s, err := stack.New(fs, stack.Uint16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestStackModel_ZeroValue(t *testing.T) {
	var m StackModel
	if m.Loaded() || m.Frame() != nil || m.FrameCount() != 0 || m.SetFrame(3) != 0 {
		t.Fatalf("zero value should report nothing loaded")
	}
	var nilModel *StackModel
	if nilModel.Loaded() || nilModel.Stack() != nil || nilModel.Path() != "" {
		t.Fatalf("nil model should be inert")
	}
}

func TestStackModel_ReplaceResetsFrame(t *testing.T) {
	m := NewStackModel(1)
	m.Replace(testStack(t, 3), stack.Metadata{"Frames": "3"}, "/tmp/a.tif")
	if got := m.SetFrame(2); got != 2 {
		t.Fatalf("expected frame 2, got %d", got)
	}
	m.Replace(testStack(t, 5), nil, "/tmp/b.tif")
	if m.FrameIndex() != 0 || m.FrameCount() != 5 || m.Path() != "/tmp/b.tif" {
		t.Fatalf("replace should reset frame: idx=%d count=%d path=%s", m.FrameIndex(), m.FrameCount(), m.Path())
	}
}

func TestStackModel_SetFrameClamps(t *testing.T) {
	m := NewStackModel(1)
	m.Replace(testStack(t, 3), nil, "")
	for _, c := range []struct{ in, want int }{{-1, 0}, {1, 1}, {3, 2}, {100, 2}} {
		if got := m.SetFrame(c.in); got != c.want {
			t.Errorf("SetFrame(%d) = %d, want %d", c.in, got, c.want)
		}
	}
	if m.Frame().At(0, 0) != 200 {
		t.Fatalf("expected last frame active, got first value %v", m.Frame().At(0, 0))
	}
}

func TestROIModel_MatchesStatsClipping(t *testing.T) {
	m := NewROIModel()
	m.SetEnabled(true)
	bounds := image.Rect(0, 0, 50, 40)
	for _, r := range []image.Rectangle{
		image.Rect(-10, -10, 5, 5),
		image.Rect(45, 30, 80, 90),
		image.Rect(30, 20, 10, 5),
		image.Rect(60, 60, 70, 70),
	} {
		m.SetROI(r, bounds)
		if want := stack.ClipROI(r, bounds); m.ROI() != want {
			t.Errorf("SetROI(%v) stored %v, stats would use %v", r, m.ROI(), want)
		}
	}
}

func TestROIModel_Lifecycle(t *testing.T) {
	m := NewROIModel()
	bounds := image.Rect(0, 0, 100, 100)
	if m.SetROI(image.Rect(10, 10, 20, 20), bounds); m.Active() {
		t.Fatalf("ROI should not be active while mode is off")
	}
	m.SetEnabled(true)
	if !m.SetROI(image.Rect(90, 90, 150, 150), bounds) {
		t.Fatalf("expected clipped rect to be accepted")
	}
	if m.ROI() != image.Rect(90, 90, 100, 100) || !m.Active() {
		t.Fatalf("unexpected clipped ROI %v", m.ROI())
	}
	if m.SetROI(image.Rect(5, 5, 5, 40), bounds) {
		t.Fatalf("zero width rect must be rejected")
	}
	if !m.ROI().Empty() || m.Active() {
		t.Fatalf("degenerate rect should clear ROI, got %v", m.ROI())
	}
	m.SetROI(image.Rect(20, 30, 10, 10), bounds)
	if m.ROI() != image.Rect(10, 10, 20, 30) {
		t.Fatalf("expected canonical rect, got %v", m.ROI())
	}
	m.SetEnabled(false)
	if !m.ROI().Empty() || m.Enabled() {
		t.Fatalf("disabling ROI mode should clear rectangle")
	}
}
