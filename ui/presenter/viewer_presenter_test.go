package presenter

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/soocke/tiffscope/config"
	"github.com/soocke/tiffscope/domain/stack"
	"github.com/soocke/tiffscope/domain/tiffio"
	"github.com/soocke/tiffscope/ui/model"
)

// mockLoader returns canned stacks keyed by path.
type mockLoader struct {
	stacks map[string]*stack.ImageStack
	calls  int
}

func (l *mockLoader) Load(path string) (*stack.ImageStack, stack.Metadata, error) {
	l.calls++
	s, ok := l.stacks[path]
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", path, tiffio.ErrNotFound)
	}
	return s, stack.Metadata{"Frames": fmt.Sprint(s.Len()), "ImageWidth": fmt.Sprint(s.Width())}, nil
}

type mockImageView struct {
	shown      int
	last       image.Image
	frameIdx   int
	frameCount int
	contrast   float64
	mode       string
	roiMode    bool
	roiFields  image.Rectangle
}

func (v *mockImageView) ShowImage(img image.Image)         { v.shown++; v.last = img }
func (v *mockImageView) SetFrameControls(index, count int) { v.frameIdx, v.frameCount = index, count }
func (v *mockImageView) SetContrastValue(c float64)        { v.contrast = c }
func (v *mockImageView) SetContrastModeValue(mode string)  { v.mode = mode }
func (v *mockImageView) SetROIMode(on bool)                { v.roiMode = on }
func (v *mockImageView) SetROIFields(r image.Rectangle)    { v.roiFields = r }

type mockStatsView struct {
	rows    []StatRow
	message string
	cleared int
}

func (v *mockStatsView) SetStats(rows []StatRow) { v.rows, v.message = rows, "" }
func (v *mockStatsView) ClearStats(msg string)   { v.rows, v.message = nil, msg; v.cleared++ }

func (v *mockStatsView) value(label string) string {
	for _, r := range v.rows {
		if r.Label == label {
			return r.Value
		}
	}
	return ""
}

type mockMetaView struct{ text string }

func (v *mockMetaView) SetMetadataText(s string) { v.text = s }

type mockStatusView struct{ msgs []string }

func (v *mockStatusView) SetStatus(s string) { v.msgs = append(v.msgs, s) }

func (v *mockStatusView) last() string {
	if len(v.msgs) == 0 {
		return ""
	}
	return v.msgs[len(v.msgs)-1]
}

// patternStack builds frames where pixel (x, y) of frame i is i*10000 + y*100 + x.
func patternStack(t *testing.T, frames, w, h int) *stack.ImageStack {
	t.Helper()
	fs := make([]*stack.Frame, frames)
	for i := range fs {
		pix := make([]float64, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				pix[y*w+x] = float64(i*10000 + y*100 + x)
			}
		}
		f, err := stack.NewFrame(w, h, pix)
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

type fixture struct {
	p      *ViewerPresenter
	loader *mockLoader
	img    *mockImageView
	stats  *mockStatsView
	meta   *mockMetaView
	status *mockStatusView
	cfg    *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		loader: &mockLoader{stacks: map[string]*stack.ImageStack{
			"/data/three.tif":  patternStack(t, 3, 100, 100),
			"/data/single.tif": patternStack(t, 1, 40, 30),
		}},
		img:    &mockImageView{},
		stats:  &mockStatsView{},
		meta:   &mockMetaView{},
		status: &mockStatusView{},
		cfg:    config.DefaultConfig(),
	}
	f.p = NewViewerPresenter(f.cfg, f.loader, model.NewStackModel(f.cfg.ContrastDefault), model.NewROIModel(), f.img,
		NewStatsPresenter(f.stats), NewMetadataPresenter(f.meta), NewStatusPresenter(f.status), nil)
	return f
}

func TestViewerPresenter_InitShowsPlaceholder(t *testing.T) {
	f := newFixture(t)
	f.p.Init()
	if f.img.shown != 1 || f.img.last.Bounds() != image.Rect(0, 0, PlaceholderSize, PlaceholderSize) {
		t.Fatalf("expected placeholder, got shown=%d", f.img.shown)
	}
	if f.meta.text != NoFileLoaded || f.img.frameCount != 0 || f.img.contrast != 1 {
		t.Fatalf("unexpected initial state meta=%q count=%d contrast=%v", f.meta.text, f.img.frameCount, f.img.contrast)
	}
}

func TestViewerPresenter_LoadResetsSession(t *testing.T) {
	f := newFixture(t)
	if err := f.p.Load("/data/three.tif"); err != nil {
		t.Fatalf("load: %v", err)
	}
	f.p.SetFrame(2)
	f.p.SelectImage(image.Rect(1, 1, 5, 5))
	if err := f.p.Load("/data/single.tif"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.img.frameIdx != 0 || f.img.frameCount != 1 {
		t.Fatalf("frame controls not reset: %d/%d", f.img.frameIdx, f.img.frameCount)
	}
	if _, err := f.p.CurrentStats(); !errors.Is(err, stack.ErrNoSelection) {
		t.Fatalf("ROI should be cleared after load, got %v", err)
	}
	if f.stats.message != NoSelection || !f.img.roiFields.Empty() {
		t.Fatalf("stats panel should show no selection, got %q", f.stats.message)
	}
	if !strings.Contains(f.meta.text, "ImageWidth: 40") || f.cfg.LastDir != "/data" {
		t.Fatalf("metadata/last dir not updated: %q %q", f.meta.text, f.cfg.LastDir)
	}
	if got := f.img.last.Bounds(); got != image.Rect(0, 0, 40, 30) {
		t.Fatalf("display not rebuilt for new stack: %v", got)
	}
}

func TestViewerPresenter_LoadFailureKeepsSession(t *testing.T) {
	f := newFixture(t)
	_ = f.p.Load("/data/three.tif")
	f.p.SetFrame(1)
	f.p.SelectImage(image.Rect(10, 10, 20, 20))
	before := f.stats.value("Mean")
	meta := f.meta.text

	err := f.p.Load("/data/missing.tif")
	if !errors.Is(err, tiffio.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(f.status.last(), "missing.tif") {
		t.Fatalf("status should name the failure, got %q", f.status.last())
	}
	if f.img.frameIdx != 1 || f.stats.value("Mean") != before || f.meta.text != meta {
		t.Fatalf("previous session altered by failed load")
	}
	if s, err := f.p.CurrentStats(); err != nil || s.Region != image.Rect(10, 10, 20, 20) {
		t.Fatalf("ROI lost after failed load: %v %v", s.Region, err)
	}
}

func TestViewerPresenter_FrameClamps(t *testing.T) {
	f := newFixture(t)
	if got := f.p.SetFrame(5); got != 0 {
		t.Fatalf("SetFrame without stack should be 0, got %d", got)
	}
	_ = f.p.Load("/data/three.tif")
	for _, c := range []struct{ in, want int }{{-4, 0}, {1, 1}, {3, 2}, {99, 2}} {
		if got := f.p.SetFrame(c.in); got != c.want || f.img.frameIdx != c.want {
			t.Errorf("SetFrame(%d) = %d (view %d), want %d", c.in, got, f.img.frameIdx, c.want)
		}
	}
	f.p.SetFrame(0)
	if got := f.p.Step(-1); got != 0 {
		t.Fatalf("Step below zero should clamp, got %d", got)
	}
	if got := f.p.Step(1); got != 1 {
		t.Fatalf("Step(1) = %d", got)
	}
}

func TestViewerPresenter_BlockStatistics(t *testing.T) {
	f := newFixture(t)
	_ = f.p.Load("/data/three.tif")
	f.p.SetFrame(1)
	f.p.SetROIMode(true)
	f.p.SelectImage(image.Rect(10, 10, 20, 20))

	// Block values are 10000 + y*100 + x for x, y in [10, 20).
	want := map[string]string{
		"Pixels": "100",
		"Min":    "11010",
		"Max":    "11919",
		"Mean":   "11464.5",
		"Median": "11464.5",
		"Region": "(10, 10)-(20, 20)  10x10",
	}
	for k, v := range want {
		if got := f.stats.value(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestViewerPresenter_StatsRepeatable(t *testing.T) {
	f := newFixture(t)
	_ = f.p.Load("/data/three.tif")
	f.p.SelectImage(image.Rect(3, 7, 40, 41))
	a, errA := f.p.CurrentStats()
	b, errB := f.p.CurrentStats()
	if errA != nil || errB != nil || a != b {
		t.Fatalf("statistics not repeatable: %+v vs %+v (%v, %v)", a, b, errA, errB)
	}
}

func TestViewerPresenter_ContrastDoesNotChangeStats(t *testing.T) {
	f := newFixture(t)
	_ = f.p.Load("/data/three.tif")
	f.p.SelectImage(image.Rect(0, 0, 50, 50))
	before, _ := f.p.CurrentStats()
	shown := f.img.shown
	if got := f.p.SetContrast(1.7); got != 1.7 || f.img.contrast != 1.7 {
		t.Fatalf("contrast not applied: %v", got)
	}
	f.p.SetContrastMode("gamma")
	if got := f.p.SetContrast(9); got != f.cfg.ContrastMax {
		t.Fatalf("contrast should clamp to %v, got %v", f.cfg.ContrastMax, got)
	}
	after, _ := f.p.CurrentStats()
	if before != after {
		t.Fatalf("contrast altered statistics: %+v vs %+v", before, after)
	}
	if f.img.shown <= shown {
		t.Fatalf("contrast change should re-render")
	}
}

func TestViewerPresenter_NudgeContrast(t *testing.T) {
	f := newFixture(t)
	if got := f.p.NudgeContrast(-3); got < 0.69 || got > 0.71 {
		t.Fatalf("NudgeContrast(-3) = %v, want 0.7", got)
	}
	if got := f.p.NudgeContrast(-100); got != 0 {
		t.Fatalf("NudgeContrast should clamp at 0, got %v", got)
	}
}

func TestViewerPresenter_FrameSwitchKeepsROI(t *testing.T) {
	f := newFixture(t)
	_ = f.p.Load("/data/three.tif")
	f.p.SelectImage(image.Rect(10, 10, 20, 20))
	if f.stats.value("Min") != "1010" {
		t.Fatalf("frame 0 stats unexpected: %q", f.stats.value("Min"))
	}
	f.p.SetFrame(2)
	s, err := f.p.CurrentStats()
	if err != nil || s.Region != image.Rect(10, 10, 20, 20) {
		t.Fatalf("ROI not kept: %v %v", s.Region, err)
	}
	if f.stats.value("Min") != "21010" {
		t.Fatalf("stats not recomputed for frame 2: %q", f.stats.value("Min"))
	}
}

func TestViewerPresenter_DegenerateROI(t *testing.T) {
	f := newFixture(t)
	_ = f.p.Load("/data/three.tif")
	f.p.SelectImage(image.Rect(5, 5, 5, 30))
	if f.stats.message != NoSelection || f.stats.rows != nil {
		t.Fatalf("expected %q, got %q rows=%v", NoSelection, f.stats.message, f.stats.rows)
	}
	f.p.SelectImage(image.Rect(200, 200, 300, 300))
	if f.stats.message != NoSelection {
		t.Fatalf("out of bounds ROI should give no selection, got %q", f.stats.message)
	}
}

func TestViewerPresenter_DisableROIClears(t *testing.T) {
	f := newFixture(t)
	_ = f.p.Load("/data/three.tif")
	f.p.SelectImage(image.Rect(10, 10, 20, 20))
	if !f.img.roiMode {
		t.Fatalf("numeric selection should turn ROI mode on")
	}
	f.p.ToggleROIMode()
	if f.img.roiMode || f.stats.rows != nil || f.stats.message != "" || !f.img.roiFields.Empty() {
		t.Fatalf("disabling ROI mode should clear panel: %+v", f.stats)
	}
	if _, err := f.p.CurrentStats(); !errors.Is(err, stack.ErrNoSelection) {
		t.Fatalf("expected no selection after disable, got %v", err)
	}
}

func TestViewerPresenter_SelectDisplayMapsScale(t *testing.T) {
	f := newFixture(t)
	f.cfg.DisplayMaxW, f.cfg.DisplayMaxH = 50, 50
	_ = f.p.Load("/data/three.tif")

	f.p.SelectDisplay(image.Pt(5, 5), image.Pt(10, 10))
	if _, err := f.p.CurrentStats(); err == nil {
		t.Fatalf("drag should be ignored while ROI mode is off")
	}
	f.p.SetROIMode(true)
	// 100x100 shown at 50x50: display (10,10)-(5,5) covers image (10,10)-(20,20).
	f.p.SelectDisplay(image.Pt(10, 10), image.Pt(5, 5))
	s, err := f.p.CurrentStats()
	if err != nil || s.Region != image.Rect(10, 10, 20, 20) {
		t.Fatalf("unexpected mapped ROI %v (%v)", s.Region, err)
	}
	if f.img.last.Bounds().Dx() != 50 {
		t.Fatalf("display should be scaled to 50px, got %v", f.img.last.Bounds())
	}
}

func TestViewerPresenter_SelectWithoutStack(t *testing.T) {
	f := newFixture(t)
	f.p.SelectImage(image.Rect(0, 0, 10, 10))
	if f.status.last() != "No image loaded" {
		t.Fatalf("unexpected status %q", f.status.last())
	}
}

func TestViewerPresenter_NilSafe(t *testing.T) {
	var p *ViewerPresenter
	p.Init()
	_ = p.Load("x")
	p.SetFrame(1)
	p.Step(1)
	p.SetContrast(1)
	p.SetROIMode(true)
	p.SelectImage(image.Rect(0, 0, 1, 1))
	p.ClearROI()
}

func TestViewerPresenter_LoadWithoutView(t *testing.T) {
	f := newFixture(t)
	sm := model.NewStackModel(1)
	p := NewViewerPresenter(f.cfg, f.loader, sm, nil, nil, NewStatsPresenter(f.stats), NewMetadataPresenter(f.meta), NewStatusPresenter(f.status), nil)
	if err := p.Load("/data/three.tif"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !sm.Loaded() || sm.FrameCount() != 3 {
		t.Fatalf("stack should be loaded without a view, count=%d", sm.FrameCount())
	}
	if got := p.SetFrame(2); got != 2 {
		t.Fatalf("SetFrame = %d", got)
	}

	bare := NewViewerPresenter(f.cfg, nil, nil, nil, f.img, nil, nil, nil, nil)
	if err := bare.Load("/data/three.tif"); !errors.Is(err, ErrNoLoader) {
		t.Fatalf("expected ErrNoLoader, got %v", err)
	}
}

func TestViewerPresenter_ApplyConfig(t *testing.T) {
	f := newFixture(t)
	_ = f.p.Load("/data/three.tif")
	f.p.SetContrast(1.8)
	f.cfg.ContrastMax = 1.2
	f.cfg.DisplayMaxW, f.cfg.DisplayMaxH = 25, 25
	f.p.ApplyConfig()
	if f.img.contrast != 1.2 {
		t.Fatalf("contrast should be clamped to new max, got %v", f.img.contrast)
	}
	if f.img.last.Bounds().Dx() != 25 {
		t.Fatalf("display size not applied: %v", f.img.last.Bounds())
	}
}

func TestViewerPresenter_ApplyConfigPushesContrastMode(t *testing.T) {
	f := newFixture(t)
	f.p.Init()
	if f.img.mode != "linear" {
		t.Fatalf("init should select linear, got %q", f.img.mode)
	}
	_ = f.p.Load("/data/three.tif")
	f.cfg.ContrastMode = "gamma"
	f.p.ApplyConfig()
	if f.img.mode != "gamma" {
		t.Fatalf("mode selector not updated after settings change, got %q", f.img.mode)
	}
}
