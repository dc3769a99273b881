package presenter

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/soocke/tiffscope/config"
	"github.com/soocke/tiffscope/domain/stack"
	"github.com/soocke/tiffscope/ui/images"
	"github.com/soocke/tiffscope/ui/model"
)

// PlaceholderSize is the side of the blank image shown when nothing is loaded.
const PlaceholderSize = 512

// ErrNoLoader is returned by Load when the presenter was built without a loader.
var ErrNoLoader = errors.New("presenter: no stack loader")

// StackLoader loads a TIFF file into a stack plus metadata.
type StackLoader interface {
	Load(path string) (*stack.ImageStack, stack.Metadata, error)
}

// ImageView is the image panel and the controls driven by the viewer.
type ImageView interface {
	ShowImage(img image.Image)
	// SetFrameControls reflects the active frame; count <= 1 disables navigation.
	SetFrameControls(index, count int)
	SetContrastValue(c float64)
	// SetContrastModeValue selects the named transfer curve in the mode selector.
	SetContrastModeValue(mode string)
	SetROIMode(on bool)
	// SetROIFields mirrors the active rectangle into the numeric entries.
	SetROIFields(r image.Rectangle)
}

// ViewerPresenter owns load, navigation, contrast and ROI operations. Every
// operation runs synchronously and finishes by re-rendering the display.
type ViewerPresenter struct {
	cfg    *config.Config
	loader StackLoader
	stack  *model.StackModel
	roi    *model.ROIModel
	view   ImageView
	logger *slog.Logger

	Stats    *StatsPresenter
	Metadata *MetadataPresenter
	Status   *StatusPresenter

	mode     stack.ContrastMode
	filter   images.Filter
	roiColor color.RGBA
	mapping  images.Mapping
}

// NewViewerPresenter wires the viewer. cfg may be nil (defaults are used).
func NewViewerPresenter(cfg *config.Config, loader StackLoader, sm *model.StackModel, rm *model.ROIModel, view ImageView, stats *StatsPresenter, meta *MetadataPresenter, status *StatusPresenter, logger *slog.Logger) *ViewerPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if sm == nil {
		sm = model.NewStackModel(cfg.ContrastDefault)
	}
	if rm == nil {
		rm = model.NewROIModel()
	}
	return &ViewerPresenter{
		cfg:      cfg,
		loader:   loader,
		stack:    sm,
		roi:      rm,
		view:     view,
		logger:   logger,
		Stats:    stats,
		Metadata: meta,
		Status:   status,
		mode:     stack.ParseContrastMode(cfg.ContrastMode),
		filter:   images.ParseFilter(cfg.DisplayFilter),
		roiColor: images.ParseHexColor(cfg.ROIColor),
	}
}

// Init pushes the empty state: placeholder image, no metadata, default contrast.
func (p *ViewerPresenter) Init() {
	if p == nil || p.view == nil {
		return
	}
	p.view.SetContrastValue(p.stack.Contrast())
	p.view.SetContrastModeValue(p.mode.String())
	p.view.SetFrameControls(0, 0)
	p.view.SetROIMode(p.roi.Enabled())
	p.Metadata.Show(nil)
	p.Stats.Hide()
	p.Status.Info("Open a TIFF file to begin")
	p.render()
}

// Load replaces the session with the file at path. On failure the previous
// session is left untouched and the error is reported on the status line.
func (p *ViewerPresenter) Load(path string) error {
	if p == nil {
		return nil
	}
	if p.loader == nil {
		return ErrNoLoader
	}
	st, meta, err := p.loader.Load(path)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("load tiff", "path", path, "error", err)
		}
		p.Status.LoadFailed(path, err)
		return err
	}
	p.cfg.LastDir = filepath.Dir(path)
	p.Show(path, st, meta)
	return nil
}

// Show installs an already decoded stack as the new session: frame 0, no ROI.
func (p *ViewerPresenter) Show(name string, st *stack.ImageStack, meta stack.Metadata) {
	if p == nil || st == nil {
		return
	}
	p.stack.Replace(st, meta, name)
	p.roi.Clear()

	if p.view != nil {
		p.view.SetFrameControls(0, st.Len())
		p.view.SetROIFields(image.Rectangle{})
	}
	p.Metadata.Show(meta)
	p.refreshStats()
	p.render()
	p.Status.Loaded(name, st.Len(), st.Width(), st.Height())
}

// SetFrame selects frame i, clamped to the stack. The ROI is kept and its
// statistics are recomputed against the new frame.
func (p *ViewerPresenter) SetFrame(i int) int {
	if p == nil || !p.stack.Loaded() {
		return 0
	}
	idx := p.stack.SetFrame(i)
	if p.view != nil {
		p.view.SetFrameControls(idx, p.stack.FrameCount())
	}
	p.refreshStats()
	p.render()
	return idx
}

// Step moves delta frames from the current one.
func (p *ViewerPresenter) Step(delta int) int {
	if p == nil {
		return 0
	}
	return p.SetFrame(p.stack.FrameIndex() + delta)
}

// SetContrast stores c clamped to the configured range and re-renders.
// Statistics are not affected.
func (p *ViewerPresenter) SetContrast(c float64) float64 {
	if p == nil {
		return 0
	}
	c = p.cfg.ClampContrast(c)
	p.stack.SetContrast(c)
	if p.view != nil {
		p.view.SetContrastValue(c)
	}
	p.render()
	return c
}

// NudgeContrast adds steps * ContrastStep to the current contrast.
func (p *ViewerPresenter) NudgeContrast(steps int) float64 {
	if p == nil {
		return 0
	}
	return p.SetContrast(p.stack.Contrast() + float64(steps)*p.cfg.ContrastStep)
}

// SetContrastMode switches the transfer curve ("linear" or "gamma").
func (p *ViewerPresenter) SetContrastMode(name string) {
	if p == nil {
		return
	}
	p.mode = stack.ParseContrastMode(name)
	p.cfg.ContrastMode = p.mode.String()
	p.render()
}

// SetROIMode toggles ROI mode. Turning it off clears rectangle and statistics.
func (p *ViewerPresenter) SetROIMode(on bool) {
	if p == nil {
		return
	}
	p.roi.SetEnabled(on)
	if p.view != nil {
		p.view.SetROIMode(on)
		if !on {
			p.view.SetROIFields(image.Rectangle{})
		}
	}
	p.refreshStats()
	p.render()
}

// ApplyConfig re-reads display settings after the config was edited and
// re-renders. The contrast is clamped to the possibly narrowed range.
func (p *ViewerPresenter) ApplyConfig() {
	if p == nil {
		return
	}
	p.mode = stack.ParseContrastMode(p.cfg.ContrastMode)
	p.roiColor = images.ParseHexColor(p.cfg.ROIColor)
	p.filter = images.ParseFilter(p.cfg.DisplayFilter)
	c := p.cfg.ClampContrast(p.stack.Contrast())
	p.stack.SetContrast(c)
	if p.view != nil {
		p.view.SetContrastValue(c)
		p.view.SetContrastModeValue(p.mode.String())
	}
	p.render()
}

// ToggleROIMode flips ROI mode.
func (p *ViewerPresenter) ToggleROIMode() {
	if p == nil {
		return
	}
	p.SetROIMode(!p.roi.Enabled())
}

// SelectDisplay sets the ROI from two corners dragged on the image panel, in
// display coordinates. Ignored unless ROI mode is on.
func (p *ViewerPresenter) SelectDisplay(a, b image.Point) {
	if p == nil || !p.roi.Enabled() || !p.stack.Loaded() {
		return
	}
	p.SelectImage(p.mapping.RectToImage(a, b))
}

// SelectImage sets the ROI in image coordinates, turning ROI mode on when
// needed. Degenerate rectangles report "No selection".
func (p *ViewerPresenter) SelectImage(r image.Rectangle) {
	if p == nil {
		return
	}
	if !p.stack.Loaded() {
		p.Status.Info("No image loaded")
		return
	}
	if !p.roi.Enabled() {
		p.roi.SetEnabled(true)
		if p.view != nil {
			p.view.SetROIMode(true)
		}
	}
	p.roi.SetROI(r, p.stack.Stack().Bounds())
	if p.view != nil {
		p.view.SetROIFields(p.roi.ROI())
	}
	if p.logger != nil {
		p.logger.Debug("roi selected", "requested", r.String(), "clipped", p.roi.ROI().String())
	}
	p.refreshStats()
	p.render()
}

// ClearROI drops the rectangle but keeps ROI mode.
func (p *ViewerPresenter) ClearROI() {
	if p == nil {
		return
	}
	p.roi.Clear()
	if p.view != nil {
		p.view.SetROIFields(image.Rectangle{})
	}
	p.refreshStats()
	p.render()
}

// CurrentStats recomputes statistics of the active ROI on the active frame.
func (p *ViewerPresenter) CurrentStats() (stack.Stats, error) {
	if p == nil || !p.roi.Active() {
		return stack.Stats{}, stack.ErrNoSelection
	}
	return stack.ComputeStats(p.stack.Frame(), p.roi.ROI())
}

// Mapping returns the display/image mapping of the last render.
func (p *ViewerPresenter) Mapping() images.Mapping {
	if p == nil {
		return images.Mapping{}
	}
	return p.mapping
}

func (p *ViewerPresenter) refreshStats() {
	switch {
	case !p.roi.Enabled():
		p.Stats.Hide()
	case !p.roi.Active() || !p.stack.Loaded():
		p.Stats.NoSelection()
	default:
		if _, err := p.Stats.Show(p.stack.Frame(), p.roi.ROI()); err != nil && p.logger != nil {
			p.logger.Debug("roi stats", "error", err)
		}
	}
}

// render rebuilds the display copy: rescale, fit, outline.
func (p *ViewerPresenter) render() {
	if p.view == nil {
		return
	}
	f := p.stack.Frame()
	if f == nil {
		p.mapping = images.Mapping{}
		p.view.ShowImage(images.Placeholder(PlaceholderSize, PlaceholderSize))
		return
	}
	gray := stack.Rescale(f, p.stack.Contrast(), p.mode)
	disp := images.ScaleToFit(gray, p.cfg.DisplayMaxW, p.cfg.DisplayMaxH, p.filter)
	p.mapping = images.NewMapping(f.Bounds(), disp.Bounds().Dx(), disp.Bounds().Dy())
	if p.roi.Active() {
		images.DrawOutline(disp, p.mapping.RectToDisplay(p.roi.ROI()), p.roiColor)
	}
	p.view.ShowImage(disp)
}
