package view

import (
	"image"
	"log/slog"

	"github.com/soocke/tiffscope/config"
	"github.com/soocke/tiffscope/ui/keys"
	"github.com/soocke/tiffscope/ui/presenter"
	"github.com/soocke/tiffscope/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns the subviews and implements the view contracts the presenters use.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Image    ImagePanel
	Controls ControlPanel
	Stats    StatsPanel
	Metadata MetadataPanel
	Settings ConfigPanel

	// Widgets
	StatusLabel *TLabelWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	presenter.ImageView
	presenter.StatsView
	presenter.MetadataView
	presenter.StatusView
	ChooseFile() string
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout: image on the left, controls, statistics,
// metadata and settings on the right, status line at the bottom. Handlers are invoked on
// user actions.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	left := Frame()
	Grid(left, Row(0), Column(0), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	right := Frame()
	Grid(right, Row(0), Column(1), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	GridColumnConfigure(App, 1, Weight(1))
	GridRowConfigure(App, 0, Weight(1))

	rv.Image = NewImagePanel(left, 0, 0, presenter.PlaceholderSize, presenter.PlaceholderSize, h.SelectDisplay)

	rv.Controls = NewControlPanel(h, rv.cfg.ContrastMode, rv.logger)
	row := rv.Controls.Build(right, 0)
	// Stats and metadata span the control columns.
	box := Frame()
	Grid(box, In(right), Row(row), Column(0), Columnspan(6), Sticky("nsew"))
	rv.Stats = NewStatsPanel(box, 0)
	rv.Metadata = NewMetadataPanel(box, 2)
	settings := Frame()
	Grid(settings, In(right), Row(row+1), Column(0), Columnspan(6), Sticky("we"))
	rv.Settings = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.SettingsApplied)
	rv.Settings.Build(settings, 0)

	rv.StatusLabel = TLabel(Txt(""), Style(theme.StyleStatusLabel), Anchor("w"))
	Grid(rv.StatusLabel, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// "." sees keys typed into every entry; editors keep their cursor keys.
	step := Command(func(e *Event) {
		focus := ""
		if e.EventWindow != nil {
			focus = e.EventWindow.String()
		}
		if d := keys.FrameStep(e.Keysym, focus); d != 0 && h.StepFrame != nil {
			h.StepFrame(d)
		}
	})
	Bind(App, "<Left>", step)
	Bind(App, "<Right>", step)
	Bind(App, "<Control-o>", Command(func() { call(h.Open) }))
}

// ChooseFile opens the file dialog and returns the chosen path or "".
func (rv *RootView) ChooseFile() string {
	opts := []Opt{Title("Open TIFF"), Multiple(false)}
	if rv != nil && rv.cfg != nil && rv.cfg.LastDir != "" {
		opts = append(opts, Initialdir(rv.cfg.LastDir))
	}
	files := GetOpenFile(opts...)
	if len(files) == 0 {
		return ""
	}
	return files[0]
}

// ShowImage proxies to the image panel.
func (rv *RootView) ShowImage(img image.Image) {
	if rv != nil && rv.Image != nil {
		rv.Image.Show(img)
	}
}

func (rv *RootView) SetFrameControls(index, count int) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetFrameControls(index, count)
	}
}

func (rv *RootView) SetContrastValue(c float64) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetContrastValue(c)
	}
}

func (rv *RootView) SetContrastModeValue(mode string) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetContrastModeValue(mode)
	}
}

func (rv *RootView) SetROIMode(on bool) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetROIMode(on)
	}
}

func (rv *RootView) SetROIFields(r image.Rectangle) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetROIFields(r)
	}
}

func (rv *RootView) SetStats(rows []presenter.StatRow) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.SetStats(rows)
	}
}

func (rv *RootView) ClearStats(msg string) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.ClearStats(msg)
	}
}

func (rv *RootView) SetMetadataText(s string) {
	if rv != nil && rv.Metadata != nil {
		rv.Metadata.SetText(s)
	}
}

// SetStatus updates the status line text.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}
