package app

import (
	"log/slog"

	"github.com/soocke/tiffscope/config"
	"github.com/soocke/tiffscope/domain/tiffio"
	"github.com/soocke/tiffscope/ui/model"
	"github.com/soocke/tiffscope/ui/presenter"
	"github.com/soocke/tiffscope/ui/view"
)

// AppContainer assembles models, the loader, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Stack      *model.StackModel
	ROI        *model.ROIModel
	Loader     *tiffio.Loader
	RootView   *view.RootView
	UI         view.UI

	// Presenters
	Viewer   *presenter.ViewerPresenter
	Stats    *presenter.StatsPresenter
	Metadata *presenter.MetadataPresenter
	Status   *presenter.StatusPresenter
}

// BuildContainer constructs all components. Widgets are created later by RootView.Build.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Stack = model.NewStackModel(cfg.ContrastDefault)
	c.ROI = model.NewROIModel()
	c.Loader = tiffio.NewLoader(logger)
	// View
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	// Presenters
	c.Stats = presenter.NewStatsPresenter(c.UI)
	c.Metadata = presenter.NewMetadataPresenter(c.UI)
	c.Status = presenter.NewStatusPresenter(c.UI)
	c.Viewer = presenter.NewViewerPresenter(cfg, c.Loader, c.Stack, c.ROI, c.UI, c.Stats, c.Metadata, c.Status, logger)
	return c
}
