package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/soocke/tiffscope/assets"
	"github.com/soocke/tiffscope/config"
	"github.com/soocke/tiffscope/debug"
	"github.com/soocke/tiffscope/ui/theme"
	"github.com/soocke/tiffscope/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const memLogInterval = 5 * time.Second

// app owns the Tk main window and the component container.
type app struct {
	title  string
	c      *AppContainer
	logger *slog.Logger
	cancel context.CancelFunc
}

// NewApp configures the main window and builds the container.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	a := &app{title: title, logger: logger, c: BuildContainer(cfg, cfgPath, logger)}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", cfg.WindowWidth, cfg.WindowHeight))
	return a
}

// Start builds the UI, optionally loads initialPath (or the embedded demo
// stack) and runs the Tk event loop. It returns when the window is closed.
func (a *app) Start(initialPath string, demo bool) {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	defer cancel()

	cfg := a.c.Config
	theme.SetDark(cfg.DarkMode)
	v := a.c.Viewer
	a.c.RootView.Build(view.Handlers{
		Open:            a.open,
		SetFrame:        func(i int) { v.SetFrame(i) },
		StepFrame:       func(d int) { v.Step(d) },
		SetContrast:     func(c float64) { v.SetContrast(c) },
		NudgeContrast:   func(n int) { v.NudgeContrast(n) },
		SetContrastMode: v.SetContrastMode,
		ToggleROI:       v.ToggleROIMode,
		SelectDisplay:   v.SelectDisplay,
		ApplyROI:        v.SelectImage,
		ClearROI:        v.ClearROI,
		ToggleDark:      a.toggleDark,
		SettingsApplied: v.ApplyConfig,
		Exit:            a.exitHandler,
	})
	v.Init()
	switch {
	case initialPath != "":
		a.load(initialPath)
	case demo:
		a.loadDemo()
	}
	if cfg.Debug {
		debug.StartMemLogger(ctx, memLogInterval, a.logger)
	}
	App.Wait()
}

func (a *app) open() {
	path := a.c.UI.ChooseFile()
	if path == "" {
		return
	}
	a.load(path)
}

func (a *app) load(path string) {
	if err := a.c.Viewer.Load(path); err != nil {
		return
	}
	App.WmTitle(fmt.Sprintf("%s - %s", filepath.Base(path), a.title))
	a.saveConfig()
}

func (a *app) loadDemo() {
	r, err := assets.DemoReader()
	if err == nil {
		st, meta, derr := a.c.Loader.Decode(r)
		if derr == nil {
			a.c.Viewer.Show(assets.DemoName, st, meta)
			App.WmTitle(fmt.Sprintf("%s - %s", assets.DemoName, a.title))
			return
		}
		err = derr
	}
	a.logger.Error("demo stack", "error", err)
	a.c.Status.LoadFailed(assets.DemoName, err)
}

func (a *app) toggleDark() {
	a.c.Config.DarkMode = theme.ToggleDark()
	a.saveConfig()
}

func (a *app) saveConfig() {
	if a.c.ConfigPath == "" {
		return
	}
	if err := a.c.Config.Save(a.c.ConfigPath); err != nil {
		a.logger.Error("config save failed", "path", a.c.ConfigPath, "error", err)
		return
	}
	a.logger.Debug("config saved", "path", a.c.ConfigPath)
}

func (a *app) exitHandler() {
	if a.cancel != nil {
		a.cancel()
	}
	a.saveConfig()
	Destroy(App)
}
