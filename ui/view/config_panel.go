package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/tiffscope/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the settings form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	ApplyChanges()                                        // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	onApplied func()
	applyBtn  *ButtonWidget
	widgets   map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg. onApplied runs after a
// successful apply so the display can pick up the new values.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApplied func()) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApplied: onApplied, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(12))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("displayMaxW", "Display Max Width", fmt.Sprintf("%d", c.DisplayMaxW))
	makeRow("displayMaxH", "Display Max Height", fmt.Sprintf("%d", c.DisplayMaxH))
	makeRow("contrastMin", "Contrast Min", fmt.Sprintf("%.2f", c.ContrastMin))
	makeRow("contrastMax", "Contrast Max", fmt.Sprintf("%.2f", c.ContrastMax))
	makeRow("contrastStep", "Contrast Step", fmt.Sprintf("%.3f", c.ContrastStep))
	makeRow("displayFilter", "Display Filter (nearest/smooth)", c.DisplayFilter)
	makeRow("roiColor", "ROI Colour (#rrggbb)", c.ROIColor)
	makeRow("debug", "Debug Logging (true/false)", fmt.Sprintf("%t", c.Debug))
	v.applyBtn = Button(Txt("Apply Settings"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) values() map[string]string {
	out := make(map[string]string, len(v.widgets))
	for id, w := range v.widgets {
		out[id] = strings.TrimSpace(v.text(w))
	}
	return out
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := applySettings(*v.cfg, v.values())
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if v.cfgPath != "" {
		if err := v.cfg.Save(v.cfgPath); err != nil {
			if v.logger != nil {
				v.logger.Error("config save failed", "error", err)
			}
		} else if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
	if v.onApplied != nil {
		v.onApplied()
	}
}

// applySettings copies parseable form values onto cfg; unparseable fields keep
// their previous value.
func applySettings(cfg config.Config, vals map[string]string) config.Config {
	assignFloat := func(id string, dst *float64) {
		if f, ok := parseFloatField(vals[id]); ok {
			*dst = f
		}
	}
	assignInt := func(id string, dst *int) {
		if i, ok := parseIntField(vals[id]); ok {
			*dst = i
		}
	}
	assignBool := func(id string, dst *bool) {
		if b, ok := parseBoolLoose(vals[id]); ok {
			*dst = b
		}
	}
	assignInt("displayMaxW", &cfg.DisplayMaxW)
	assignInt("displayMaxH", &cfg.DisplayMaxH)
	assignFloat("contrastMin", &cfg.ContrastMin)
	assignFloat("contrastMax", &cfg.ContrastMax)
	assignFloat("contrastStep", &cfg.ContrastStep)
	assignBool("debug", &cfg.Debug)
	if val := strings.TrimSpace(vals["displayFilter"]); val != "" {
		cfg.DisplayFilter = val
	}
	if val := strings.TrimSpace(vals["roiColor"]); val != "" {
		cfg.ROIColor = val
	}
	return cfg
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
