package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the viewer.
// Fields may be loaded from a JSON or YAML file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug" yaml:"debug"`

	// Window geometry
	WindowWidth  int `json:"window_width" yaml:"window_width"`
	WindowHeight int `json:"window_height" yaml:"window_height"`

	// Largest on-screen size of the image panel; bigger frames are scaled down.
	DisplayMaxW int `json:"display_max_w" yaml:"display_max_w"`
	DisplayMaxH int `json:"display_max_h" yaml:"display_max_h"`

	// Downscale filter: "nearest" or "smooth"
	DisplayFilter string `json:"display_filter" yaml:"display_filter"`

	// Contrast slider range and initial value
	ContrastMin     float64 `json:"contrast_min" yaml:"contrast_min"`
	ContrastMax     float64 `json:"contrast_max" yaml:"contrast_max"`
	ContrastStep    float64 `json:"contrast_step" yaml:"contrast_step"`
	ContrastDefault float64 `json:"contrast_default" yaml:"contrast_default"`
	ContrastMode    string  `json:"contrast_mode" yaml:"contrast_mode"` // "linear" or "gamma"

	ROIColor string `json:"roi_color" yaml:"roi_color"` // #rrggbb
	DarkMode bool   `json:"dark_mode" yaml:"dark_mode"`

	// Directory of the last opened file, used as the dialog start point.
	LastDir string `json:"last_dir" yaml:"last_dir"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		WindowWidth:     1100,
		WindowHeight:    720,
		DisplayMaxW:     640,
		DisplayMaxH:     640,
		DisplayFilter:   "nearest",
		ContrastMin:     0,
		ContrastMax:     2,
		ContrastStep:    0.1,
		ContrastDefault: 1,
		ContrastMode:    "linear",
		ROIColor:        "#ff3b30",
		DarkMode:        false,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.WindowWidth < 400 {
		c.WindowWidth = 400
	}
	if c.WindowHeight < 300 {
		c.WindowHeight = 300
	}
	if c.DisplayMaxW < 64 {
		c.DisplayMaxW = 64
	}
	if c.DisplayMaxH < 64 {
		c.DisplayMaxH = 64
	}
	if c.ContrastMin < 0 {
		c.ContrastMin = 0
	}
	if c.ContrastMax <= c.ContrastMin {
		c.ContrastMax = c.ContrastMin + 2
	}
	if c.ContrastStep <= 0 || c.ContrastStep > c.ContrastMax-c.ContrastMin {
		c.ContrastStep = (c.ContrastMax - c.ContrastMin) / 20
	}
	if c.ContrastDefault < c.ContrastMin || c.ContrastDefault > c.ContrastMax {
		c.ContrastDefault = c.ContrastMin + (c.ContrastMax-c.ContrastMin)/2
	}
	switch f := strings.ToLower(strings.TrimSpace(c.DisplayFilter)); f {
	case "nearest", "smooth":
		c.DisplayFilter = f
	default:
		c.DisplayFilter = "nearest"
	}
	switch m := strings.ToLower(strings.TrimSpace(c.ContrastMode)); m {
	case "linear", "gamma":
		c.ContrastMode = m
	default:
		c.ContrastMode = "linear"
	}
	if !hexColor.MatchString(c.ROIColor) {
		c.ROIColor = "#ff3b30"
	}
	return nil
}

// ClampContrast bounds v to the configured contrast range.
func (c *Config) ClampContrast(v float64) float64 {
	if v < c.ContrastMin {
		return c.ContrastMin
	}
	if v > c.ContrastMax {
		return c.ContrastMax
	}
	return v
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load attempts to read configuration from the given file path. Files ending in
// .yaml or .yml are parsed as YAML, anything else as JSON. If the file does not
// exist it returns DefaultConfig(). On decode error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path, choosing the format by extension.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
