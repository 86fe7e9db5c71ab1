package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/janekbaraniewski/timeplot/internal/axis"
	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/interaction"
	"github.com/janekbaraniewski/timeplot/internal/palette"
	"github.com/janekbaraniewski/timeplot/internal/parsers"
)

type MarginConfig struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

type ChartConfig struct {
	Level       string  `json:"level" yaml:"level"`               // "zero" or "average"
	ClickAction string  `json:"click_action" yaml:"click_action"` // "highlight" or "none"
	PosPalette  string  `json:"pos_palette" yaml:"pos_palette"`
	NegPalette  string  `json:"neg_palette" yaml:"neg_palette"`
	FadeOpacity float64 `json:"fade_opacity" yaml:"fade_opacity"`
	// Margin is in the backend's units; nil keeps the backend default.
	Margin *MarginConfig `json:"margin,omitempty" yaml:"margin,omitempty"`
}

type XTickConfig struct {
	Name        string `json:"name" yaml:"name"`
	IsDate      bool   `json:"is_date" yaml:"is_date"`
	Format      string `json:"format" yaml:"format"`             // strftime layout of the input dates
	LabelFormat string `json:"label_format" yaml:"label_format"` // strftime layout of axis labels
	Interval    string `json:"interval" yaml:"interval"`         // "auto", "month", "week", "biweek" or a number
}

type YTickConfig struct {
	Num    int    `json:"num" yaml:"num"`
	Format string `json:"format" yaml:"format"`
}

type FormatConfig struct {
	Format string `json:"format" yaml:"format"`
}

type ToggleConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

type SliderConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Format  string `json:"format" yaml:"format"`
}

type Config struct {
	Theme       string       `json:"theme" yaml:"theme"`
	Chart       ChartConfig  `json:"chart" yaml:"chart"`
	XTick       XTickConfig  `json:"xtick" yaml:"xtick"`
	YTick       YTickConfig  `json:"ytick" yaml:"ytick"`
	Tooltip     FormatConfig `json:"tooltip" yaml:"tooltip"`
	Legend      FormatConfig `json:"legend" yaml:"legend"`
	Average     ToggleConfig `json:"average" yaml:"average"`
	Slider      SliderConfig `json:"slider" yaml:"slider"`
	Highlighter ToggleConfig `json:"highlighter" yaml:"highlighter"`
}

const (
	defaultFadeOpacity = 0.3
	defaultYTicks      = 5
)

func DefaultConfig() Config {
	return Config{
		Theme: "Catppuccin Mocha",
		Chart: ChartConfig{
			Level:       string(core.LevelZero),
			ClickAction: string(interaction.ClickHighlight),
			PosPalette:  "reds",
			NegPalette:  "blues",
			FadeOpacity: defaultFadeOpacity,
		},
		XTick: XTickConfig{
			Format:      parsers.DefaultDateFormat,
			LabelFormat: parsers.DefaultDateFormat,
			Interval:    axis.IntervalAuto,
		},
		YTick:       YTickConfig{Num: defaultYTicks},
		Average:     ToggleConfig{Enabled: true},
		Slider:      SliderConfig{Enabled: true},
		Highlighter: ToggleConfig{Enabled: true},
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "timeplot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "timeplot")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFrom reads a JSON or YAML (by extension) config over the defaults.
// A missing file yields the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Chart.Level == "" {
		c.Chart.Level = def.Chart.Level
	}
	if c.Chart.ClickAction == "" {
		c.Chart.ClickAction = def.Chart.ClickAction
	}
	if c.Chart.PosPalette == "" {
		c.Chart.PosPalette = def.Chart.PosPalette
	}
	if c.Chart.NegPalette == "" {
		c.Chart.NegPalette = def.Chart.NegPalette
	}
	if c.Chart.FadeOpacity <= 0 || c.Chart.FadeOpacity > 1 {
		c.Chart.FadeOpacity = def.Chart.FadeOpacity
	}
	if c.XTick.Format == "" {
		c.XTick.Format = def.XTick.Format
	}
	if c.XTick.LabelFormat == "" {
		c.XTick.LabelFormat = def.XTick.LabelFormat
	}
	if c.XTick.Interval == "" {
		c.XTick.Interval = def.XTick.Interval
	}
	if c.YTick.Num <= 0 {
		c.YTick.Num = def.YTick.Num
	}
}

// Validate reports the first option that cannot be used to build a chart.
func (c Config) Validate() error {
	if _, err := core.ParseLevelPolicy(c.Chart.Level); err != nil {
		return err
	}
	if _, err := interaction.ParseClickAction(c.Chart.ClickAction); err != nil {
		return err
	}
	if _, err := palette.Named(c.Chart.PosPalette); err != nil {
		return fmt.Errorf("pos_palette: %w", err)
	}
	if _, err := palette.Named(c.Chart.NegPalette); err != nil {
		return fmt.Errorf("neg_palette: %w", err)
	}
	if err := parsers.ValidateFormat(c.XTick.Format); err != nil {
		return fmt.Errorf("xtick.format: %w", err)
	}
	if err := parsers.ValidateFormat(c.XTick.LabelFormat); err != nil {
		return fmt.Errorf("xtick.label_format: %w", err)
	}
	interval := strings.ToLower(c.XTick.Interval)
	if interval != axis.IntervalAuto && !axis.IsDateInterval(interval) {
		if n, err := strconv.Atoi(interval); err != nil || n <= 0 {
			return fmt.Errorf("xtick.interval %q: want auto, month, week, biweek or a positive number", c.XTick.Interval)
		}
	}
	return nil
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveThemeTo persists a theme name into the config file at path.
func SaveThemeTo(path string, theme string) error {
	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Theme = theme
	return SaveTo(path, cfg)
}
