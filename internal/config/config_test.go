package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chart.Level != "zero" {
		t.Errorf("default level = %q, want zero", cfg.Chart.Level)
	}
	if cfg.Chart.FadeOpacity != 0.3 {
		t.Errorf("default fade = %f, want 0.3", cfg.Chart.FadeOpacity)
	}
	if cfg.YTick.Num != 5 {
		t.Errorf("default ytick.num = %d, want 5", cfg.YTick.Num)
	}
	if !cfg.Slider.Enabled || !cfg.Average.Enabled || !cfg.Highlighter.Enabled {
		t.Error("slider, average and highlighter should default to enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chart.PosPalette != "reds" {
		t.Error("should return defaults for missing file")
	}
}

func TestLoadFrom_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{
  "chart": {"level": "average", "neg_palette": "greens", "fade_opacity": 0.5, "margin": {"top": 2, "right": 9, "bottom": 3, "left": 1}},
  "xtick": {"name": "date", "is_date": true, "format": "%d/%m/%Y", "interval": "week"},
  "slider": {"enabled": false}
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Chart.Level != "average" || cfg.Chart.NegPalette != "greens" || cfg.Chart.FadeOpacity != 0.5 {
		t.Errorf("chart = %+v", cfg.Chart)
	}
	if cfg.Chart.PosPalette != "reds" {
		t.Errorf("unset pos_palette = %q, want default", cfg.Chart.PosPalette)
	}
	if cfg.Chart.Margin == nil || cfg.Chart.Margin.Right != 9 {
		t.Errorf("margin = %+v", cfg.Chart.Margin)
	}
	if cfg.XTick.Name != "date" || !cfg.XTick.IsDate || cfg.XTick.Interval != "week" {
		t.Errorf("xtick = %+v", cfg.XTick)
	}
	if cfg.XTick.LabelFormat != "%Y-%m-%d" {
		t.Errorf("label format = %q, want default", cfg.XTick.LabelFormat)
	}
	if cfg.Slider.Enabled {
		t.Error("slider should be disabled")
	}
	if !cfg.Average.Enabled {
		t.Error("average should keep its default")
	}
}

func TestLoadFrom_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	content := `
theme: Nord
chart:
  click_action: none
  fade_opacity: 0
ytick:
  num: 8
  format: "%.1f"
highlighter:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Theme != "Nord" || cfg.Chart.ClickAction != "none" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Chart.FadeOpacity != 0.3 {
		t.Errorf("zero fade should normalize to default, got %v", cfg.Chart.FadeOpacity)
	}
	if cfg.YTick.Num != 8 || cfg.YTick.Format != "%.1f" {
		t.Errorf("ytick = %+v", cfg.YTick)
	}
	if cfg.Highlighter.Enabled {
		t.Error("highlighter should be disabled")
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed json", "a.json", `{"chart": `},
		{"bad level", "b.json", `{"chart": {"level": "median"}}`},
		{"bad click action", "c.json", `{"chart": {"click_action": "toggle"}}`},
		{"bad palette", "d.json", `{"chart": {"pos_palette": "rainbow"}}`},
		{"bad date format", "e.json", `{"xtick": {"format": "%Q"}}`},
		{"bad interval", "f.yml", "xtick:\n  interval: yearly\n"},
	}
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFrom(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	for _, name := range []string{"settings.json", "settings.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := DefaultConfig()
			cfg.Theme = "Nord"
			cfg.XTick.Interval = "3"
			cfg.Chart.Margin = &MarginConfig{Top: 1, Right: 2, Bottom: 3, Left: 4}
			if err := SaveTo(path, cfg); err != nil {
				t.Fatalf("SaveTo: %v", err)
			}
			got, err := LoadFrom(path)
			if err != nil {
				t.Fatalf("LoadFrom: %v", err)
			}
			if got.Theme != "Nord" || got.XTick.Interval != "3" || got.Chart.Margin == nil || *got.Chart.Margin != *cfg.Chart.Margin {
				t.Errorf("round trip = %+v", got)
			}
		})
	}
}

func TestSaveThemeTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := SaveThemeTo(path, "Dracula"); err != nil {
		t.Fatalf("SaveThemeTo: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Theme != "Dracula" {
		t.Errorf("theme = %q", cfg.Theme)
	}
}
