package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/janekbaraniewski/timeplot/internal/config"
	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/interaction"
	"github.com/janekbaraniewski/timeplot/internal/palette"
	"github.com/janekbaraniewski/timeplot/internal/parsers"
	"github.com/janekbaraniewski/timeplot/internal/render"
)

// Settings is a validated config.Config split by consumer.
type Settings struct {
	Build       core.BuildOptions
	Level       core.LevelPolicy
	Interaction interaction.Options
	Render      render.Config
}

// NewSettings resolves palettes, policies and formatters. The renderer
// colors are left empty; the model fills them from the active theme.
func NewSettings(cfg config.Config) (Settings, error) {
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	level, err := core.ParseLevelPolicy(cfg.Chart.Level)
	if err != nil {
		return Settings{}, err
	}
	click, err := interaction.ParseClickAction(cfg.Chart.ClickAction)
	if err != nil {
		return Settings{}, err
	}
	pos, err := palette.Named(cfg.Chart.PosPalette)
	if err != nil {
		return Settings{}, fmt.Errorf("pos_palette: %w", err)
	}
	neg, err := palette.Named(cfg.Chart.NegPalette)
	if err != nil {
		return Settings{}, fmt.Errorf("neg_palette: %w", err)
	}

	margin := TerminalMargin
	if m := cfg.Chart.Margin; m != nil {
		margin = render.Margin{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left}
	}

	labelFormat := cfg.XTick.LabelFormat
	return Settings{
		Build: core.BuildOptions{
			CategoryColumn: cfg.XTick.Name,
			IsDate:         cfg.XTick.IsDate,
			DateFormat:     cfg.XTick.Format,
		},
		Level: level,
		Interaction: interaction.Options{
			ClickAction:        click,
			FadeOpacity:        cfg.Chart.FadeOpacity,
			HighlighterEnabled: cfg.Highlighter.Enabled,
		},
		Render: render.Config{
			Margin:             margin,
			Units:              TerminalUnits,
			Pos:                pos,
			Neg:                neg,
			IsDate:             cfg.XTick.IsDate,
			XInterval:          cfg.XTick.Interval,
			YTickCount:         cfg.YTick.Num,
			AverageEnabled:     cfg.Average.Enabled,
			SliderEnabled:      cfg.Slider.Enabled,
			HighlighterEnabled: cfg.Highlighter.Enabled,
			Formatters: render.Formatters{
				Category: func(c core.Category) string {
					if c.IsDate {
						return parsers.FormatTime(labelFormat, c.Time)
					}
					return c.Label
				},
				YTick: func(v float64, _ bool) string {
					return printf(cfg.YTick.Format, v)
				},
				Tooltip: numberFormatter(cfg.Tooltip.Format),
				Legend: func(v float64, _ bool) string {
					return printf(cfg.Legend.Format, v)
				},
				Slider: numberFormatter(cfg.Slider.Format),
			},
		},
	}, nil
}

func numberFormatter(format string) func(float64) string {
	return func(v float64) string { return printf(format, v) }
}

// printf formats v with a printf verb, or as the shortest exact decimal
// when format is empty.
func printf(format string, v float64) string {
	if strings.TrimSpace(format) == "" {
		return parsers.FormatNumber(v)
	}
	return fmt.Sprintf(format, v)
}

// frameDate formats the status line clock.
func frameDate(t time.Time) string {
	return parsers.FormatTime("%H:%M:%S", t)
}
