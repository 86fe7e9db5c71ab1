package tui

import (
	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/interaction"
	"github.com/janekbaraniewski/timeplot/internal/render"
)

// RenderFrame draws chart once, without interaction, into a w×h block of
// styled terminal text.
func RenderFrame(chart *core.Chart, settings Settings, w, h int) string {
	if chart == nil {
		chart = &core.Chart{}
	}
	cfg := settings.Render
	cfg.Colors = ActiveTheme().ChartColors()
	ctrl := interaction.NewController(chart, settings.Level.Initial(chart.Extent), settings.Interaction, interaction.Hooks{})
	surface := newCellSurface(w, h, string(ActiveTheme().Base))
	render.New(cfg, chart, cellMetrics{}, float64(w), float64(h)).Draw(surface, ctrl)
	return surface.View()
}
