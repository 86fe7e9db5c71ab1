package tui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/janekbaraniewski/timeplot/internal/config"
	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/interaction"
	"github.com/janekbaraniewski/timeplot/internal/legend"
	"github.com/janekbaraniewski/timeplot/internal/render"
)

type frameMsg time.Time

const frameInterval = 40 * time.Millisecond

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// doubleClick is the longest gap between two slider clicks that resets the level.
const doubleClick = 400 * time.Millisecond

// ChartMsg replaces the displayed data, e.g. after the input file changed.
type ChartMsg struct {
	Chart *core.Chart
	Err   error
}

type themePersistedMsg struct {
	err error
}

// pointer is what the mouse is over, split the way the chart nests its
// shapes: a dot lives inside its category group.
type pointer struct {
	inChart  bool
	dot      *core.PointRef
	category int
	bucket   *legend.Bucket
}

func noPointer() pointer { return pointer{category: interaction.None} }

type Model struct {
	settings Settings
	chart    *core.Chart
	ctrl     *interaction.Controller
	renderer *render.Renderer
	frame    *cellSurface

	width  int
	height int

	title      string
	configPath string
	status     string
	showHelp   bool

	pointer        pointer
	lastSliderTime time.Time
	animating      bool

	now func() time.Time
}

func NewModel(title string, chart *core.Chart, settings Settings, hooks interaction.Hooks) Model {
	if chart == nil {
		chart = &core.Chart{}
	}
	m := Model{
		settings: settings,
		chart:    chart,
		ctrl:     interaction.NewController(chart, settings.Level.Initial(chart.Extent), settings.Interaction, hooks),
		title:    title,
		pointer:  noPointer(),
		now:      time.Now,
	}
	return m
}

// SetConfigPath enables persisting theme changes to path.
func (m *Model) SetConfigPath(path string) {
	m.configPath = path
}

// Controller exposes the interaction state, mainly for tests and hooks.
func (m Model) Controller() *interaction.Controller { return m.ctrl }

func (m Model) persistThemeCmd(themeName string) tea.Cmd {
	path := m.configPath
	return func() tea.Msg {
		err := config.SaveThemeTo(path, themeName)
		if err != nil {
			log.Printf("theme persist: %v", err)
		}
		return themePersistedMsg{err: err}
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.redraw()
		if m.ctrl.Animating() {
			return m, frameCmd()
		}
		m.animating = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuild()
		return m, nil

	case ChartMsg:
		if msg.Err != nil {
			m.status = "reload failed: " + msg.Err.Error()
			log.Printf("reload: %v", msg.Err)
			return m, nil
		}
		m.chart = msg.Chart
		if m.chart == nil {
			m.chart = &core.Chart{}
		}
		m.ctrl.SetChart(m.chart, m.settings.Level.Initial(m.chart.Extent))
		m.pointer = noPointer()
		m.status = "reloaded " + frameDate(m.now())
		m.rebuild()
		return m, nil

	case themePersistedMsg:
		if msg.err != nil {
			m.status = "theme save failed"
		} else {
			m.status = "theme saved"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) chartHeight() int { return max(m.height-1, 0) }

// rebuild recomputes the layout after a size or data change.
func (m *Model) rebuild() {
	cfg := m.settings.Render
	cfg.Colors = ActiveTheme().ChartColors()
	m.renderer = render.New(cfg, m.chart, cellMetrics{}, float64(m.width), float64(m.chartHeight()))
	m.redraw()
}

func (m *Model) redraw() {
	if m.renderer == nil {
		return
	}
	m.frame = newCellSurface(m.width, m.chartHeight(), string(colorBase))
	m.renderer.Draw(m.frame, m.ctrl)
}

// changed redraws and starts the marker animation when needed.
func (m Model) changed() (tea.Model, tea.Cmd) {
	m.redraw()
	if m.ctrl.Animating() && !m.animating {
		m.animating = true
		return m, frameCmd()
	}
	return m, nil
}

func (m Model) hitTest(x, y int) (interaction.Target, bool) {
	if m.frame == nil || y < 0 || y >= m.chartHeight() || x < 0 || x >= m.width {
		return interaction.Surface(), false
	}
	return m.frame.HitTest(x, y), true
}

func pointerAt(t interaction.Target, inChart bool) pointer {
	p := noPointer()
	p.inChart = inChart
	switch t.Kind {
	case interaction.TargetDot:
		ref := t.Point
		p.dot = &ref
		p.category = ref.CategoryIndex
	case interaction.TargetCategory:
		p.category = t.Category
	case interaction.TargetBucket:
		b := t.Bucket
		p.bucket = &b
	}
	return p
}

// move turns a pointer position change into leave and enter events,
// leaving inner shapes before outer ones and entering outer ones first.
func (m *Model) move(next pointer) bool {
	prev := m.pointer
	m.pointer = next
	changed := false
	dispatch := func(ev interaction.Event) {
		if m.ctrl.Dispatch(ev) {
			changed = true
		}
	}

	sameDot := prev.dot != nil && next.dot != nil && *prev.dot == *next.dot
	if prev.dot != nil && !sameDot {
		dispatch(interaction.PointerLeave{Target: interaction.Dot(*prev.dot)})
	}
	if prev.category != interaction.None && prev.category != next.category {
		dispatch(interaction.PointerLeave{Target: interaction.Category(prev.category)})
	}
	sameBucket := prev.bucket != nil && next.bucket != nil && prev.bucket.Same(*next.bucket)
	if prev.bucket != nil && !sameBucket {
		dispatch(interaction.PointerLeave{Target: interaction.Bucket(*prev.bucket)})
	}
	if prev.inChart && !next.inChart {
		dispatch(interaction.PointerLeave{Target: interaction.Chart()})
	}

	if next.category != interaction.None && prev.category != next.category {
		dispatch(interaction.PointerEnter{Target: interaction.Category(next.category)})
	}
	if next.dot != nil && !sameDot {
		dispatch(interaction.PointerEnter{Target: interaction.Dot(*next.dot)})
	}
	if next.bucket != nil && !sameBucket {
		dispatch(interaction.PointerEnter{Target: interaction.Bucket(*next.bucket)})
	}
	return changed
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.renderer == nil {
		return m, nil
	}
	target, inChart := m.hitTest(msg.X, msg.Y)
	moved := m.move(pointerAt(target, inChart))

	switch msg.Action {
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft && target.Kind == interaction.TargetSlider {
			return m.setLevel(m.renderer.Slider().ValueAt(float64(msg.Y) + 0.5))
		}
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if target.Kind != interaction.TargetSlider {
				break
			}
			n := 1
			if msg.Button == tea.MouseButtonWheelDown {
				n = -1
			}
			return m.setLevel(m.renderer.Slider().Nudge(m.ctrl.Level(), n))
		case tea.MouseButtonLeft:
			if target.Kind == interaction.TargetSlider {
				return m.sliderClick(float64(msg.Y) + 0.5)
			}
			if m.ctrl.Dispatch(interaction.Click{Target: target}) {
				moved = true
			}
		}
	}
	if moved {
		return m.changed()
	}
	return m, nil
}

func (m Model) sliderClick(y float64) (tea.Model, tea.Cmd) {
	now := m.now()
	double := !m.lastSliderTime.IsZero() && now.Sub(m.lastSliderTime) <= doubleClick
	m.lastSliderTime = now
	if double {
		m.lastSliderTime = time.Time{}
		m.ctrl.Dispatch(interaction.SliderReset{})
		return m.changed()
	}
	return m.setLevel(m.renderer.Slider().ValueAt(y))
}

func (m Model) setLevel(v float64) (tea.Model, tea.Cmd) {
	if !m.settings.Render.SliderEnabled {
		return m, nil
	}
	if m.ctrl.Dispatch(interaction.SliderInput{Value: v}) {
		return m.changed()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.ctrl.Dispatch(interaction.Click{Target: interaction.Surface()}) {
			return m.changed()
		}
		return m, nil
	case "t":
		name := CycleTheme()
		m.rebuild()
		if m.configPath == "" {
			return m, nil
		}
		return m, m.persistThemeCmd(name)
	}

	if m.renderer == nil {
		return m, nil
	}
	sl := m.renderer.Slider()
	switch msg.String() {
	case "up", "k", "+":
		return m.setLevel(sl.Nudge(m.ctrl.Level(), 1))
	case "down", "j", "-":
		return m.setLevel(sl.Nudge(m.ctrl.Level(), -1))
	case "pgup":
		return m.setLevel(sl.Nudge(m.ctrl.Level(), 10))
	case "pgdown":
		return m.setLevel(sl.Nudge(m.ctrl.Level(), -10))
	case "0":
		if m.ctrl.Dispatch(interaction.SliderReset{}) {
			return m.changed()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width < 20 || m.height < 6 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Render("\n  Terminal too small. Resize to at least 20×6.")
	}
	if m.frame == nil {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.frame.View() + "\n" + m.renderStatusLine()
}

func (m Model) renderStatusLine() string {
	parts := []string{titleStyle.Render(filepath.Base(m.title))}
	parts = append(parts, labelStyle.Render("level ")+valueStyle.Render(m.levelLabel()))
	if mode := m.ctrl.Mode(); mode != interaction.Idle {
		parts = append(parts, labelStyle.Render(mode.String()))
	}
	if m.status != "" {
		st := dimStyle
		if strings.HasPrefix(m.status, "reload failed") {
			st = errorStyle
		}
		parts = append(parts, st.Render(m.status))
	}
	parts = append(parts, helpStyle.Render("? help"))
	line := " " + strings.Join(parts, dimStyle.Render(" · "))
	return ansi.Truncate(line, m.width, "…")
}

func (m Model) levelLabel() string {
	if f := m.settings.Render.Formatters.Slider; f != nil {
		return f(m.ctrl.Level())
	}
	return printf("", m.ctrl.Level())
}

func (m Model) renderHelp() string {
	keys := []struct{ key, desc string }{
		{"mouse", "hover dots, categories and legend cells"},
		{"click", "pin a dot or a legend range; click empty space to clear"},
		{"↑/↓", "move the level by one step"},
		{"PgUp/PgDn", "move the level by ten steps"},
		{"0", "reset the level"},
		{"esc", "clear pin and range"},
		{"t", fmt.Sprintf("cycle theme (%s)", ThemeName())},
		{"q", "quit"},
	}
	lines := []string{titleStyle.Render("timeplot"), ""}
	for _, k := range keys {
		lines = append(lines, helpKeyStyle.Render(fmt.Sprintf("%-10s", k.key))+" "+helpStyle.Render(k.desc))
	}
	box := overlayStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
