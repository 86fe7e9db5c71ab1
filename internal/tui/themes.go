package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/janekbaraniewski/timeplot/internal/render"
)

// TIMEPLOT_THEME_DIR can point to one or more additional theme directories
// (path-list separated, e.g. ":" on unix, ";" on Windows).
const themeDirEnvVar = "TIMEPLOT_THEME_DIR"

const defaultThemeName = "Catppuccin Mocha"

// Theme is the color token set used to paint the chart and the status line.
//
// External themes are JSON or YAML files with matching snake_case fields,
// for example: {"name":"My Theme","base":"#111111",...}.
type Theme struct {
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`

	// Base is the chart background; faded dots are blended against it.
	Base     lipgloss.Color `json:"base" yaml:"base"`
	Mantle   lipgloss.Color `json:"mantle" yaml:"mantle"`
	Surface0 lipgloss.Color `json:"surface0" yaml:"surface0"`
	Surface1 lipgloss.Color `json:"surface1" yaml:"surface1"`

	Text    lipgloss.Color `json:"text" yaml:"text"`
	Subtext lipgloss.Color `json:"subtext" yaml:"subtext"`
	Dim     lipgloss.Color `json:"dim" yaml:"dim"`

	Accent   lipgloss.Color `json:"accent" yaml:"accent"`
	Peach    lipgloss.Color `json:"peach" yaml:"peach"`
	Lavender lipgloss.Color `json:"lavender" yaml:"lavender"`
}

var (
	themeMu        sync.RWMutex
	themes         []Theme
	activeThemeIdx int
)

func init() {
	themes = builtinThemes()
	activeThemeIdx = defaultThemeIndex(themes)
	if len(themes) > 0 {
		applyTheme(themes[activeThemeIdx])
	}
}

func builtinThemes() []Theme {
	return []Theme{
		{
			Name: "Catppuccin Mocha", Icon: "🐱",
			Base: "#1E1E2E", Mantle: "#181825", Surface0: "#313244", Surface1: "#45475A",
			Text: "#CDD6F4", Subtext: "#A6ADC8", Dim: "#585B70",
			Accent: "#CBA6F7", Peach: "#FAB387", Lavender: "#B4BEFE",
		},
		{
			Name: "Gruvbox", Icon: "🌻",
			Base: "#282828", Mantle: "#1D2021", Surface0: "#3C3836", Surface1: "#504945",
			Text: "#EBDBB2", Subtext: "#D5C4A1", Dim: "#665C54",
			Accent: "#D3869B", Peach: "#FE8019", Lavender: "#D3869B",
		},
		{
			Name: "Dracula", Icon: "🧛",
			Base: "#282A36", Mantle: "#21222C", Surface0: "#44475A", Surface1: "#6272A4",
			Text: "#F8F8F2", Subtext: "#BFBFBF", Dim: "#6272A4",
			Accent: "#BD93F9", Peach: "#FFB86C", Lavender: "#BD93F9",
		},
		{
			Name: "Nord", Icon: "❄",
			Base: "#2E3440", Mantle: "#242933", Surface0: "#3B4252", Surface1: "#434C5E",
			Text: "#ECEFF4", Subtext: "#D8DEE9", Dim: "#4C566A",
			Accent: "#B48EAD", Peach: "#D08770", Lavender: "#B48EAD",
		},
		{
			Name: "Tokyo Night", Icon: "🌃",
			Base: "#1A1B26", Mantle: "#16161E", Surface0: "#24283B", Surface1: "#414868",
			Text: "#C0CAF5", Subtext: "#A9B1D6", Dim: "#565F89",
			Accent: "#BB9AF7", Peach: "#FF9E64", Lavender: "#BB9AF7",
		},
		{
			Name: "Solarized Dark", Icon: "🌅",
			Base: "#002B36", Mantle: "#073642", Surface0: "#073642", Surface1: "#0E3A45",
			Text: "#93A1A1", Subtext: "#839496", Dim: "#586E75",
			Accent: "#D33682", Peach: "#CB4B16", Lavender: "#6C71C4",
		},
		{
			Name: "Rose Pine", Icon: "🌹",
			Base: "#191724", Mantle: "#16141F", Surface0: "#1F1D2E", Surface1: "#26233A",
			Text: "#E0DEF4", Subtext: "#908CAA", Dim: "#6E6A86",
			Accent: "#C4A7E7", Peach: "#EA9A97", Lavender: "#C4A7E7",
		},
		{
			Name: "Grayscale", Icon: "⬛",
			Base: "#000000", Mantle: "#0A0A0A", Surface0: "#181818", Surface1: "#2A2A2A",
			Text: "#F5F5F5", Subtext: "#D6D6D6", Dim: "#A8A8A8",
			Accent: "#FFFFFF", Peach: "#ECECEC", Lavender: "#D9D9D9",
		},
	}
}

func defaultThemeIndex(all []Theme) int {
	for i, t := range all {
		if strings.EqualFold(strings.TrimSpace(t.Name), defaultThemeName) {
			return i
		}
	}
	return 0
}

func trimColor(c lipgloss.Color) lipgloss.Color {
	return lipgloss.Color(strings.TrimSpace(string(c)))
}

func (t *Theme) colorFields() []struct {
	name  string
	value *lipgloss.Color
} {
	return []struct {
		name  string
		value *lipgloss.Color
	}{
		{"base", &t.Base}, {"mantle", &t.Mantle}, {"surface0", &t.Surface0}, {"surface1", &t.Surface1},
		{"text", &t.Text}, {"subtext", &t.Subtext}, {"dim", &t.Dim},
		{"accent", &t.Accent}, {"peach", &t.Peach}, {"lavender", &t.Lavender},
	}
}

func normalizeTheme(in Theme) Theme {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	if in.Icon == "" {
		in.Icon = "🎨"
	}
	for _, f := range in.colorFields() {
		*f.value = trimColor(*f.value)
	}
	return in
}

func (t Theme) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("missing required field: name")
	}
	var missing []string
	for _, f := range t.colorFields() {
		if strings.TrimSpace(string(*f.value)) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required color fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ChartColors maps the theme onto the renderer's color roles.
func (t Theme) ChartColors() render.Colors {
	return render.Colors{
		Axis:        string(t.Subtext),
		Grid:        string(t.Surface1),
		Level:       string(t.Accent),
		Average:     string(t.Peach),
		Highlighter: string(t.Surface0),
		Marker:      string(t.Text),
		Legend:      string(t.Subtext),
		Tooltip:     string(t.Text),
		TooltipBox:  string(t.Mantle),
		TooltipEdge: string(t.Dim),
		Muted:       string(t.Dim),
	}
}

func themeSearchDirs(configDir string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}

	if strings.TrimSpace(configDir) != "" {
		add(filepath.Join(configDir, "themes"))
	}
	if env := strings.TrimSpace(os.Getenv(themeDirEnvVar)); env != "" {
		for _, part := range strings.Split(env, string(os.PathListSeparator)) {
			add(part)
		}
	}
	return out
}

func decodeTheme(path string, data []byte) (Theme, error) {
	var t Theme
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &t); err != nil {
			return t, err
		}
	default:
		if err := json.Unmarshal(data, &t); err != nil {
			return t, err
		}
	}
	return t, nil
}

func isThemeFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func loadThemesFromDir(dir string) ([]Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read theme dir %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	var (
		loaded []Theme
		errs   []error
	)
	for _, entry := range entries {
		if entry.IsDir() || !isThemeFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, readErr))
			continue
		}

		t, decodeErr := decodeTheme(path, data)
		if decodeErr != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", path, decodeErr))
			continue
		}

		t = normalizeTheme(t)
		if validateErr := t.validate(); validateErr != nil {
			errs = append(errs, fmt.Errorf("validate %s: %w", path, validateErr))
			continue
		}
		loaded = append(loaded, t)
	}

	return loaded, errors.Join(errs...)
}

func mergeThemes(base, extra []Theme) []Theme {
	if len(extra) == 0 {
		return base
	}
	merged := append([]Theme(nil), base...)
	indexByName := make(map[string]int, len(merged))
	for i, t := range merged {
		indexByName[strings.ToLower(t.Name)] = i
	}
	for _, t := range extra {
		k := strings.ToLower(t.Name)
		if i, ok := indexByName[k]; ok {
			merged[i] = t
			continue
		}
		indexByName[k] = len(merged)
		merged = append(merged, t)
	}
	return merged
}

func setActiveThemeByNameLocked(name string) bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return false
	}
	for i, t := range themes {
		if strings.ToLower(t.Name) == needle {
			activeThemeIdx = i
			applyTheme(t)
			return true
		}
	}
	return false
}

// LoadThemes reloads the theme catalog from built-ins plus theme files in
// <configDir>/themes and every directory listed in TIMEPLOT_THEME_DIR.
//
// Invalid files are skipped; the returned error aggregates them while the
// valid themes stay available.
func LoadThemes(configDir string) error {
	themeMu.Lock()
	defer themeMu.Unlock()

	currentName := ""
	if activeThemeIdx >= 0 && activeThemeIdx < len(themes) {
		currentName = themes[activeThemeIdx].Name
	}

	next := builtinThemes()
	var errs []error
	for _, dir := range themeSearchDirs(configDir) {
		loaded, err := loadThemesFromDir(dir)
		if err != nil {
			errs = append(errs, err)
		}
		next = mergeThemes(next, loaded)
	}

	themes = next
	if !setActiveThemeByNameLocked(currentName) {
		activeThemeIdx = defaultThemeIndex(themes)
		applyTheme(themes[activeThemeIdx])
	}
	return errors.Join(errs...)
}

func AvailableThemes() []Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()

	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

func ActiveTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if activeThemeIdx < 0 || activeThemeIdx >= len(themes) {
		return themes[0]
	}
	return themes[activeThemeIdx]
}

// CycleTheme activates the next theme and returns its name.
func CycleTheme() string {
	themeMu.Lock()
	defer themeMu.Unlock()

	activeThemeIdx = (activeThemeIdx + 1) % len(themes)
	applyTheme(themes[activeThemeIdx])
	return themes[activeThemeIdx].Name
}

func ThemeName() string {
	t := ActiveTheme()
	if t.Icon == "" {
		return t.Name
	}
	return t.Icon + " " + t.Name
}

func SetThemeByName(name string) bool {
	themeMu.Lock()
	defer themeMu.Unlock()
	return setActiveThemeByNameLocked(name)
}
