package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/janekbaraniewski/timeplot/internal/config"
)

type options struct {
	configPath string
	tick       string
	date       bool
	dateFormat string
	interval   string
	level      string
	palettePos string
	paletteNeg string
	fade       float64
	sheet      string
	db         string
	query      string
	watch      bool
}

func (o *options) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "settings file (JSON or YAML, default "+config.ConfigPath()+")")
	fs.StringVar(&o.tick, "tick", "", "category column (default: first column)")
	fs.BoolVar(&o.date, "date", false, "parse categories as dates")
	fs.StringVar(&o.dateFormat, "date-format", "", "strftime format of category dates")
	fs.StringVar(&o.interval, "interval", "", "x tick interval: auto, month, week, biweek or a category count")
	fs.StringVar(&o.level, "level", "", "initial level: zero or average")
	fs.StringVar(&o.palettePos, "palette-pos", "", "palette for values above the level")
	fs.StringVar(&o.paletteNeg, "palette-neg", "", "palette for values below the level")
	fs.Float64Var(&o.fade, "fade", 0, "opacity of faded dots, in (0, 1]")
	fs.StringVar(&o.sheet, "sheet", "", "XLSX sheet (default: first sheet)")
	fs.StringVar(&o.db, "db", "", "SQLite database to read with --query")
	fs.StringVar(&o.query, "query", "", "SQL query whose columns become the chart columns")
	fs.BoolVar(&o.watch, "watch", false, "reload when the input changes")
}

func (o *options) settingsPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.ConfigPath()
}

// loadConfig reads the settings file and applies the flags that were set
// explicitly on the command line.
func (o *options) loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := o.settingsPath()
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}

	changed := cmd.Flags().Changed
	if changed("tick") {
		cfg.XTick.Name = o.tick
	}
	if changed("date") {
		cfg.XTick.IsDate = o.date
	}
	if changed("date-format") {
		cfg.XTick.Format = o.dateFormat
	}
	if changed("interval") {
		cfg.XTick.Interval = o.interval
	}
	if changed("level") {
		cfg.Chart.Level = o.level
	}
	if changed("palette-pos") {
		cfg.Chart.PosPalette = o.palettePos
	}
	if changed("palette-neg") {
		cfg.Chart.NegPalette = o.paletteNeg
	}
	if changed("fade") {
		cfg.Chart.FadeOpacity = o.fade
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// input resolves the data source from the positional argument or --db.
func (o *options) input(args []string) (string, error) {
	switch {
	case len(args) > 0 && o.db != "":
		return "", fmt.Errorf("pass either a file or --db, not both")
	case len(args) > 0:
		return args[0], nil
	case o.db != "":
		if o.query == "" {
			return "", fmt.Errorf("--db requires --query")
		}
		return o.db, nil
	}
	return "", fmt.Errorf("no input: pass a file or --db with --query")
}
