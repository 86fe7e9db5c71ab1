package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/janekbaraniewski/timeplot/internal/config"
	"github.com/janekbaraniewski/timeplot/internal/core"
	"github.com/janekbaraniewski/timeplot/internal/interaction"
	"github.com/janekbaraniewski/timeplot/internal/source"
	"github.com/janekbaraniewski/timeplot/internal/tui"
	"github.com/janekbaraniewski/timeplot/internal/version"
)

const (
	defaultRenderWidth  = 100
	defaultRenderHeight = 30
)

func loadChart(ctx context.Context, path string, opts *options, build core.BuildOptions) (*core.Chart, error) {
	rows, err := source.Load(ctx, path, source.Options{Sheet: opts.sheet, Query: opts.query})
	if err != nil {
		return nil, err
	}
	chart, err := core.BuildChart(rows, build)
	if err != nil {
		return nil, fmt.Errorf("building chart from %s: %w", path, err)
	}
	return chart, nil
}

func prepare(cmd *cobra.Command, opts *options, args []string) (string, tui.Settings, *core.Chart, error) {
	path, err := opts.input(args)
	if err != nil {
		return "", tui.Settings{}, nil, err
	}
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return "", tui.Settings{}, nil, err
	}
	if err := tui.LoadThemes(config.ConfigDir()); err != nil {
		log.Printf("themes: %v", err)
	}
	if !tui.SetThemeByName(cfg.Theme) {
		log.Printf("unknown theme %q, using %s", cfg.Theme, tui.ActiveTheme().Name)
	}
	settings, err := tui.NewSettings(cfg)
	if err != nil {
		return "", tui.Settings{}, nil, err
	}
	chart, err := loadChart(cmd.Context(), path, opts, settings.Build)
	if err != nil {
		return "", tui.Settings{}, nil, err
	}
	return path, settings, chart, nil
}

func loggingHooks() interaction.Hooks {
	describe := func(p core.DataPoint) string {
		return fmt.Sprintf("%s %s=%v", p.Category.Label, p.SeriesKey, p.Value)
	}
	return interaction.Hooks{
		OnHover:  func(p core.DataPoint) { log.Printf("[hover] %s", describe(p)) },
		OnClick:  func(p core.DataPoint) { log.Printf("[pin] %s", describe(p)) },
		OnCancel: func(p core.DataPoint) { log.Printf("[unpin] %s", describe(p)) },
	}
}

func runInteractive(cmd *cobra.Command, opts *options, args []string) error {
	path, settings, chart, err := prepare(cmd, opts, args)
	if err != nil {
		return err
	}

	model := tui.NewModel(path, chart, settings, loggingHooks())
	model.SetConfigPath(opts.settingsPath())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))

	if opts.watch {
		g.Go(func() error {
			return source.Watch(ctx, path, func() {
				log.Printf("[watch] reloading %s", path)
				next, err := loadChart(ctx, path, opts, settings.Build)
				program.Send(tui.ChartMsg{Chart: next, Err: err})
			})
		})
	}
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	return g.Wait()
}

func newRenderCommand(opts *options) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Print a single frame of the chart to stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, settings, chart, err := prepare(cmd, opts, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderFrame(chart, settings, width, height))
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", defaultRenderWidth, "frame width in cells")
	cmd.Flags().IntVar(&height, "height", defaultRenderHeight, "frame height in cells")
	return cmd
}

func newVersionCommand() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "timeplot "+version.String())
			if !check {
				return nil
			}
			res, err := version.CheckLatest(cmd.Context(), version.CheckOptions{CurrentVersion: version.Version})
			if err != nil {
				return err
			}
			switch {
			case res.Current == "":
				fmt.Fprintln(out, "development build, update check skipped")
			case res.UpdateAvailable:
				fmt.Fprintf(out, "update available: %s -> %s\n", res.Current, res.Latest)
			default:
				fmt.Fprintln(out, "up to date")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check for a newer release")
	return cmd
}
