package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	if os.Getenv("TIMEPLOT_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "timeplot [file]",
		Short: "timeplot draws a table of time series as an interactive dot plot in the terminal.",
		Long: `timeplot reads a CSV, TSV, JSON, XLSX or SQLite source where one column holds
the categories (usually dates) and every other column is a series, and draws
one colored dot per value. Hover dots for details, click to pin a series, click
legend cells to focus a value range and move the level slider to recolor.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts, args)
		},
	}
	opts.bind(root.PersistentFlags())

	root.AddCommand(newRenderCommand(opts), newVersionCommand())
	return root
}
