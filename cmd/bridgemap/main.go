package main

import (
	"fmt"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joeblew999/plat-bridges/internal/legend"
	"github.com/joeblew999/plat-bridges/internal/view"
)

// Options defines all CLI flags and env vars for a recomputation pass.
// Flags: --data-dir, --mode, --zoom, --query, --deck ... --joints,
// --sufficiency, --compare, --districts, --types, --months, --show-na,
// --today, --yaml
// Env vars: SERVICE_DATA_DIR, SERVICE_MODE, ...
type Options struct {
	DataDir        string `doc:"Directory holding the snapshot files (overrides config)"`
	Mode           string `doc:"Coloring mode: default, evaluation or inspection" short:"m" default:"default"`
	Zoom           int    `doc:"Map zoom level" short:"z" default:"8"`
	Query          string `doc:"Search text matched against BARS number and name" short:"q"`
	Deck           int    `doc:"Deck severity weight (0-100)"`
	Superstructure int    `doc:"Superstructure severity weight (0-100)"`
	Substructure   int    `doc:"Substructure severity weight (0-100)"`
	Bearings       int    `doc:"Bearings severity weight (0-100)"`
	Joints         int    `doc:"Joints severity weight (0-100)"`
	Sufficiency    int    `doc:"Sufficiency threshold (0-100, 100 disables)" default:"100"`
	Compare        string `doc:"Sufficiency comparison: at-most or at-least" default:"at-most"`
	Districts      string `doc:"Comma-separated active districts (empty means all)"`
	Types          string `doc:"Comma-separated inspection types"`
	Months         string `doc:"Comma-separated inspection due months (1-12 or names)"`
	ShowNA         bool   `doc:"Show bridges without condition data in evaluation mode"`
	Today          string `doc:"Date used for inspection urgency (YYYY-MM-DD, default today)"`
	YAML           bool   `doc:"Output as YAML instead of JSON" short:"y"`
}

func fail(err error) {
	zap.L().Error("bridgemap failed", zap.Error(err))
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		hooks.OnStart(func() {
			a, err := newApp(opts)
			if err != nil {
				fail(err)
			}
			defer a.close()

			frame, err := a.pass(opts)
			if err != nil {
				fail(err)
			}
			if err := write(os.Stdout, frame, opts.YAML); err != nil {
				fail(err)
			}
		})
	})

	cli.Root().Use = "bridgemap"
	cli.Root().Short = "Compute bridge marker styles from an inventory snapshot"
	cli.Root().Version = "0.1.0"

	// detail subcommand: per-bridge panel data
	detailCmd := &cobra.Command{
		Use:   "detail <bars-number>",
		Short: "Show ratings, sufficiency, inspection urgency and projects for one bridge",
		Args:  cobra.ExactArgs(1),
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			a, err := newApp(opts)
			if err != nil {
				fail(err)
			}
			defer a.close()

			if _, err := a.pass(opts); err != nil {
				fail(err)
			}
			d, err := a.sess.Detail(args[0])
			if err != nil {
				fail(fmt.Errorf("%s: %w", args[0], err))
			}
			if err := write(os.Stdout, d, opts.YAML); err != nil {
				fail(err)
			}
		}),
	}
	cli.Root().AddCommand(detailCmd)

	// legend subcommand: color keys for a mode
	legendCmd := &cobra.Command{
		Use:   "legend",
		Short: "Print the legend for a mode",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			mode, ok := view.ParseMode(opts.Mode)
			if !ok {
				fail(fmt.Errorf("unknown mode %q", opts.Mode))
			}
			if err := write(os.Stdout, legend.For(mode), opts.YAML); err != nil {
				fail(err)
			}
		}),
	}
	cli.Root().AddCommand(legendCmd)

	cli.Run()
}
