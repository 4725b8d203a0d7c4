package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invertedv/owid/internal/logging"
	"github.com/invertedv/owid/pipeline"
)

// version is set at build time via -ldflags.
var version = "dev"

// options holds the flag values of one command tree.
type options struct {
	configPath string
	url        string
	output     string
	minYear    int
	logLevel   string
	logFormat  string
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owid-democracy",
		Short: "Download OWID life expectancy vs. democracy and write a long-form CSV",
		Long: "owid-democracy fetches the Our World in Data life expectancy vs. electoral democracy\n" +
			"dataset, drops aggregate regions, missing values and years before 2001, and writes\n" +
			"owid_democracy.csv at the project root.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e := opts.config(cmd)
			if e != nil {
				return e
			}

			res, e := pipeline.Run(cmd.Context(), cfg)
			if e != nil {
				return e
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows (%d read)\n", res.Path, res.Stats.Kept, res.Stats.Input)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML config file")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	f := cmd.Flags()
	f.StringVar(&opts.url, "url", pipeline.DefaultURL, "source CSV URL")
	f.StringVar(&opts.output, "output", pipeline.DefaultOutput, "output file, relative to the project root")
	f.IntVar(&opts.minYear, "min-year", pipeline.DefaultMinYear, "earliest year kept")

	cmd.AddCommand(newDescribeCmd(opts))

	return cmd
}

// config layers defaults, the config file and flags that were set explicitly,
// then installs the logger.
func (o *options) config(cmd *cobra.Command) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	if o.configPath != "" {
		var e error
		if cfg, e = pipeline.LoadConfig(o.configPath); e != nil {
			return cfg, e
		}
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.URL = o.url
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("min-year") {
		cfg.MinYear = o.minYear
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}

	if e := cfg.Validate(); e != nil {
		return cfg, e
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logging.Init(level, cfg.Log.Format, cmd.ErrOrStderr())

	return cfg, nil
}
