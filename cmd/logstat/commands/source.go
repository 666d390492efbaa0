// Package commands implements CLI command handlers for logstat.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/audi70r/logstat/internal/config"
	"github.com/audi70r/logstat/internal/logging"
	"github.com/audi70r/logstat/internal/report"
	"github.com/audi70r/logstat/internal/scan"
)

// ErrUnknownSortKey is returned for --sort values a command does not support.
var ErrUnknownSortKey = errors.New("unknown sort key")

// Globals holds the root command's persistent flags
type Globals struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

// sourceFlags are shared by every command that reads a log
type sourceFlags struct {
	repo       string
	since      string
	until      string
	authors    []string
	include    []string
	exclude    []string
	skipErrors bool
	dateLayout string
	timezone   string
	format     string
	noColor    bool
	limit      int
	sort       string
	ascending  bool
	sortKeys   []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.repo, "repo", ".", "repository to run git log in (ignored when a log file is given)")
	flags.StringVar(&f.since, "since", "", "first day to include (YYYY-MM-DD)")
	flags.StringVar(&f.until, "until", "", "last day to include (YYYY-MM-DD)")
	flags.StringArrayVar(&f.authors, "author", nil, "keep commits whose author contains this text (repeatable)")
	flags.StringSliceVar(&f.include, "include", nil, "only count paths matching these globs")
	flags.StringSliceVar(&f.exclude, "exclude", nil, "ignore paths matching these globs")
	flags.BoolVar(&f.skipErrors, "skip-errors", false, "skip malformed commits instead of failing")
	flags.StringVar(&f.dateLayout, "date-layout", "", "Go time layout of the Date: lines")
	flags.StringVar(&f.timezone, "timezone", "", "timezone for daily and hourly buckets (IANA name)")
	flags.StringVarP(&f.format, "format", "f", "", "output format: table, json or yaml")
	flags.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

func (f *sourceFlags) registerSort(cmd *cobra.Command, sortKeys []string, defaultKey string) {
	f.sortKeys = sortKeys

	flags := cmd.Flags()
	flags.IntVarP(&f.limit, "limit", "n", -1, "maximum rows to show (0 for all)")
	flags.StringVarP(&f.sort, "sort", "s", defaultKey, "sort key: "+strings.Join(sortKeys, ", "))
	flags.BoolVar(&f.ascending, "asc", false, "sort ascending")
}

// apply overlays explicitly set flags on the loaded configuration
func (f *sourceFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("since") {
		cfg.Filter.Since = f.since
	}
	if flags.Changed("until") {
		cfg.Filter.Until = f.until
	}
	if flags.Changed("author") {
		cfg.Filter.Authors = f.authors
	}
	if flags.Changed("include") {
		cfg.Filter.Include = f.include
	}
	if flags.Changed("exclude") {
		cfg.Filter.Exclude = f.exclude
	}
	if f.skipErrors {
		cfg.Log.ErrorPolicy = "skip"
	}
	if flags.Changed("date-layout") {
		cfg.Log.DateLayout = f.dateLayout
	}
	if flags.Changed("timezone") {
		cfg.Display.Timezone = f.timezone
	}
	if flags.Changed("format") {
		cfg.Display.Format = f.format
	}
	if f.noColor {
		cfg.Display.NoColor = true
	}

	return cfg.Validate()
}

// rowLimit returns the --limit value, or fallback when the flag was not given
func (f *sourceFlags) rowLimit(fallback int) int {
	if f.limit < 0 {
		return fallback
	}
	return f.limit
}

func (f *sourceFlags) source(cmd *cobra.Command, args []string) scan.Source {
	src := scan.Source{Repo: f.repo, Stdin: cmd.InOrStdin()}
	if len(args) > 0 {
		src.File = args[0]
	}
	return src
}

// session is what a command needs after flags and configuration are resolved
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer *report.Renderer
	result   *scan.Result
}

// run loads configuration, scans the source and prepares the renderer
func (g *Globals) run(cmd *cobra.Command, f *sourceFlags, args []string) (*session, error) {
	if f.sortKeys != nil && !slices.Contains(f.sortKeys, f.sort) {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownSortKey, f.sort, strings.Join(f.sortKeys, ", "))
	}

	cfg, err := g.configure(cmd, f)
	if err != nil {
		return nil, err
	}

	logger, err := g.logger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	renderer, err := report.New(cmd.OutOrStdout(), cfg.Display.Format, report.WithNoColor(cfg.Display.NoColor))
	if err != nil {
		return nil, err
	}

	src := f.source(cmd, args)
	logger.Debug("scanning", "source", src.Label(), "policy", cfg.Policy.String())

	result, err := scan.Run(cmd.Context(), src, scan.OptionsFromConfig(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", src.Label(), err)
	}

	report.Skipped(cmd.ErrOrStderr(), result.Report.Skipped)

	return &session{cfg: cfg, logger: logger, renderer: renderer, result: result}, nil
}

// configure loads the config file and overlays the command's flags
func (g *Globals) configure(cmd *cobra.Command, f *sourceFlags) (*config.Config, error) {
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := f.apply(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *Globals) logger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	logCfg := cfg.Logging
	switch {
	case g.Verbose:
		logCfg.Level = "debug"
	case g.Quiet:
		logCfg.Level = "error"
	}
	return logging.New(logCfg, w)
}
