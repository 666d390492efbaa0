package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/audi70r/logstat/internal/scan"
	"github.com/audi70r/logstat/internal/ui"
)

// ErrStdinTUI is returned when the interactive browser is asked to read stdin.
var ErrStdinTUI = errors.New("the interactive browser cannot read the log from stdin; save it to a file first")

// NewTUICommand creates the tui command.
func NewTUICommand(g *Globals) *cobra.Command {
	f := &sourceFlags{}
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui [log-file]",
		Short: "Browse statistics interactively",
		Long: `Open a terminal browser with overview, leaderboard, timeline, work hours,
top files, hotspots, ownership and author merge views. Press R to rescan
with a different source or date range.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := f.source(cmd, args)
			if src.File == scan.StdinName {
				return ErrStdinTUI
			}

			cfg, err := g.configure(cmd, f)
			if err != nil {
				return err
			}

			// Log lines would corrupt the screen
			var w io.Writer = io.Discard
			if logFile != "" {
				file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer file.Close()
				w = file
			}

			logger, err := g.logger(cfg, w)
			if err != nil {
				return err
			}

			return ui.NewApp(cfg, src, scan.OptionsFromConfig(cfg, logger)).Run(cmd.Context())
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&logFile, "log-file", "", "write diagnostic logs to this file")

	return cmd
}
