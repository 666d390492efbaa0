package commands

import (
	"github.com/spf13/cobra"

	"github.com/audi70r/logstat/internal/report"
)

// NewRangeCommand creates the range command.
func NewRangeCommand(g *Globals) *cobra.Command {
	f := &sourceFlags{}

	cmd := &cobra.Command{
		Use:     "range [log-file|-]",
		Aliases: []string{"summary"},
		Short:   "Covered date range and totals",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.run(cmd, f, args)
			if err != nil {
				return err
			}

			res := s.result
			return s.renderer.Range(report.NewOverview(res.Source, res.Head, res.Summary, len(res.Report.Skipped)))
		},
	}

	f.register(cmd)

	return cmd
}
