package commands

import (
	"github.com/spf13/cobra"
)

var ownershipSortKeys = []string{"changes", "commits", "authors", "path"}

// NewHotspotsCommand creates the hotspots command.
func NewHotspotsCommand(g *Globals) *cobra.Command {
	f := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "hotspots [log-file|-]",
		Short: "Files with high churn touched by several authors",
		Long: `Score multi-author files by churn (40%), change frequency (30%) and
author diversity (30%). Single-author files are left out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.run(cmd, f, args)
			if err != nil {
				return err
			}
			return s.renderer.Hotspots(s.result.Summary.Hotspots(f.rowLimit(s.cfg.Display.MaxFiles)))
		},
	}

	f.register(cmd)
	cmd.Flags().IntVarP(&f.limit, "limit", "n", -1, "maximum rows to show (0 for all)")

	return cmd
}

// NewOwnershipCommand creates the ownership command.
func NewOwnershipCommand(g *Globals) *cobra.Command {
	f := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "ownership [log-file|-]",
		Short: "Top-level directories and who touches them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.run(cmd, f, args)
			if err != nil {
				return err
			}

			dirs := s.result.Summary.Ownership(f.sort, f.ascending)
			if limit := f.rowLimit(0); limit > 0 && limit < len(dirs) {
				dirs = dirs[:limit]
			}
			return s.renderer.Ownership(dirs)
		},
	}

	f.register(cmd)
	f.registerSort(cmd, ownershipSortKeys, "changes")

	return cmd
}
