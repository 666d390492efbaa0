package commands

import (
	"github.com/spf13/cobra"
)

var fileSortKeys = []string{"changes", "commits", "added", "deleted", "authors", "path"}

// NewFilesCommand creates the files command.
func NewFilesCommand(g *Globals) *cobra.Command {
	f := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "files [log-file|-]",
		Short: "Per-file line and commit counts",
		Long: `Show how often each file changed and how many lines were added and deleted.

Files are keyed by their path after the change, so a rename starts a new entry.
Binary changes count as commits with no lines.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.run(cmd, f, args)
			if err != nil {
				return err
			}

			summary := s.result.Summary
			files := summary.TopFiles(f.sort, f.ascending, f.rowLimit(s.cfg.Display.MaxFiles))
			return s.renderer.Files(files, len(summary.Files))
		},
	}

	f.register(cmd)
	f.registerSort(cmd, fileSortKeys, "changes")

	return cmd
}
