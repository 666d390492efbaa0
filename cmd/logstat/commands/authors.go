package commands

import (
	"github.com/spf13/cobra"
)

var authorSortKeys = []string{"commits", "additions", "deletions", "net", "files", "name"}

// NewAuthorsCommand creates the authors leaderboard command.
func NewAuthorsCommand(g *Globals) *cobra.Command {
	f := &sourceFlags{}

	cmd := &cobra.Command{
		Use:     "authors [log-file|-]",
		Aliases: []string{"leaderboard"},
		Short:   "Author leaderboard",
		Long: `Rank authors by commits, lines or files touched.

Aliases from authors.aliases in the config file are merged into their
primary identity before ranking.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.run(cmd, f, args)
			if err != nil {
				return err
			}

			authors := s.result.Summary.Leaderboard(f.sort, f.ascending)
			if limit := f.rowLimit(s.cfg.Display.MaxAuthors); limit > 0 && limit < len(authors) {
				authors = authors[:limit]
			}
			return s.renderer.Authors(authors)
		},
	}

	f.register(cmd)
	f.registerSort(cmd, authorSortKeys, "commits")

	return cmd
}
