package commands

import (
	"slices"
	"sort"

	"github.com/spf13/cobra"

	"github.com/audi70r/logstat/internal/gitlog"
)

var commitSortKeys = []string{"log", "date", "files", "changes"}

// NewCommitsCommand creates the commits listing command.
func NewCommitsCommand(g *Globals) *cobra.Command {
	f := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "commits [log-file|-]",
		Short: "List parsed commits",
		Long: `List every commit that passed the filters, in log order by default.

Useful to check what the parser made of a log before trusting the totals.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.run(cmd, f, args)
			if err != nil {
				return err
			}

			commits := sortCommits(s.result.Commits, f.sort, f.ascending)
			if limit := f.rowLimit(0); limit > 0 && limit < len(commits) {
				commits = commits[:limit]
			}
			return s.renderer.Commits(commits)
		},
	}

	f.register(cmd)
	f.registerSort(cmd, commitSortKeys, "log")

	return cmd
}

// sortCommits returns a sorted copy; "log" keeps input order, reversed by ascending
func sortCommits(commits []*gitlog.Commit, sortBy string, ascending bool) []*gitlog.Commit {
	out := slices.Clone(commits)

	if sortBy == "log" {
		if ascending {
			slices.Reverse(out)
		}
		return out
	}

	key := func(c *gitlog.Commit) int64 {
		switch sortBy {
		case "files":
			return int64(len(c.Files))
		case "changes":
			var n int
			for _, fc := range c.Files {
				n += fc.Added() + fc.Deleted()
			}
			return int64(n)
		default:
			return c.Date.UnixNano()
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return key(out[i]) < key(out[j])
		}
		return key(out[i]) > key(out[j])
	})
	return out
}
