package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/stats"
)

// LeaderboardView displays author statistics
type LeaderboardView struct {
	*sortTable
	limit int
}

// NewLeaderboardView creates a leaderboard showing at most limit authors (0 for all)
func NewLeaderboardView(limit int) *LeaderboardView {
	return &LeaderboardView{
		sortTable: newSortTable([]column{
			{"#", ""},
			{"Author", "name"},
			{"Commits", "commits"},
			{"Additions", "additions"},
			{"Deletions", "deletions"},
			{"Net", "net"},
			{"Files", "files"},
			{"Active", ""},
		}, 2),
		limit: limit,
	}
}

// Refresh updates the view with new data
func (v *LeaderboardView) Refresh(s *stats.Summary) {
	v.reset()

	authors := s.Leaderboard(v.sortKey(), v.sortAsc)
	shown := authors
	if v.limit > 0 && v.limit < len(shown) {
		shown = shown[:v.limit]
	}

	for i, author := range shown {
		row := i + 1
		net := author.Net()

		name := author.Name
		if name == "" {
			name = author.Author
		}

		netColor := tcell.ColorWhite
		switch {
		case net > 0:
			netColor = tcell.ColorGreen
		case net < 0:
			netColor = tcell.ColorRed
		}

		v.table.SetCell(row, 0, rankCell(i))
		v.table.SetCell(row, 1, tview.NewTableCell(name).SetExpansion(1))
		v.table.SetCell(row, 2, countCell(author.Commits))
		v.table.SetCell(row, 3, addedCell(author.Additions))
		v.table.SetCell(row, 4, deletedCell(author.Deletions))
		v.table.SetCell(row, 5, tview.NewTableCell(fmt.Sprintf("%+d", net)).
			SetTextColor(netColor).
			SetAlign(tview.AlignRight))
		v.table.SetCell(row, 6, countCell(len(author.FilesTouched)))
		v.table.SetCell(row, 7, tview.NewTableCell(fmt.Sprintf("%s → %s",
			author.FirstCommit.Format("2006-01-02"), author.LastCommit.Format("2006-01-02"))).
			SetTextColor(tcell.ColorGray))
	}

	v.setInfo("[yellow]%d[-] of %d authors", len(shown), len(authors))
}
