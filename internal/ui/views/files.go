package views

import (
	"fmt"
	"path"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/stats"
)

// FilesView displays the most changed files
type FilesView struct {
	*sortTable
	limit int
}

// NewFilesView creates a files view showing at most limit rows (0 for all)
func NewFilesView(limit int) *FilesView {
	return &FilesView{
		sortTable: newSortTable([]column{
			{"#", ""},
			{"File", "path"},
			{"Changes", "changes"},
			{"Commits", "commits"},
			{"Authors", "authors"},
			{"+Lines", "added"},
			{"-Lines", "deleted"},
			{"Binary", ""},
		}, 2),
		limit: limit,
	}
}

// Refresh updates the view with new data
func (v *FilesView) Refresh(s *stats.Summary) {
	v.reset()

	files := s.TopFiles(v.sortKey(), v.sortAsc, v.limit)
	for i, file := range files {
		row := i + 1

		v.table.SetCell(row, 0, rankCell(i))
		v.table.SetCell(row, 1, tview.NewTableCell(truncatePath(file.Path, 50)).
			SetTextColor(dirColor(path.Dir(file.Path))).
			SetExpansion(1))
		v.table.SetCell(row, 2, countCell(file.TotalChanges()))
		v.table.SetCell(row, 3, countCell(file.Commits))
		v.table.SetCell(row, 4, authorCountCell(len(file.Authors)))
		v.table.SetCell(row, 5, addedCell(file.LinesAdded))
		v.table.SetCell(row, 6, deletedCell(file.LinesDeleted))

		binary := ""
		if file.Binary > 0 {
			binary = fmt.Sprintf("%d", file.Binary)
		}
		v.table.SetCell(row, 7, tview.NewTableCell(binary).
			SetTextColor(tcell.ColorGray).
			SetAlign(tview.AlignRight))
	}

	v.setInfo("[yellow]%d[-] files shown (of %d)", len(files), len(s.Files))
}

// dirColor picks a stable color per directory
func dirColor(dir string) tcell.Color {
	colors := []tcell.Color{
		tcell.ColorLightCyan,
		tcell.ColorLightGreen,
		tcell.ColorLightYellow,
		tcell.ColorLightBlue,
		tcell.ColorWhite,
	}

	var hash uint32
	for _, c := range dir {
		hash = hash*31 + uint32(c)
	}
	return colors[hash%uint32(len(colors))]
}
