package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/stats"
)

// HotspotsView displays high-risk files
type HotspotsView struct {
	*sortTable
	limit int
}

// NewHotspotsView creates a hotspots view showing at most limit files (0 for all)
func NewHotspotsView(limit int) *HotspotsView {
	return &HotspotsView{
		sortTable: newSortTable([]column{
			{"#", ""},
			{"File", "path"},
			{"Churn%", "churn"},
			{"Commits", "commits"},
			{"Authors", "authors"},
			{"Risk", "risk"},
		}, 5),
		limit: limit,
	}
}

// Refresh updates the view with new data
func (v *HotspotsView) Refresh(s *stats.Summary) {
	v.reset()

	hotspots := s.Hotspots(v.limit)
	sortHotspots(hotspots, v.sortKey(), v.sortAsc)

	highRisk := 0
	for i, spot := range hotspots {
		row := i + 1
		if spot.RiskScore >= 50 {
			highRisk++
		}

		v.table.SetCell(row, 0, rankCell(i))
		v.table.SetCell(row, 1, tview.NewTableCell(truncatePath(spot.Path, 50)).SetExpansion(1))
		v.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%.1f%%", spot.ChurnScore)).
			SetAlign(tview.AlignRight))
		v.table.SetCell(row, 3, countCell(spot.Commits))
		v.table.SetCell(row, 4, authorCountCell(spot.AuthorCount))
		v.table.SetCell(row, 5, tview.NewTableCell(fmt.Sprintf("%.0f %s", spot.RiskScore, bar(spot.RiskScore, 5))).
			SetTextColor(riskColor(spot.RiskScore)).
			SetAlign(tview.AlignRight))
	}

	v.setInfo("[yellow]%d[-] hotspots | [red]%d[-] high-risk", len(hotspots), highRisk)
}

// sortHotspots orders by path, churn, commits, authors or risk; ties fall back to path
func sortHotspots(hotspots []*stats.Hotspot, key string, ascending bool) {
	sort.SliceStable(hotspots, func(i, j int) bool {
		a, b := hotspots[i], hotspots[j]

		var cmp float64
		switch key {
		case "path":
			cmp = float64(strings.Compare(a.Path, b.Path))
		case "churn":
			cmp = a.ChurnScore - b.ChurnScore
		case "commits":
			cmp = float64(a.Commits - b.Commits)
		case "authors":
			cmp = float64(a.AuthorCount - b.AuthorCount)
		default:
			cmp = a.RiskScore - b.RiskScore
		}
		if cmp == 0 {
			return a.Path < b.Path
		}
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
}

func riskColor(score float64) tcell.Color {
	switch {
	case score >= 70:
		return tcell.ColorRed
	case score >= 50:
		return tcell.ColorOrange
	case score >= 30:
		return tcell.ColorYellow
	}
	return tcell.ColorGreen
}
