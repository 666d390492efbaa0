package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/stats"
	"github.com/audi70r/logstat/internal/ui/components"
)

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// HeatmapView displays the weekday x hour commit heatmap
type HeatmapView struct {
	root *tview.Flex
	text *tview.TextView
	tz   *time.Location
}

// NewHeatmapView creates a heatmap bucketing commits in tz
func NewHeatmapView(tz *time.Location) *HeatmapView {
	if tz == nil {
		tz = time.Local
	}
	v := &HeatmapView{tz: tz}

	v.text = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	v.root = padded(v.text)
	return v
}

// Refresh updates the view with new data
func (v *HeatmapView) Refresh(s *stats.Summary) {
	heatmap := s.Heatmap(v.tz)
	peakDay, peakHour, total := components.Peak(heatmap.Matrix)

	var dayTotals [7]int
	var hourTotals [24]int
	for day := range heatmap.Matrix {
		for hour, val := range heatmap.Matrix[day] {
			dayTotals[day] += val
			hourTotals[hour] += val
		}
	}

	busiestDay := 0
	for i, n := range dayTotals {
		if n > dayTotals[busiestDay] {
			busiestDay = i
		}
	}
	busiestHour := 0
	for i, n := range hourTotals {
		if n > hourTotals[busiestHour] {
			busiestHour = i
		}
	}

	work := workHourCommits(heatmap.Matrix)
	workPct := 0.0
	if total > 0 {
		workPct = float64(work) / float64(total) * 100
	}

	var sb strings.Builder
	sb.WriteString("[::b]Work Hours Heatmap[-:-:-]\n\n")
	fmt.Fprintf(&sb, "  Timezone: [cyan]%s[-]\n\n", v.tz)

	sb.WriteString(rule + "\n\n")
	sb.WriteString(components.RenderHeatmap(heatmap.Matrix, heatmap.MaxValue))
	sb.WriteString("\n\n" + rule + "\n\n  [::b]Peak Activity[-:-:-]\n\n")

	if total == 0 {
		sb.WriteString("  [gray]No commits[-]\n")
		v.text.SetText(sb.String())
		return
	}

	fmt.Fprintf(&sb, "  Peak Time:          [green]%s[-] at [green]%02d:00[-] ([cyan]%d[-] commits)\n",
		weekdayNames[peakDay], peakHour, heatmap.Matrix[peakDay][peakHour])
	fmt.Fprintf(&sb, "  Busiest Day:        [green]%s[-] ([cyan]%d[-] commits total)\n",
		weekdayNames[busiestDay], dayTotals[busiestDay])
	fmt.Fprintf(&sb, "  Busiest Hour:       [green]%02d:00[-] ([cyan]%d[-] commits total)\n\n",
		busiestHour, hourTotals[busiestHour])

	sb.WriteString(rule + "\n\n  [::b]Work Patterns[-:-:-]\n\n")
	fmt.Fprintf(&sb, "  Work Hours (Mon-Fri, 9-18):   [cyan]%d[-] commits (%.1f%%)\n", work, workPct)
	fmt.Fprintf(&sb, "  Off Hours:                    [cyan]%d[-] commits (%.1f%%)\n\n", total-work, 100-workPct)
	fmt.Fprintf(&sb, "  Pattern:            %s\n\n", workPattern(workPct))

	sb.WriteString(rule + "\n\n  [::b]Weekday Breakdown[-:-:-]\n\n")
	for day, n := range dayTotals {
		fmt.Fprintf(&sb, "  %s: [cyan]%4d[-]", weekdayNames[day][:3], n)
		if day == 3 || day == 6 {
			sb.WriteString("\n")
		}
	}

	v.text.SetText(sb.String())
}

// Text returns the rendered content
func (v *HeatmapView) Text() string {
	return v.text.GetText(false)
}

// workHourCommits counts commits made Monday to Friday, 09:00 to 17:59
func workHourCommits(matrix [7][24]int) int {
	n := 0
	for day := 0; day < 5; day++ {
		for hour := 9; hour < 18; hour++ {
			n += matrix[day][hour]
		}
	}
	return n
}

func workPattern(workPct float64) string {
	switch {
	case workPct >= 80:
		return "[green]Highly structured (mostly work hours)[-]"
	case workPct >= 60:
		return "[cyan]Balanced (mix of work and off hours)[-]"
	case workPct >= 40:
		return "[yellow]Flexible (significant off-hours work)[-]"
	}
	return "[red]Non-traditional (mostly off-hours)[-]"
}

// Root returns the root primitive
func (v *HeatmapView) Root() tview.Primitive {
	return v.root
}
