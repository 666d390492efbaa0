package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/stats"
	"github.com/audi70r/logstat/internal/ui/components"
)

const rule = "[yellow]━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━[-]"

// TimelineView displays commits over time
type TimelineView struct {
	root   *tview.Flex
	text   *tview.TextView
	window int
	width  int
}

// NewTimelineView creates a timeline with a rolling average over window
// days and sparklines at most width runes wide
func NewTimelineView(window, width int) *TimelineView {
	v := &TimelineView{window: max(window, 1), width: width}

	v.text = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	v.root = padded(v.text)
	return v
}

// padded centers a text view with a small margin
func padded(text *tview.TextView) *tview.Flex {
	return tview.NewFlex().
		AddItem(nil, 2, 0, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 1, 0, false).
			AddItem(text, 0, 1, false).
			AddItem(nil, 1, 0, false), 0, 1, false).
		AddItem(nil, 2, 0, false)
}

// Refresh updates the view with new data
func (v *TimelineView) Refresh(s *stats.Summary) {
	timeline := s.Timeline(v.window)
	if len(timeline.Values) == 0 {
		v.text.SetText("[yellow]No commit data available[-]")
		return
	}

	total, peak := 0, 0
	lowest := timeline.Values[0]
	for i, val := range timeline.Values {
		total += val
		lowest = min(lowest, val)
		if val > timeline.Values[peak] {
			peak = i
		}
	}
	avg := float64(total) / float64(len(timeline.Values))

	daily := components.RenderSparkline(components.Downsample(timeline.Values, v.width))
	weekly := components.RenderSparkline(components.Downsample(weeklyTotals(timeline.Labels, timeline.Values), v.width))

	var sb strings.Builder
	sb.WriteString("[::b]Commits Over Time[-:-:-]\n\n")

	sb.WriteString(rule + "\n\n  [::b]Daily Activity[-:-:-]\n\n")
	fmt.Fprintf(&sb, "  [green]%s[-]\n\n", daily)
	fmt.Fprintf(&sb, "  %s to %s\n\n", timeline.Labels[0], timeline.Labels[len(timeline.Labels)-1])

	sb.WriteString(rule + "\n\n  [::b]Weekly Activity[-:-:-]\n\n")
	fmt.Fprintf(&sb, "  [cyan]%s[-]\n\n", weekly)

	sb.WriteString(rule + "\n\n  [::b]Statistics[-:-:-]\n\n")
	fmt.Fprintf(&sb, "  Period:             [cyan]%d[-] days\n", len(timeline.Values))
	fmt.Fprintf(&sb, "  Total Commits:      [cyan]%d[-]\n", total)
	fmt.Fprintf(&sb, "  Average per Day:    [cyan]%.2f[-]\n", avg)
	fmt.Fprintf(&sb, "  Peak Day:           [green]%d[-] commits on [green]%s[-]\n", timeline.Values[peak], timeline.Labels[peak])
	fmt.Fprintf(&sb, "  Quietest Day:       [red]%d[-] commits\n\n", lowest)

	fmt.Fprintf(&sb, "%s\n\n  [::b]%d-Day Rolling Average[-:-:-]\n\n", rule, v.window)
	fmt.Fprintf(&sb, "  Current:            [cyan]%.2f[-] commits/day\n", timeline.RollingAvg[len(timeline.RollingAvg)-1])
	fmt.Fprintf(&sb, "  Trend:              %s\n", trend(timeline.RollingAvg, v.window))

	v.text.SetText(sb.String())
}

// Root returns the root primitive
func (v *TimelineView) Root() tview.Primitive {
	return v.root
}

// Text returns the rendered content
func (v *TimelineView) Text() string {
	return v.text.GetText(false)
}

// weeklyTotals sums daily values per ISO week; labels are YYYY-MM-DD and consecutive
func weeklyTotals(labels []string, values []int) []int {
	var out []int
	lastYear, lastWeek := -1, -1
	for i, label := range labels {
		day, err := time.Parse("2006-01-02", label)
		if err != nil {
			continue
		}
		year, week := day.ISOWeek()
		if year != lastYear || week != lastWeek {
			out = append(out, 0)
			lastYear, lastWeek = year, week
		}
		out[len(out)-1] += values[i]
	}
	return out
}

// trend compares the mean of the last window of rolling averages with the window before it
func trend(rollingAvg []float64, window int) string {
	if len(rollingAvg) < 2*window {
		return "[gray]Insufficient data[-]"
	}

	mean := func(vals []float64) float64 {
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		return sum / float64(len(vals))
	}

	n := len(rollingAvg)
	recent := mean(rollingAvg[n-window:])
	previous := mean(rollingAvg[n-2*window : n-window])

	change := 0.0
	if previous > 0 {
		change = (recent - previous) / previous * 100
	}

	switch {
	case change > 10:
		return fmt.Sprintf("[green]↑ +%.1f%%[-] (increasing)", change)
	case change < -10:
		return fmt.Sprintf("[red]↓ %.1f%%[-] (decreasing)", change)
	}
	return fmt.Sprintf("[yellow]→ %.1f%%[-] (stable)", change)
}
