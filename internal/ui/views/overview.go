package views

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/stats"
)

// OverviewView displays totals for the scanned log
type OverviewView struct {
	root    *tview.Flex
	text    *tview.TextView
	skipped int
}

// NewOverviewView creates a new overview view
func NewOverviewView() *OverviewView {
	v := &OverviewView{}

	v.text = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	v.root = padded(v.text)
	return v
}

// SetSkipped records how many malformed commits the parser dropped
func (v *OverviewView) SetSkipped(n int) {
	v.skipped = n
}

// Refresh updates the view with new data
func (v *OverviewView) Refresh(s *stats.Summary) {
	const barWidth = 50

	changes := s.TotalAdditions + s.TotalDeletions
	var addPct, delPct float64
	var addBar, delBar int
	if changes > 0 {
		addPct = float64(s.TotalAdditions) / float64(changes) * 100
		delPct = 100 - addPct
		addBar = int(addPct / 100 * barWidth)
		delBar = barWidth - addBar
	}

	var sb strings.Builder
	sb.WriteString("[::b]Changes Overview[-:-:-]\n\n")

	sb.WriteString(rule + "\n\n  [::b]Summary[-:-:-]\n\n")
	fmt.Fprintf(&sb, "  Total Commits:      [cyan]%s[-]\n", humanize.Comma(int64(s.TotalCommits)))
	fmt.Fprintf(&sb, "  Merge Commits:      [cyan]%s[-]\n", humanize.Comma(int64(s.MergeCommits)))
	fmt.Fprintf(&sb, "  Total Authors:      [cyan]%d[-]\n", s.TotalAuthors)
	fmt.Fprintf(&sb, "  Files Touched:      [cyan]%s[-]\n", humanize.Comma(int64(len(s.Files))))
	fmt.Fprintf(&sb, "  Renames:            [cyan]%d[-]\n", s.Renames)
	fmt.Fprintf(&sb, "  Binary Changes:     [cyan]%d[-]\n", s.BinaryChanges)
	if v.skipped > 0 {
		fmt.Fprintf(&sb, "  Skipped Commits:    [red]%d[-] malformed\n", v.skipped)
	}
	if !s.DateRange.IsZero() {
		fmt.Fprintf(&sb, "  Date Range:         [cyan]%s[-] to [cyan]%s[-]\n",
			s.DateRange.Since.Format("2006-01-02"), s.DateRange.Until.Format("2006-01-02"))
	}

	sb.WriteString("\n" + rule + "\n\n  [::b]Lines Changed[-:-:-]\n\n")
	fmt.Fprintf(&sb, "  [green]+ Additions:[-]        [green]%s[-] lines\n", humanize.Comma(int64(s.TotalAdditions)))
	fmt.Fprintf(&sb, "  [red]- Deletions:[-]        [red]%s[-] lines\n", humanize.Comma(int64(s.TotalDeletions)))
	fmt.Fprintf(&sb, "  [white]= Total Changes:[-]    [white]%s[-] lines\n\n", humanize.Comma(int64(changes)))

	sb.WriteString(rule + "\n\n  [::b]Change Distribution[-:-:-]\n\n")
	fmt.Fprintf(&sb, "  [green]%s[-][red]%s[-]\n\n", strings.Repeat("█", addBar), strings.Repeat("█", delBar))
	fmt.Fprintf(&sb, "  [green]%.1f%% additions[-]  |  [red]%.1f%% deletions[-]\n\n", addPct, delPct)

	net := s.TotalAdditions - s.TotalDeletions
	sb.WriteString(rule + "\n\n  [::b]Activity Metrics[-:-:-]\n\n")
	fmt.Fprintf(&sb, "  Net Change:         [%s]%+d[-] lines\n", netColor(net), net)
	fmt.Fprintf(&sb, "  Avg per Commit:     [cyan]%.1f[-] lines\n", ratio(changes, s.TotalCommits))
	fmt.Fprintf(&sb, "  Avg per Author:     [cyan]%.1f[-] lines\n", ratio(changes, s.TotalAuthors))

	v.text.SetText(sb.String())
}

// Text returns the rendered content
func (v *OverviewView) Text() string {
	return v.text.GetText(false)
}

func netColor(net int) string {
	switch {
	case net > 0:
		return "green"
	case net < 0:
		return "red"
	}
	return "white"
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// Root returns the root primitive
func (v *OverviewView) Root() tview.Primitive {
	return v.root
}
